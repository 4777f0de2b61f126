package repository

import (
	"burgero/internal/models"

	"gorm.io/gorm"
)

type MessageStats struct {
	Total  int64 `json:"total"`
	Unread int64 `json:"unread"`
	Read   int64 `json:"read"`
}

type MessageRepository interface {
	Create(message *models.Message) error
	GetByID(id uint) (*models.Message, error)
	GetAll() ([]models.Message, error)
	GetUnread() ([]models.Message, error)
	MarkAsRead(id uint) (bool, error)
	MarkAllAsRead() (int64, error)
	Delete(id uint) (bool, error)
	DeleteAll() (int64, error)
	GetStatistics() (*MessageStats, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *messageRepository) GetByID(id uint) (*models.Message, error) {
	var message models.Message
	err := r.db.First(&message, id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) GetAll() ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Order("created_at DESC").Find(&messages).Error
	return messages, err
}

func (r *messageRepository) GetUnread() ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("is_read = ?", false).Order("created_at DESC").Find(&messages).Error
	return messages, err
}

func (r *messageRepository) MarkAsRead(id uint) (bool, error) {
	result := r.db.Model(&models.Message{}).Where("id = ?", id).Update("is_read", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// MarkAllAsRead flips every unread message and returns how many it touched.
func (r *messageRepository) MarkAllAsRead() (int64, error) {
	result := r.db.Model(&models.Message{}).Where("is_read = ?", false).Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *messageRepository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&models.Message{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *messageRepository) DeleteAll() (int64, error) {
	result := r.db.Where("1 = 1").Delete(&models.Message{})
	return result.RowsAffected, result.Error
}

func (r *messageRepository) GetStatistics() (*MessageStats, error) {
	stats := &MessageStats{}
	err := r.db.Raw(`
		SELECT
			COUNT(*) AS total,
			COUNT(CASE WHEN is_read = false THEN 1 END) AS unread,
			COUNT(CASE WHEN is_read = true THEN 1 END) AS read
		FROM messages
	`).Scan(stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
