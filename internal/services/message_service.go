package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"burgero/internal/models"
	"burgero/internal/redis"
	"burgero/internal/repository"

	"gorm.io/gorm"
)

type MessageService interface {
	CreateMessage(ctx context.Context, message *models.Message) error
	GetMessageByID(id uint) (*models.Message, error)
	GetAllMessages() ([]models.Message, error)
	GetUnreadMessages() ([]models.Message, error)
	MarkAsRead(id uint) (bool, error)
	MarkAllAsRead() (int64, error)
	DeleteMessage(id uint) (bool, error)
	DeleteAllMessages() (int64, error)
	GetMessageStats() (*repository.MessageStats, error)
}

type messageService struct {
	messageRepo repository.MessageRepository
	bus         *redis.Client
}

func NewMessageService(messageRepo repository.MessageRepository, bus *redis.Client) MessageService {
	return &messageService{messageRepo: messageRepo, bus: bus}
}

func (s *messageService) CreateMessage(ctx context.Context, message *models.Message) error {
	message.Name = strings.TrimSpace(message.Name)
	message.Email = strings.TrimSpace(message.Email)
	message.Message = strings.TrimSpace(message.Message)

	if message.Name == "" || message.Email == "" || message.Message == "" {
		return ErrMissingFields
	}

	message.IsRead = false
	if err := s.messageRepo.Create(message); err != nil {
		return err
	}

	if s.bus != nil {
		if err := s.bus.PublishSync(ctx, "messages", "remote", message); err != nil {
			log.Printf("Warning: failed to publish message sync event: %v", err)
		}
	}
	return nil
}

func (s *messageService) GetMessageByID(id uint) (*models.Message, error) {
	return s.messageRepo.GetByID(id)
}

func (s *messageService) GetAllMessages() ([]models.Message, error) {
	return s.messageRepo.GetAll()
}

func (s *messageService) GetUnreadMessages() ([]models.Message, error) {
	return s.messageRepo.GetUnread()
}

// MarkAsRead is idempotent: marking an already-read message succeeds and
// reports the message as found.
func (s *messageService) MarkAsRead(id uint) (bool, error) {
	updated, err := s.messageRepo.MarkAsRead(id)
	if err != nil {
		return false, err
	}
	if updated {
		return true, nil
	}
	// Zero rows touched: either absent or already read. Re-marking a read
	// message is a no-op that still succeeds.
	message, err := s.messageRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return message.IsRead, nil
}

func (s *messageService) MarkAllAsRead() (int64, error) {
	return s.messageRepo.MarkAllAsRead()
}

func (s *messageService) DeleteMessage(id uint) (bool, error) {
	return s.messageRepo.Delete(id)
}

func (s *messageService) DeleteAllMessages() (int64, error) {
	return s.messageRepo.DeleteAll()
}

func (s *messageService) GetMessageStats() (*repository.MessageStats, error) {
	return s.messageRepo.GetStatistics()
}
