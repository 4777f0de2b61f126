package repository

import (
	"burgero/internal/models"

	"gorm.io/gorm"
)

type SpecialItemRepository interface {
	Create(item *models.SpecialItem) error
	GetByID(id uint) (*models.SpecialItem, error)
	GetAll() ([]models.SpecialItem, error)
	Update(item *models.SpecialItem) error
	Delete(id uint) (bool, error)
}

type specialItemRepository struct {
	db *gorm.DB
}

func NewSpecialItemRepository(db *gorm.DB) SpecialItemRepository {
	return &specialItemRepository{db: db}
}

func (r *specialItemRepository) Create(item *models.SpecialItem) error {
	return r.db.Create(item).Error
}

func (r *specialItemRepository) GetByID(id uint) (*models.SpecialItem, error) {
	var item models.SpecialItem
	err := r.db.First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *specialItemRepository) GetAll() ([]models.SpecialItem, error) {
	var items []models.SpecialItem
	err := r.db.Order("id").Find(&items).Error
	return items, err
}

func (r *specialItemRepository) Update(item *models.SpecialItem) error {
	return r.db.Save(item).Error
}

func (r *specialItemRepository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&models.SpecialItem{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
