package services

import (
	"errors"
	"strings"

	"burgero/internal/models"
	"burgero/internal/repository"
)

var ErrProtectedItem = errors.New("default items cannot be deleted")

type MenuService interface {
	GetMenuItems() ([]models.MenuItem, error)
	AddMenuItem(item *models.MenuItem) error
	UpdateMenuItem(id uint, updates *models.MenuItem) (*models.MenuItem, error)
	DeleteMenuItem(id uint) (bool, error)

	GetSpecialItems() ([]models.SpecialItem, error)
	AddSpecialItem(item *models.SpecialItem) error
	UpdateSpecialItem(id uint, updates *models.SpecialItem) (*models.SpecialItem, error)
	DeleteSpecialItem(id uint) (bool, error)
}

type menuService struct {
	menuRepo    repository.MenuItemRepository
	specialRepo repository.SpecialItemRepository
}

func NewMenuService(menuRepo repository.MenuItemRepository, specialRepo repository.SpecialItemRepository) MenuService {
	return &menuService{menuRepo: menuRepo, specialRepo: specialRepo}
}

func (s *menuService) GetMenuItems() ([]models.MenuItem, error) {
	return s.menuRepo.GetAll()
}

func (s *menuService) AddMenuItem(item *models.MenuItem) error {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" || item.Price <= 0 {
		return ErrMissingFields
	}
	item.IsDefault = false
	return s.menuRepo.Create(item)
}

func (s *menuService) UpdateMenuItem(id uint, updates *models.MenuItem) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(updates.Name); name != "" {
		item.Name = name
	}
	if updates.Price > 0 {
		item.Price = updates.Price
	}
	if updates.Description != "" {
		item.Description = updates.Description
	}
	if updates.ImageURL != "" {
		item.ImageURL = updates.ImageURL
	}

	if err := s.menuRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *menuService) DeleteMenuItem(id uint) (bool, error) {
	item, err := s.menuRepo.GetByID(id)
	if err != nil {
		return false, err
	}
	if item.Protected() {
		return false, ErrProtectedItem
	}
	return s.menuRepo.Delete(id)
}

func (s *menuService) GetSpecialItems() ([]models.SpecialItem, error) {
	return s.specialRepo.GetAll()
}

func (s *menuService) AddSpecialItem(item *models.SpecialItem) error {
	item.Title = strings.TrimSpace(item.Title)
	if item.Title == "" || item.Price <= 0 {
		return ErrMissingFields
	}
	if item.Stars == 0 {
		item.Stars = 4.5
	}
	item.IsDefault = false
	return s.specialRepo.Create(item)
}

func (s *menuService) UpdateSpecialItem(id uint, updates *models.SpecialItem) (*models.SpecialItem, error) {
	item, err := s.specialRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if title := strings.TrimSpace(updates.Title); title != "" {
		item.Title = title
	}
	if updates.Price > 0 {
		item.Price = updates.Price
	}
	if updates.Stars > 0 {
		item.Stars = updates.Stars
	}
	if updates.ImageURL != "" {
		item.ImageURL = updates.ImageURL
	}

	if err := s.specialRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *menuService) DeleteSpecialItem(id uint) (bool, error) {
	item, err := s.specialRepo.GetByID(id)
	if err != nil {
		return false, err
	}
	if item.Protected() {
		return false, ErrProtectedItem
	}
	return s.specialRepo.Delete(id)
}
