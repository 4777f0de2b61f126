package models

import (
	"time"
)

type SpecialItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"not null"`
	Price     float64   `json:"price" gorm:"not null"`
	Stars     float64   `json:"stars" gorm:"default:4.5"`
	ImageURL  string    `json:"image_url"`
	IsDefault bool      `json:"is_default" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Protected reports whether the item is shielded from deletion.
func (s *SpecialItem) Protected() bool {
	return s.IsDefault || s.ID <= ReservedMenuItemID
}
