package models

import (
	"time"
)

// ReservedMenuItemID is the upper bound of the id range occupied by the
// seeded default items. Items at or below it cannot be deleted.
const ReservedMenuItemID = 10

type MenuItem struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Price       float64   `json:"price" gorm:"not null"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	IsDefault   bool      `json:"is_default" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Protected reports whether the item is shielded from deletion.
func (m *MenuItem) Protected() bool {
	return m.IsDefault || m.ID <= ReservedMenuItemID
}
