package models

import (
	"time"

	"gorm.io/gorm"
)

// Categories is the fixed set of catalog categories the storefront knows about.
var Categories = []string{
	"Pastries", "Breads", "Cakes", "Desserts", "Muffins", "Pies", "Cookies", "Cupcakes",
}

// ValidCategory reports whether name is one of the known catalog categories.
func ValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null" json:"price"` // ₹, non-negative
	Category    string  `gorm:"not null;index" json:"category"`
	ImageURL    string  `json:"image_url"`
	InStock     bool    `gorm:"default:true" json:"in_stock"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
