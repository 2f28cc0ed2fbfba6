package models

import "time"

type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cart_id"`
	UserID    string     `gorm:"uniqueIndex" json:"user_id"` // one cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem snapshots the product at add-to-cart time; a later price change
// does not affect an open cart.
type CartItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CartID       uint      `gorm:"index" json:"cart_id"`
	ProductID    uint      `json:"product_id"`
	ProductName  string    `json:"product_name"`
	ProductImage string    `json:"product_image"`
	ProductPrice float64   `json:"product_price"`
	Quantity     int       `json:"quantity"`
	AddedAt      time.Time `json:"added_at"`
}

// ItemCount returns the total quantity across all cart lines.
func ItemCount(items []CartItem) int {
	count := 0
	for _, it := range items {
		count += it.Quantity
	}
	return count
}

// CartSubtotal sums price×quantity over all lines using the snapshot prices.
func CartSubtotal(items []CartItem) float64 {
	subtotal := 0.0
	for _, it := range items {
		subtotal += it.ProductPrice * float64(it.Quantity)
	}
	return subtotal
}
