package models

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // placed, awaiting the kitchen
	OrderStatusProcessing OrderStatus = "processing" // being prepared
	OrderStatusCompleted  OrderStatus = "completed"  // delivered
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var ErrInvalidOrderStatus = errors.New("invalid order status")

// ParseOrderStatus maps a client-sent status string to the enumerated set.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch strings.ToLower(s) {
	case string(OrderStatusPending):
		return OrderStatusPending, nil
	case string(OrderStatusProcessing):
		return OrderStatusProcessing, nil
	case string(OrderStatusCompleted):
		return OrderStatusCompleted, nil
	case string(OrderStatusCancelled):
		return OrderStatusCancelled, nil
	default:
		return "", ErrInvalidOrderStatus
	}
}

// Order is written once per completed checkout and mutated only by admin
// status updates. Items and DeliveryAddress are stored as serialized JSON and
// parsed defensively on read.
type Order struct {
	ID                  uint        `gorm:"primaryKey" json:"id"`
	OrderRef            string      `gorm:"uniqueIndex;not null" json:"order_ref"`
	UserID              string      `gorm:"not null;index" json:"user_id"`
	Items               string      `gorm:"type:text" json:"items"`
	Amount              float64     `json:"amount"` // subtotal
	DeliveryFee         float64     `json:"delivery_fee"`
	Tax                 float64     `json:"tax"`
	TipAmount           float64     `json:"tip_amount"`
	DiscountAmount      float64     `json:"discount_amount"`
	TotalAmount         float64     `json:"total_amount"`
	DeliveryAddress     string      `gorm:"type:text" json:"delivery_address"`
	SpecialInstructions string      `json:"special_instructions"`
	Status              OrderStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

// OrderLine is one entry of the serialized items snapshot.
type OrderLine struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// DeliveryAddress is the serialized address snapshot on an order.
type DeliveryAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

var (
	ErrMalformedItems   = errors.New("malformed order items")
	ErrMalformedAddress = errors.New("malformed delivery address")
)

// MarshalOrderLines serializes cart lines into the items snapshot format.
func MarshalOrderLines(lines []OrderLine) (string, error) {
	data, err := json.Marshal(lines)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ParseOrderLines validates and decodes an items snapshot. Lines must have a
// name, a positive quantity and a non-negative price; anything else is
// reported as ErrMalformedItems rather than half-parsed.
func ParseOrderLines(raw string) ([]OrderLine, error) {
	var lines []OrderLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, ErrMalformedItems
	}
	for _, l := range lines {
		if l.Name == "" || l.Quantity <= 0 || l.Price < 0 {
			return nil, ErrMalformedItems
		}
	}
	return lines, nil
}

// MarshalDeliveryAddress serializes an address snapshot.
func MarshalDeliveryAddress(addr DeliveryAddress) (string, error) {
	data, err := json.Marshal(addr)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ParseDeliveryAddress validates and decodes an address snapshot.
func ParseDeliveryAddress(raw string) (DeliveryAddress, error) {
	var addr DeliveryAddress
	if err := json.Unmarshal([]byte(raw), &addr); err != nil {
		return DeliveryAddress{}, ErrMalformedAddress
	}
	if addr.Address == "" || addr.City == "" {
		return DeliveryAddress{}, ErrMalformedAddress
	}
	return addr, nil
}
