package models

import "time"

type User struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"`
	Picture      string    `json:"picture"`
	Provider     string    `json:"provider"` // "email" or "google"
	Cart         Cart      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart"`
	Orders       []Order   `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"orders,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile carries the storefront-facing profile fields kept separate from the
// auth identity, including the membership tier granted by a subscription.
type Profile struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         string    `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName       string    `json:"full_name"`
	Phone          string    `json:"phone"`
	AvatarURL      string    `json:"avatar_url"`
	MembershipTier string    `json:"membership_tier"` // "", "basic", "premium", "royal"
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
