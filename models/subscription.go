package models

import "time"

type SubscriptionPlan struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"not null" json:"name"`
	Tier         string  `gorm:"not null;uniqueIndex" json:"tier"` // basic, premium, royal
	PriceMonthly float64 `gorm:"not null" json:"price_monthly"`
	Description  string  `json:"description"`
	Features     string  `gorm:"type:text" json:"features"` // serialized feature list
	Active       bool    `gorm:"default:true" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

const (
	SubscriptionActive   = "active"
	SubscriptionCanceled = "canceled"
)

// UserSubscription records a membership purchase. At most one active row per
// user is maintained by the purchase flow (prior active rows are canceled
// before the new insert); there is no database constraint backing this.
type UserSubscription struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UserID             string    `gorm:"not null;index" json:"user_id"`
	PlanID             uint      `gorm:"not null" json:"plan_id"`
	Status             string    `gorm:"type:VARCHAR(20);default:'active'" json:"status"`
	CurrentPeriodStart time.Time `json:"current_period_start"`
	CurrentPeriodEnd   time.Time `json:"current_period_end"`
	CreatedAt          time.Time `json:"created_at"`
}

// TierBenefits describes what a membership tier grants at checkout.
type TierBenefits struct {
	DiscountPct         int     `json:"discount_pct"`
	FreeDeliveryOver    float64 `json:"free_delivery_over"`
	FreeDeliveryAlways  bool    `json:"free_delivery_always"`
	PrioritySupport     string  `json:"priority_support"`
	EarlyAccess         bool    `json:"early_access"`
	CustomCakes         bool    `json:"custom_cakes"`
	BirthdaySpecial     bool    `json:"birthday_special"`
}

// MembershipBenefits returns the benefit table entry for a tier. Unknown tiers
// fall back to basic, matching the storefront's display logic.
func MembershipBenefits(tier string) TierBenefits {
	switch tier {
	case "royal":
		return TierBenefits{
			DiscountPct:        30,
			FreeDeliveryAlways: true,
			PrioritySupport:    "VIP",
			EarlyAccess:        true,
			CustomCakes:        true,
			BirthdaySpecial:    true,
		}
	case "premium":
		return TierBenefits{
			DiscountPct:      20,
			FreeDeliveryOver: 200,
			PrioritySupport:  "Priority",
			EarlyAccess:      true,
			CustomCakes:      true,
		}
	default:
		return TierBenefits{
			DiscountPct:      10,
			FreeDeliveryOver: 300,
			PrioritySupport:  "Standard",
		}
	}
}
