// Package pricing holds the checkout price computation: delivery fees, tax,
// the promo code rule table and the final quote. Everything here is a pure
// function of its inputs so a quote can be recomputed on every selection
// change with identical results.
package pricing

import (
	"errors"
	"math"
	"strings"

	"github.com/AmanMishra107/sweet-artisan-bakery/models"
)

const (
	DeliveryStandard = "standard"
	DeliveryExpress  = "express"
	DeliveryPremium  = "premium"
)

// TaxRate is applied to the subtotal only; delivery, tip and discount are not
// taxed.
const TaxRate = 0.05

var deliveryFees = map[string]float64{
	DeliveryStandard: 25,
	DeliveryExpress:  50,
	DeliveryPremium:  80,
}

// DeliveryFee returns the fixed fee for a delivery method. Unknown methods
// fall back to standard.
func DeliveryFee(method string) float64 {
	if fee, ok := deliveryFees[method]; ok {
		return fee
	}
	return deliveryFees[DeliveryStandard]
}

// Tax rounds to the nearest whole rupee (math.Round, half away from zero).
func Tax(subtotal float64) float64 {
	return math.Round(subtotal * TaxRate)
}

// promoRule is one entry of the static promo table. Exactly one rule matches
// a given code; codes do not stack.
type promoRule struct {
	code       string
	percentOff int     // percentage of subtotal, rounded
	flatOff    float64 // fixed amount, used when percentOff is zero
}

var promoRules = []promoRule{
	{code: "sweet20", percentOff: 20},
	{code: "sweet15", percentOff: 15},
	{code: "sweet10", percentOff: 10},
	{code: "sweet5", percentOff: 5},
	{code: "firstorder", flatOff: 50},
}

var ErrUnknownPromoCode = errors.New("invalid promo code")

// EvaluatePromo matches a code against the rule table (case-insensitive) and
// returns the discount amount for the given subtotal. An unmatched code
// returns ErrUnknownPromoCode; the caller keeps its previous discount.
func EvaluatePromo(code string, subtotal float64) (float64, error) {
	normalized := strings.ToLower(strings.TrimSpace(code))
	for _, rule := range promoRules {
		if rule.code != normalized {
			continue
		}
		if rule.percentOff > 0 {
			return PercentDiscount(subtotal, rule.percentOff), nil
		}
		return rule.flatOff, nil
	}
	return 0, ErrUnknownPromoCode
}

// PercentDiscount computes a rounded percentage of the subtotal. Also used for
// pre-applied review-reward discounts carried into checkout.
func PercentDiscount(subtotal float64, pct int) float64 {
	return math.Round(subtotal * float64(pct) / 100)
}

// Quote is the full price breakdown for a checkout.
type Quote struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"delivery_fee"`
	Tax         float64 `json:"tax"`
	Tip         float64 `json:"tip"`
	Discount    float64 `json:"discount"`
	Total       float64 `json:"total"`
}

// Compute builds a quote from the cart subtotal and the user's selections.
// The total is deliberately not clamped at zero: a discount larger than
// subtotal plus fees yields a negative total, which the storefront displays
// as-is.
func Compute(subtotal float64, deliveryMethod string, tip, discount float64) Quote {
	fee := DeliveryFee(deliveryMethod)
	tax := Tax(subtotal)
	return Quote{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Tax:         tax,
		Tip:         tip,
		Discount:    discount,
		Total:       subtotal + fee + tax + tip - discount,
	}
}

// ApplyMembership waives the delivery fee when the member's tier qualifies
// for the order subtotal. Without a tier the quote is returned unchanged.
func ApplyMembership(q Quote, tier string) Quote {
	if tier == "" {
		return q
	}
	benefits := models.MembershipBenefits(tier)
	if benefits.FreeDeliveryAlways || q.Subtotal >= benefits.FreeDeliveryOver {
		q.Total -= q.DeliveryFee
		q.DeliveryFee = 0
	}
	return q
}
