package subscriptioncontroller

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AmanMishra107/sweet-artisan-bakery/models"
	"github.com/AmanMishra107/sweet-artisan-bakery/realtime"
)

// paymentDelay simulates the billing round trip. Tests shrink it to zero.
var paymentDelay = 1500 * time.Millisecond

const firstMonthCode = "SWEET50"

// ListPlans returns the purchasable membership plans, cheapest first.
func ListPlans(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var plans []models.SubscriptionPlan
		if err := db.Where("active = ?", true).Order("price_monthly ASC").Find(&plans).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch plans"})
			return
		}
		c.JSON(http.StatusOK, plans)
	}
}

// GetMySubscription returns the caller's active subscription with the tier
// benefits, or 404 when none is active.
func GetMySubscription(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var sub models.UserSubscription
		err := db.Where("user_id = ? AND status = ?", userID, models.SubscriptionActive).
			Order("created_at DESC").First(&sub).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "No active subscription"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscription"})
			}
			return
		}

		var plan models.SubscriptionPlan
		if err := db.First(&plan, sub.PlanID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch plan"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"subscription": sub,
			"plan":         plan,
			"benefits":     models.MembershipBenefits(plan.Tier),
		})
	}
}

type PurchaseInput struct {
	Tier      string `json:"tier" binding:"required"`
	PromoCode string `json:"promo_code"`
}

// Purchase buys a membership plan for 30 days. Any previously active
// subscription is canceled in the same transaction, and the profile tier is
// upserted so checkout sees the new membership immediately. SWEET50 halves
// the first month for users who have never subscribed before.
func Purchase(db *gorm.DB, hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input PurchaseInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var plan models.SubscriptionPlan
		err := db.Where("tier = ? AND active = ?", strings.ToLower(input.Tier), true).First(&plan).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch plan"})
			}
			return
		}

		price := plan.PriceMonthly
		promoApplied := false
		if strings.EqualFold(strings.TrimSpace(input.PromoCode), firstMonthCode) {
			var prior int64
			if err := db.Model(&models.UserSubscription{}).Where("user_id = ?", userID).Count(&prior).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscription history"})
				return
			}
			if prior > 0 {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": firstMonthCode + " is only valid on your first subscription"})
				return
			}
			price = math.Round(price * 0.5)
			promoApplied = true
		}

		// Simulated billing round trip.
		time.Sleep(paymentDelay)

		now := time.Now()
		sub := models.UserSubscription{
			UserID:             userID,
			PlanID:             plan.ID,
			Status:             models.SubscriptionActive,
			CurrentPeriodStart: now,
			CurrentPeriodEnd:   now.AddDate(0, 0, 30),
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.UserSubscription{}).
				Where("user_id = ? AND status = ?", userID, models.SubscriptionActive).
				Update("status", models.SubscriptionCanceled).Error; err != nil {
				return err
			}
			if err := tx.Create(&sub).Error; err != nil {
				return err
			}
			return tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{"membership_tier": plan.Tier}),
			}).Create(&models.Profile{UserID: userID, MembershipTier: plan.Tier}).Error
		})
		if err != nil {
			log.Printf("❌ Subscription purchase failed for user %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to purchase subscription"})
			return
		}

		hub.Notify("subscriptions", "insert")
		log.Printf("✅ User %s subscribed to %s", userID, plan.Tier)
		c.JSON(http.StatusCreated, gin.H{
			"message":       "Subscription activated",
			"subscription":  sub,
			"plan":          plan,
			"amount_paid":   price,
			"promo_applied": promoApplied,
			"benefits":      models.MembershipBenefits(plan.Tier),
		})
	}
}

// Cancel marks the active subscription canceled and clears the profile tier.
// Benefits end immediately.
func Cancel(db *gorm.DB, hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var sub models.UserSubscription
		err := db.Where("user_id = ? AND status = ?", userID, models.SubscriptionActive).
			Order("created_at DESC").First(&sub).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "No active subscription"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscription"})
			}
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&sub).Update("status", models.SubscriptionCanceled).Error; err != nil {
				return err
			}
			return tx.Model(&models.Profile{}).Where("user_id = ?", userID).
				Update("membership_tier", "").Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel subscription"})
			return
		}

		hub.Notify("subscriptions", "update")
		c.JSON(http.StatusOK, gin.H{"message": "Subscription canceled"})
	}
}
