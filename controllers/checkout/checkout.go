package checkoutcontroller

import (
	"errors"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AmanMishra107/sweet-artisan-bakery/checkout"
	"github.com/AmanMishra107/sweet-artisan-bakery/models"
	"github.com/AmanMishra107/sweet-artisan-bakery/pricing"
	"github.com/AmanMishra107/sweet-artisan-bakery/realtime"
)

// paymentDelay simulates the gateway round trip. Tests shrink it to zero.
var paymentDelay = 2 * time.Second

func cartSubtotal(db *gorm.DB, userID string) (models.Cart, float64, error) {
	var cart models.Cart
	if err := db.Where("user_id = ?", userID).Preload("Items").First(&cart).Error; err != nil {
		return cart, 0, err
	}
	return cart, models.CartSubtotal(cart.Items), nil
}

func membershipTier(db *gorm.DB, userID string) string {
	var profile models.Profile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return ""
	}
	return profile.MembershipTier
}

func sessionView(v checkout.View, quote pricing.Quote) gin.H {
	return gin.H{
		"step":            v.Step.String(),
		"contact":         v.Contact,
		"delivery":        v.Delivery,
		"payment_method":  v.Payment.Method,
		"promo_code":      v.PromoCode,
		"discount":        v.Discount,
		"idempotency_key": v.IdempotencyKey,
		"quote":           quote,
	}
}

// GetSession returns the caller's checkout state with a fresh price quote.
// Membership free-delivery is applied against the profile tier.
func GetSession(db *gorm.DB, store *checkout.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		s := store.Get(userID)

		_, subtotal, err := cartSubtotal(db, userID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		quote := s.Quote(subtotal)
		if tier := membershipTier(db, userID); tier != "" {
			quote = pricing.ApplyMembership(quote, tier)
		}
		c.JSON(http.StatusOK, sessionView(s.Snapshot(), quote))
	}
}

// UpdateContact stores the contact step fields. Validation happens on Next, so
// partially typed forms can be saved freely.
func UpdateContact(store *checkout.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input checkout.ContactInfo
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		s := store.Get(c.GetString("user_id"))
		s.SetContact(input)
		c.JSON(http.StatusOK, gin.H{"message": "Contact info saved"})
	}
}

func UpdateDelivery(store *checkout.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input checkout.DeliveryInfo
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		s := store.Get(c.GetString("user_id"))
		if err := s.SetDelivery(input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Delivery info saved"})
	}
}

func UpdatePayment(store *checkout.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input checkout.PaymentInfo
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		s := store.Get(c.GetString("user_id"))
		s.SetPayment(input)
		c.JSON(http.StatusOK, gin.H{"message": "Payment info saved"})
	}
}

// NextStep advances the step machine; an incomplete current step is rejected
// with the field notice the storefront displays inline.
func NextStep(store *checkout.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := store.Get(c.GetString("user_id"))
		if err := s.Next(); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"step": s.Snapshot().Step.String()})
	}
}

func PrevStep(store *checkout.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := store.Get(c.GetString("user_id"))
		s.Back()
		c.JSON(http.StatusOK, gin.H{"step": s.Snapshot().Step.String()})
	}
}

type ApplyPromoInput struct {
	Code string `json:"code" binding:"required"`
}

// ApplyPromo evaluates a code against the current cart subtotal. Unknown codes
// return 422 and leave any previously applied discount untouched.
func ApplyPromo(db *gorm.DB, store *checkout.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input ApplyPromoInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		_, subtotal, err := cartSubtotal(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		s := store.Get(userID)
		discount, err := s.ApplyPromo(input.Code, subtotal)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid promo code"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": input.Code, "discount": discount})
	}
}

type PreDiscountInput struct {
	Code string `json:"code" binding:"required"`
	Pct  int    `json:"pct" binding:"required"`
}

// ApplyReward installs a review-reward percentage ahead of checkout. The
// percentage is client-carried, same as the coupon the storefront hands out.
func ApplyReward(db *gorm.DB, store *checkout.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input PreDiscountInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Pct < 1 || input.Pct > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid discount percentage"})
			return
		}

		_, subtotal, err := cartSubtotal(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		s := store.Get(userID)
		discount := s.ApplyPreDiscount(input.Code, input.Pct, subtotal)
		c.JSON(http.StatusOK, gin.H{"code": input.Code, "discount": discount})
	}
}

// Submit places the order from the review step. The session's idempotency key
// becomes the order reference; its unique index means a racing duplicate
// insert fails instead of creating a second order.
func Submit(db *gorm.DB, store *checkout.Store, hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		s := store.Get(userID)

		if err := s.BeginSubmit(); err != nil {
			status := http.StatusConflict
			if errors.Is(err, checkout.ErrNotAtReview) {
				status = http.StatusUnprocessableEntity
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		cart, subtotal, err := cartSubtotal(db, userID)
		if err != nil {
			s.FinishSubmit(false)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		if len(cart.Items) == 0 {
			s.FinishSubmit(false)
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Your cart is empty"})
			return
		}

		// Copy the session state once so a concurrent step update cannot tear
		// the fields that go into the order row.
		view := s.Snapshot()

		lines := make([]models.OrderLine, 0, len(cart.Items))
		for _, it := range cart.Items {
			lines = append(lines, models.OrderLine{
				Name:     it.ProductName,
				Quantity: it.Quantity,
				Price:    it.ProductPrice,
			})
		}
		itemsJSON, err := models.MarshalOrderLines(lines)
		if err != nil {
			s.FinishSubmit(false)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to serialize order"})
			return
		}
		addr := models.DeliveryAddress{
			Address:    view.Delivery.Address,
			City:       view.Delivery.City,
			PostalCode: view.Delivery.PostalCode,
		}
		addrJSON, err := models.MarshalDeliveryAddress(addr)
		if err != nil {
			s.FinishSubmit(false)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to serialize order"})
			return
		}

		quote := pricing.Compute(subtotal, view.Delivery.Method, view.Delivery.Tip, view.Discount)
		if tier := membershipTier(db, userID); tier != "" {
			quote = pricing.ApplyMembership(quote, tier)
		}

		// Simulated gateway round trip.
		time.Sleep(paymentDelay)

		order := models.Order{
			OrderRef:            view.IdempotencyKey,
			UserID:              userID,
			Items:               itemsJSON,
			Amount:              math.Round(quote.Subtotal),
			DeliveryFee:         quote.DeliveryFee,
			Tax:                 quote.Tax,
			TipAmount:           quote.Tip,
			DiscountAmount:      quote.Discount,
			TotalAmount:         math.Round(quote.Total),
			DeliveryAddress:     addrJSON,
			SpecialInstructions: view.Delivery.SpecialInstructions,
			Status:              models.OrderStatusPending,
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			return tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
		})
		if err != nil {
			s.FinishSubmit(false)
			log.Printf("❌ Order submission failed for user %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			return
		}

		s.FinishSubmit(true)
		store.Reset(userID)
		hub.Notify("orders", "insert")

		log.Printf("✅ Order %s placed by user %s", order.OrderRef, userID)
		c.JSON(http.StatusCreated, gin.H{
			"message":   "Order placed successfully",
			"order_ref": order.OrderRef,
			"order":     order,
		})
	}
}
