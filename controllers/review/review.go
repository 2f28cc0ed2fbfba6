package reviewcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Reward is the coupon handed out for a submitted review.
type Reward struct {
	Code        string `json:"code"`
	DiscountPct int    `json:"discount_pct"`
}

// RewardForRating maps a star rating to its coupon. Even a poor review earns
// a small thank-you discount.
func RewardForRating(rating int) Reward {
	switch rating {
	case 5:
		return Reward{Code: "SWEET20", DiscountPct: 20}
	case 4:
		return Reward{Code: "SWEET15", DiscountPct: 15}
	case 3:
		return Reward{Code: "SWEET10", DiscountPct: 10}
	default:
		return Reward{Code: "SWEET5", DiscountPct: 5}
	}
}

type SubmitReviewInput struct {
	Rating int    `json:"rating" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

// SubmitReview accepts a rating and text and returns the earned coupon.
// Reviews are not persisted; the reward is the whole point of the exchange.
func SubmitReview() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SubmitReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Rating < 1 || input.Rating > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
			return
		}
		if len(strings.TrimSpace(input.Text)) < 10 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Review must be at least 10 characters"})
			return
		}

		reward := RewardForRating(input.Rating)
		c.JSON(http.StatusOK, gin.H{
			"message": "Thank you for your review!",
			"reward":  reward,
		})
	}
}
