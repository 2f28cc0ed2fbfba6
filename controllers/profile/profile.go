package profilecontroller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AmanMishra107/sweet-artisan-bakery/models"
)

// GetProfile returns the caller's profile, creating an empty one on first
// access so the storefront never sees a 404 here.
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var profile models.Profile
		err := db.Where("user_id = ?", userID).First(&profile).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			profile = models.Profile{UserID: userID}
			err = db.Create(&profile).Error
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"profile":  profile,
			"benefits": models.MembershipBenefits(profile.MembershipTier),
		})
	}
}

type UpdateProfileInput struct {
	FullName  *string `json:"full_name"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatar_url"`
}

// UpdateProfile applies a partial update. The membership tier is not
// client-writable; only the subscription flow changes it.
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input UpdateProfileInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var profile models.Profile
		err := db.Where("user_id = ?", userID).First(&profile).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			profile = models.Profile{UserID: userID}
			err = db.Create(&profile).Error
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
			return
		}

		if input.FullName != nil {
			profile.FullName = strings.TrimSpace(*input.FullName)
		}
		if input.Phone != nil {
			profile.Phone = strings.TrimSpace(*input.Phone)
		}
		if input.AvatarURL != nil {
			profile.AvatarURL = strings.TrimSpace(*input.AvatarURL)
		}

		if err := db.Save(&profile).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "profile": profile})
	}
}
