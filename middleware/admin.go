package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AmanMishra107/sweet-artisan-bakery/models"
)

// RequireAdmin allows only users with an admin_users row through. Runs after
// ValidateToken. The 403 body is deliberately distinct from generic failures
// so the dashboard can show a permission notice rather than a retry prompt.
func RequireAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		var admin models.AdminUser
		err := db.Where("user_id = ?", userIDVal).First(&admin).Error
		if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && admin.Role != "admin") {
			c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied: administrator access required"})
			c.Abort()
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify admin status"})
			c.Abort()
			return
		}

		c.Set("admin_role", admin.Role)
		c.Next()
	}
}
