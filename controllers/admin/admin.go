package admincontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AmanMishra107/sweet-artisan-bakery/models"
)

// VerifyAdmin confirms the caller passed the admin middleware. The dashboard
// calls this on load to decide whether to render at all.
func VerifyAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"admin": true,
			"email": c.GetString("email"),
			"role":  c.GetString("admin_role"),
		})
	}
}

// Overview returns the dashboard headline numbers: lifetime revenue, catalog
// size, pending queue depth and the five most recent orders.
func Overview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var totalRevenue float64
		if err := db.Model(&models.Order{}).
			Where("status != ?", models.OrderStatusCancelled).
			Select("COALESCE(SUM(total_amount), 0)").Scan(&totalRevenue).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute revenue"})
			return
		}

		var productCount int64
		if err := db.Model(&models.Product{}).Count(&productCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count products"})
			return
		}

		var pendingCount int64
		if err := db.Model(&models.Order{}).
			Where("status = ?", models.OrderStatusPending).Count(&pendingCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count pending orders"})
			return
		}

		var recent []models.Order
		if err := db.Order("created_at DESC").Limit(5).Find(&recent).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recent orders"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"total_revenue":  totalRevenue,
			"product_count":  productCount,
			"pending_orders": pendingCount,
			"recent_orders":  recent,
		})
	}
}
