package ordercontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AmanMishra107/sweet-artisan-bakery/models"
	"github.com/AmanMishra107/sweet-artisan-bakery/realtime"
)

// orderView decorates an order row with its parsed snapshots. A row whose
// serialized items or address fail validation is still returned, with the
// parse error inline, so one bad row cannot blank the admin table.
func orderView(o models.Order) gin.H {
	view := gin.H{"order": o}

	lines, err := models.ParseOrderLines(o.Items)
	if err != nil {
		view["items_error"] = err.Error()
	} else {
		view["items"] = lines
	}

	addr, err := models.ParseDeliveryAddress(o.DeliveryAddress)
	if err != nil {
		view["address_error"] = err.Error()
	} else {
		view["address"] = addr
	}
	return view
}

// GetAllOrders lists every order, newest first. Admin only.
func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Order{}).Order("created_at DESC")

		if status := c.Query("status"); status != "" {
			parsed, err := models.ParseOrderStatus(status)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
				return
			}
			query = query.Where("status = ?", parsed)
		}

		var orders []models.Order
		if err := query.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		views := make([]gin.H, 0, len(orders))
		for _, o := range orders {
			views = append(views, orderView(o))
		}
		c.JSON(http.StatusOK, gin.H{"orders": views, "count": len(orders)})
	}
}

// GetUserOrders lists the caller's own orders, newest first.
func GetUserOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var orders []models.Order
		if err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		views := make([]gin.H, 0, len(orders))
		for _, o := range orders {
			views = append(views, orderView(o))
		}
		c.JSON(http.StatusOK, gin.H{"orders": views, "count": len(orders)})
	}
}

// isAdmin reports whether the user has an admin_users row. The route runs
// only the token middleware, so the allowlist is checked here.
func isAdmin(db *gorm.DB, userID string) bool {
	var admin models.AdminUser
	err := db.Where("user_id = ?", userID).First(&admin).Error
	return err == nil && admin.Role == "admin"
}

// GetOrderByRef fetches one order by its reference, or by numeric id for the
// admin table's row links. Non-admin callers can only see their own orders.
func GetOrderByRef(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref := c.Param("ref")

		var order models.Order
		query := db.Where("order_ref = ?", ref)
		if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
			query = db.Where("order_ref = ? OR id = ?", ref, id)
		}
		if err := query.First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			}
			return
		}

		if order.UserID != c.GetString("user_id") && !isAdmin(db, c.GetString("user_id")) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
			return
		}
		c.JSON(http.StatusOK, orderView(order))
	}
}

type UpdateStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus moves an order through the fulfillment states and
// notifies live clients. Admin only.
func UpdateOrderStatus(db *gorm.DB, hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref := c.Param("ref")

		var input UpdateStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		status, err := models.ParseOrderStatus(input.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
			return
		}

		var order models.Order
		if err := db.Where("order_ref = ?", ref).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			}
			return
		}

		order.Status = status
		if err := db.Save(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}

		hub.Notify("orders", "update")
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "order": order})
	}
}
