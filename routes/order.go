package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/AmanMishra107/sweet-artisan-bakery/controllers/order"
	"github.com/AmanMishra107/sweet-artisan-bakery/middleware"
	"github.com/AmanMishra107/sweet-artisan-bakery/realtime"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, hub *realtime.Hub) {
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken)
	{
		// Caller's own order history
		orders.GET("/mine", orderControllers.GetUserOrders(db))

		// Single order lookup, owner or admin
		orders.GET("/:ref", orderControllers.GetOrderByRef(db))

		// Admin operations
		admin := orders.Group("")
		admin.Use(middleware.RequireAdmin(db))
		{
			admin.GET("/", orderControllers.GetAllOrders(db))
			admin.PUT("/:ref/status", orderControllers.UpdateOrderStatus(db, hub))
		}
	}
}
