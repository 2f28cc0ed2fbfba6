package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AmanMishra107/sweet-artisan-bakery/checkout"
	"github.com/AmanMishra107/sweet-artisan-bakery/realtime"
)

// SetupRoutes is the single entry point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, hub *realtime.Hub) {
	sessions := checkout.NewStore()

	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// Storefront routes (JWT protected except the catalog)
	SetupUserRoutes(r, db, hub, sessions)

	// Order routes (JWT protected, admin operations behind RequireAdmin)
	SetupOrderRoutes(r, db, hub)

	// Admin dashboard routes
	SetupAdminRoutes(r, db, hub)

	// Realtime change feed
	r.GET("/ws", hub.ServeWS)
}
