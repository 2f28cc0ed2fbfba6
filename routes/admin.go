package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminController "github.com/AmanMishra107/sweet-artisan-bakery/controllers/admin"
	productcontroller "github.com/AmanMishra107/sweet-artisan-bakery/controllers/product"
	"github.com/AmanMishra107/sweet-artisan-bakery/middleware"
	"github.com/AmanMishra107/sweet-artisan-bakery/realtime"
)

// SetupAdminRoutes registers all "/admin/*" endpoints behind the admin check.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, hub *realtime.Hub) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken, middleware.RequireAdmin(db))
	{
		adminGroup.GET("/verify", adminController.VerifyAdmin())
		adminGroup.GET("/overview", adminController.Overview(db))

		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(db, hub))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db, hub))
			productAdmin.GET("", productcontroller.GetProducts(db))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db, hub))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(db))
		}
	}
}
