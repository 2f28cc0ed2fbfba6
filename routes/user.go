package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	checkoutpkg "github.com/AmanMishra107/sweet-artisan-bakery/checkout"
	cartControllers "github.com/AmanMishra107/sweet-artisan-bakery/controllers/cart"
	checkoutControllers "github.com/AmanMishra107/sweet-artisan-bakery/controllers/checkout"
	productControllers "github.com/AmanMishra107/sweet-artisan-bakery/controllers/product"
	profileControllers "github.com/AmanMishra107/sweet-artisan-bakery/controllers/profile"
	reviewControllers "github.com/AmanMishra107/sweet-artisan-bakery/controllers/review"
	subscriptionControllers "github.com/AmanMishra107/sweet-artisan-bakery/controllers/subscription"
	"github.com/AmanMishra107/sweet-artisan-bakery/middleware"
	"github.com/AmanMishra107/sweet-artisan-bakery/realtime"
)

// SetupUserRoutes registers the storefront endpoints. Browsing the catalog is
// public; everything that touches a cart, checkout or profile requires a JWT.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, hub *realtime.Hub, sessions *checkoutpkg.Store) {
	// Public catalog
	r.GET("/products", productControllers.GetProducts(db))
	r.GET("/products/:id", productControllers.GetProductByID(db))

	// Public membership plan listing
	r.GET("/subscriptions/plans", subscriptionControllers.ListPlans(db))

	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		userGroup.GET("/profile", profileControllers.GetProfile(db))
		userGroup.PUT("/profile", profileControllers.UpdateProfile(db))

		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetUserCart(db))
			cartGroup.POST("/", cartControllers.AddItem(db))
			cartGroup.PUT("/", cartControllers.SetQuantity(db))
			cartGroup.DELETE("/:product_id", cartControllers.RemoveItem(db))
			cartGroup.DELETE("/", cartControllers.ClearUserCart(db))
		}

		checkoutGroup := userGroup.Group("/checkout")
		{
			checkoutGroup.GET("/", checkoutControllers.GetSession(db, sessions))
			checkoutGroup.PUT("/contact", checkoutControllers.UpdateContact(sessions))
			checkoutGroup.PUT("/delivery", checkoutControllers.UpdateDelivery(sessions))
			checkoutGroup.PUT("/payment", checkoutControllers.UpdatePayment(sessions))
			checkoutGroup.POST("/next", checkoutControllers.NextStep(sessions))
			checkoutGroup.POST("/back", checkoutControllers.PrevStep(sessions))
			checkoutGroup.POST("/promo", checkoutControllers.ApplyPromo(db, sessions))
			checkoutGroup.POST("/reward", checkoutControllers.ApplyReward(db, sessions))
			checkoutGroup.POST("/submit", checkoutControllers.Submit(db, sessions, hub))
		}

		subGroup := userGroup.Group("/subscription")
		{
			subGroup.GET("/", subscriptionControllers.GetMySubscription(db))
			subGroup.POST("/", subscriptionControllers.Purchase(db, hub))
			subGroup.DELETE("/", subscriptionControllers.Cancel(db, hub))
		}

		userGroup.POST("/reviews", reviewControllers.SubmitReview())
	}
}
