package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AmanMishra107/sweet-artisan-bakery/auth"
	"github.com/AmanMishra107/sweet-artisan-bakery/middleware"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", auth.SignUp(db))
		authGroup.POST("/signin", auth.SignIn(db))
		authGroup.POST("/signout", auth.SignOut())
		authGroup.POST("/google", auth.GoogleLogin(db))
		authGroup.POST("/reset-password", auth.ResetPassword(db))
		authGroup.GET("/session", middleware.ValidateToken, auth.Session(db))
	}
}
