package auth

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"

	firebase "firebase.google.com/go"
	firebaseauth "firebase.google.com/go/auth"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/option"
	"gorm.io/gorm"

	"github.com/AmanMishra107/sweet-artisan-bakery/models"
)

var (
	firebaseOnce sync.Once
	firebaseErr  error
	firebaseAuth *firebaseauth.Client
	projectID    string
)

// initFirebase sets up the Firebase verifier from FIREBASE_CREDENTIALS_JSON
// and FIREBASE_PROJECT_ID. Deployments without Google sign-in simply leave
// them unset; the endpoint then reports the feature as unavailable instead of
// refusing to boot.
func initFirebase() error {
	firebaseOnce.Do(func() {
		credsJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON")
		projectID = os.Getenv("FIREBASE_PROJECT_ID")
		if credsJSON == "" || projectID == "" {
			firebaseErr = errors.New("google sign-in is not configured")
			return
		}

		ctx := context.Background()
		opt := option.WithCredentialsJSON([]byte(credsJSON))
		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opt)
		if err != nil {
			firebaseErr = err
			return
		}
		firebaseAuth, firebaseErr = app.Auth(ctx)
	})
	return firebaseErr
}

// POST /auth/google. Verifies a Firebase ID token, creates or updates the
// user and issues a first-party session token.
func GoogleLogin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			IDToken string `json:"idToken" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		if err := initFirebase(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		token, err := firebaseAuth.VerifyIDTokenAndCheckRevoked(ctx, req.IDToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or revoked ID token"})
			return
		}
		if token.Audience != projectID {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token audience"})
			return
		}

		email, ok := token.Claims["email"].(string)
		if !ok || email == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email not found in token"})
			return
		}
		name, _ := token.Claims["name"].(string)
		picture, _ := token.Claims["picture"].(string)
		googleUserID := token.UID

		var user models.User
		err = db.Preload("Cart.Items").Where("id = ?", googleUserID).First(&user).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = models.User{
				ID:       googleUserID,
				Email:    email,
				FullName: name,
				Picture:  picture,
				Provider: "google",
				Cart:     models.Cart{UserID: googleUserID},
			}
			txErr := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Create(&user).Error; err != nil {
					return err
				}
				return tx.Create(&models.Profile{UserID: googleUserID, FullName: name, AvatarURL: picture}).Error
			})
			if txErr != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
				return
			}
		case err == nil:
			db.Model(&user).Updates(models.User{FullName: name, Picture: picture})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"user":    user,
			"token":   IssueJWT(email, "user", googleUserID, name, picture),
		})
	}
}
