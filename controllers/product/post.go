package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AmanMishra107/sweet-artisan-bakery/models"
	"github.com/AmanMishra107/sweet-artisan-bakery/realtime"
)

type CreateProductInput struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Price       *float64 `json:"price" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	ImageURL    string   `json:"image_url"`
	InStock     *bool    `json:"in_stock"`
}

// CreateProduct adds a new catalog item and notifies live clients.
func CreateProduct(db *gorm.DB, hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Description) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name and description are required"})
			return
		}
		if *input.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
			return
		}
		if !models.ValidCategory(input.Category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
			return
		}

		inStock := true
		if input.InStock != nil {
			inStock = *input.InStock
		}

		product := models.Product{
			Name:        strings.TrimSpace(input.Name),
			Description: strings.TrimSpace(input.Description),
			Price:       *input.Price,
			Category:    input.Category,
			ImageURL:    strings.TrimSpace(input.ImageURL),
			InStock:     inStock,
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		hub.Notify("products", "insert")
		c.JSON(http.StatusCreated, product)
	}
}
