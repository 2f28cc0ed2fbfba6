package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AmanMishra107/sweet-artisan-bakery/models"
	"github.com/AmanMishra107/sweet-artisan-bakery/realtime"
)

type UpdateProductInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	ImageURL    *string  `json:"image_url"`
	InStock     *bool    `json:"in_stock"`
}

// UpdateProduct applies a partial update to an existing product. Concurrent
// edits are last-write-wins; there is no version check.
func UpdateProduct(db *gorm.DB, hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param("id")
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Name != nil {
			if strings.TrimSpace(*input.Name) == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Name must not be empty"})
				return
			}
			product.Name = strings.TrimSpace(*input.Name)
		}
		if input.Description != nil {
			product.Description = strings.TrimSpace(*input.Description)
		}
		if input.Price != nil {
			if *input.Price < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
				return
			}
			product.Price = *input.Price
		}
		if input.Category != nil {
			if !models.ValidCategory(*input.Category) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
				return
			}
			product.Category = *input.Category
		}
		if input.ImageURL != nil {
			product.ImageURL = strings.TrimSpace(*input.ImageURL)
		}
		if input.InStock != nil {
			product.InStock = *input.InStock
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		hub.Notify("products", "update")
		c.JSON(http.StatusOK, product)
	}
}
