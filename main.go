package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/AmanMishra107/sweet-artisan-bakery/models"
	"github.com/AmanMishra107/sweet-artisan-bakery/realtime"
	"github.com/AmanMishra107/sweet-artisan-bakery/routes"
)

func main() {
	log.Println("✅ Starting Sweet Artisan Bakery API...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.AdminUser{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.SubscriptionPlan{},
		&models.UserSubscription{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	seedSubscriptionPlans(db)

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Realtime change feed
	hub := realtime.NewHub()

	// Setup routes
	routes.SetupRoutes(r, db, hub)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}

// seedSubscriptionPlans inserts the three membership plans on first boot so a
// fresh database has something to sell.
func seedSubscriptionPlans(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.SubscriptionPlan{}).Count(&count).Error; err != nil {
		log.Printf("❌ Failed to check subscription plans: %v", err)
		return
	}
	if count > 0 {
		return
	}

	plans := []models.SubscriptionPlan{
		{
			Name:         "Sweet Basic",
			Tier:         "basic",
			PriceMonthly: 99,
			Description:  "10% off every order and free delivery over ₹300",
			Features:     `["10% discount on all orders","Free delivery on orders over ₹300","Standard support"]`,
		},
		{
			Name:         "Sweet Premium",
			Tier:         "premium",
			PriceMonthly: 199,
			Description:  "20% off, free delivery over ₹200, early access and custom cakes",
			Features:     `["20% discount on all orders","Free delivery on orders over ₹200","Priority support","Early access to new items","Custom cake orders"]`,
		},
		{
			Name:         "Sweet Royal",
			Tier:         "royal",
			PriceMonthly: 299,
			Description:  "30% off, free delivery always, VIP support and birthday specials",
			Features:     `["30% discount on all orders","Free delivery on every order","VIP support","Early access to new items","Custom cake orders","Birthday specials"]`,
		},
	}
	if err := db.Create(&plans).Error; err != nil {
		log.Printf("❌ Failed to seed subscription plans: %v", err)
		return
	}
	log.Println("✅ Seeded subscription plans")
}
