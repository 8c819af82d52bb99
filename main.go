package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/dineboard/reservation-app/config"
	"github.com/dineboard/reservation-app/middlewares"
	"github.com/dineboard/reservation-app/models"
	"github.com/dineboard/reservation-app/router"
	"github.com/dineboard/reservation-app/services"
	"github.com/dineboard/reservation-app/utils"
	"gorm.io/gorm"
)

func init() {
	// Load .env file di awal sebelum apapun
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	// Initialize DB
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	// Set gin mode
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	// Rate limiter global (50 request per detik per IP)
	rateLimiter := middlewares.NewRateLimiter(50, 1)

	// Monitor reservasi: tutup otomatis booking yang lewat jam selesai
	monitor := services.NewReservationMonitor(db)
	monitor.Start()
	defer monitor.Stop()

	// Bersihkan token blacklist yang sudah kadaluarsa
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			utils.CleanupBlacklist()
		}
	}()

	// Setup router
	r := router.SetupRouter(db)
	r.Use(rateLimiter.RateLimit())

	// Set trusted proxies
	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	// Run server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Business{},
		&models.TableType{},
		&models.ReservationSetting{},
		&models.CapacitySetting{},
		&models.Customer{},
		&models.Reservation{},
		&models.ProductCategory{},
		&models.Product{},
		&models.Notification{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
