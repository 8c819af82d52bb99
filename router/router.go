package router

import (
	"github.com/gin-gonic/gin"
	"github.com/dineboard/reservation-app/controllers"
	"github.com/dineboard/reservation-app/middlewares"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	// Apply security middlewares
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(db)
	businessCtrl := controllers.NewBusinessController(db)
	tableTypeCtrl := controllers.NewTableTypeController(db)
	settingCtrl := controllers.NewReservationSettingController(db)
	reservationCtrl := controllers.NewReservationController(db)
	customerCtrl := controllers.NewCustomerController(db)
	categoryCtrl := controllers.NewProductCategoryController(db)
	productCtrl := controllers.NewProductController(db)
	notificationCtrl := controllers.NewNotificationController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter untuk login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Ketersediaan slot boleh dilihat tanpa login (widget booking)
	r.GET("/availability", reservationCtrl.GetAvailability)

	// Katalog produk untuk halaman publik
	r.GET("/categories", categoryCtrl.GetAllCategories)
	r.GET("/products", productCtrl.GetAllProducts)
	r.GET("/products/by-category", productCtrl.GetProductsByCategory)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	// Profil user
	auth.GET("/profile", userCtrl.GetProfile)
	auth.POST("/logout", userCtrl.Logout)
	auth.GET("/users", middlewares.RequireRole("admin"), userCtrl.GetAllUsers)

	// BUSINESS PROFILE (admin/manager)
	auth.GET("/business", businessCtrl.GetProfile)
	auth.PUT("/business", middlewares.RequireRole("manager"), businessCtrl.UpsertProfile)
	auth.GET("/dashboard/stats", businessCtrl.GetDashboardStats)

	// TABLE TYPES (admin/manager)
	auth.GET("/table-types", tableTypeCtrl.GetAllTableTypes)
	auth.POST("/table-types", middlewares.RequireRole("manager"), tableTypeCtrl.CreateTableType)
	auth.GET("/table-types/:type_id", tableTypeCtrl.GetTableTypeByID)
	auth.PATCH("/table-types/:type_id", middlewares.RequireRole("manager"), tableTypeCtrl.UpdateTableType)
	auth.DELETE("/table-types/:type_id", middlewares.RequireRole("manager"), tableTypeCtrl.DeleteTableType)

	// RESERVATION SETTINGS (admin/manager)
	auth.GET("/settings", settingCtrl.GetAllSettings)
	auth.POST("/settings", middlewares.RequireRole("manager"), settingCtrl.CreateSetting)
	auth.GET("/settings/:setting_id", settingCtrl.GetSettingByID)
	auth.PATCH("/settings/:setting_id", middlewares.RequireRole("manager"), settingCtrl.UpdateSetting)
	auth.DELETE("/settings/:setting_id", middlewares.RequireRole("manager"), settingCtrl.DeleteSetting)

	// RESERVATIONS (host/manager/admin)
	auth.GET("/reservations", reservationCtrl.GetAllReservations)
	auth.POST("/reservations", reservationCtrl.CreateReservation)
	auth.GET("/reservations/:reservation_id", reservationCtrl.GetReservationByID)
	auth.PATCH("/reservations/:reservation_id/status", reservationCtrl.UpdateReservationStatus)
	auth.DELETE("/reservations/:reservation_id", middlewares.RequireRole("manager"), reservationCtrl.DeleteReservation)

	// CUSTOMERS (guest book)
	auth.GET("/customers", customerCtrl.GetAllCustomers)
	auth.POST("/customers", customerCtrl.CreateCustomer)
	auth.GET("/customers/:customer_id", customerCtrl.GetCustomerByID)
	auth.PATCH("/customers/:customer_id", customerCtrl.UpdateCustomer)
	auth.DELETE("/customers/:customer_id", middlewares.RequireRole("manager"), customerCtrl.DeleteCustomer)

	// PRODUCT CATEGORIES (manager/admin)
	auth.POST("/categories", middlewares.RequireRole("manager"), categoryCtrl.CreateCategory)
	auth.PATCH("/categories/:cat_id", middlewares.RequireRole("manager"), categoryCtrl.UpdateCategory)
	auth.DELETE("/categories/:cat_id", middlewares.RequireRole("manager"), categoryCtrl.DeleteCategory)

	// PRODUCTS (manager/admin)
	auth.GET("/products", productCtrl.GetAllProducts)
	auth.POST("/products", middlewares.RequireRole("manager"), productCtrl.CreateProduct)
	auth.GET("/products/:product_id", productCtrl.GetProductByID)
	auth.PATCH("/products/:product_id", middlewares.RequireRole("manager"), productCtrl.UpdateProduct)
	auth.DELETE("/products/:product_id", middlewares.RequireRole("manager"), productCtrl.DeleteProduct)

	// NOTIFICATIONS (staff)
	auth.GET("/notifications", notificationCtrl.GetAllNotifications)
	auth.POST("/notifications", notificationCtrl.CreateNotification)
	auth.GET("/notifications/:notif_id", notificationCtrl.GetNotificationByID)
	auth.PATCH("/notifications/:notif_id/read", notificationCtrl.MarkNotificationRead)
	auth.DELETE("/notifications/:notif_id", notificationCtrl.DeleteNotification)

	// WebSocket endpoint dengan middleware khusus
	wsGroup := r.Group("/events")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/ws", controllers.EventsHandler)
	}

	return r
}
