package main

import (
	"log"
	"time"

	"burgero/internal/config"
	"burgero/internal/database"
	"burgero/internal/handlers"
	"burgero/internal/middleware"
	"burgero/internal/migrations"
	"burgero/internal/redis"
	"burgero/internal/repository"
	"burgero/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Seed default data
	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	// Initialize repositories
	adminRepo := repository.NewAdminUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	menuRepo := repository.NewMenuItemRepository(db)
	specialRepo := repository.NewSpecialItemRepository(db)

	// Initialize services
	authService := services.NewAuthService(adminRepo, cfg.JWTSecret, time.Duration(cfg.TokenTTL)*time.Second)
	orderService := services.NewOrderService(orderRepo, redisClient, cfg.StrictTransitions, time.Duration(cfg.StatsCacheTTL)*time.Second)
	messageService := services.NewMessageService(messageRepo, redisClient)
	menuService := services.NewMenuService(menuRepo, specialRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	orderHandler := handlers.NewOrderHandler(orderService)
	messageHandler := handlers.NewMessageHandler(messageService)
	menuHandler := handlers.NewMenuHandler(menuService)
	healthHandler := handlers.NewHealthHandler()

	// Setup routes
	router := gin.Default()
	requireAuth := middleware.RequireAuth(authService)

	api := router.Group("/api")
	{
		api.GET("/health", healthHandler.Check)

		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/check", requireAuth, authHandler.CheckAuth)
		}

		orders := api.Group("/orders")
		{
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("", requireAuth, orderHandler.GetAllOrders)
			orders.GET("/:id", requireAuth, orderHandler.GetOrderByID)
			orders.GET("/status/:status", requireAuth, orderHandler.GetOrdersByStatus)
			orders.PUT("/:id/status", requireAuth, orderHandler.UpdateOrderStatus)
			orders.DELETE("/:id", requireAuth, orderHandler.DeleteOrder)
			orders.GET("/stats/summary", requireAuth, orderHandler.GetOrderStats)
		}

		messages := api.Group("/messages")
		{
			messages.POST("", messageHandler.CreateMessage)
			messages.GET("", requireAuth, messageHandler.GetAllMessages)
			messages.GET("/unread", requireAuth, messageHandler.GetUnreadMessages)
			messages.GET("/stats", requireAuth, messageHandler.GetMessageStats)
			messages.GET("/:id", requireAuth, messageHandler.GetMessageByID)
			messages.PUT("/:id/read", requireAuth, messageHandler.MarkAsRead)
			messages.PUT("/read/all", requireAuth, messageHandler.MarkAllAsRead)
			messages.DELETE("/:id", requireAuth, messageHandler.DeleteMessage)
			messages.DELETE("", requireAuth, messageHandler.DeleteAllMessages)
		}

		menu := api.Group("/menu")
		{
			menu.GET("/items", menuHandler.GetMenuItems)
			menu.POST("/items", requireAuth, menuHandler.AddMenuItem)
			menu.PUT("/items/:id", requireAuth, menuHandler.UpdateMenuItem)
			menu.DELETE("/items/:id", requireAuth, menuHandler.DeleteMenuItem)

			menu.GET("/special", menuHandler.GetSpecialItems)
			menu.POST("/special", requireAuth, menuHandler.AddSpecialItem)
			menu.PUT("/special/:id", requireAuth, menuHandler.UpdateSpecialItem)
			menu.DELETE("/special/:id", requireAuth, menuHandler.DeleteSpecialItem)
		}
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
