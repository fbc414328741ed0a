package main

import (
	"log"
	"net/http"
	"os"

	"food-marketplace-api/config"
	"food-marketplace-api/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	// Load configuration and initialize database
	config.Load()
	config.InitDB()

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Food Marketplace API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the Food Marketplace API",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"roles":   []string{"customer", "restaurant_owner", "admin"},
		})
	})

	// Register all routes
	routes.SetupRoutes(r)

	// Start server
	log.Printf("Server running on http://localhost:%s", config.S.Port)
	if err := r.Run(":" + config.S.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
