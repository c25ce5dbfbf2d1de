package main

import (
	"log"

	"github.com/egmrc/impact-offers/config"
	"github.com/egmrc/impact-offers/controllers"
	"github.com/egmrc/impact-offers/routes"
	"github.com/egmrc/impact-offers/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	config.InitDB()

	// Create the bootstrap superadmin if configured
	if err := controllers.EnsureSuperAdmin(); err != nil {
		utils.LogError("Failed to create bootstrap superadmin: %v", err)
		log.Fatal("Failed to create bootstrap superadmin:", err)
	}

	// Initialize Google OAuth for the admin panel
	config.InitGoogleOAuth()

	// Set up router
	router := routes.SetupRouter()

	// Add middleware
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	utils.LogInfo("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
