package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"craps-sim-backend/internal/config"
	"craps-sim-backend/internal/handlers"
	"craps-sim-backend/internal/middleware"
	"craps-sim-backend/internal/sim"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := config.NewLogger(os.Getenv("LOG_LEVEL") == "debug")
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	runner := sim.NewRunner(sugar)
	simHandler := handlers.NewSimHandler(cfg, runner, sugar)
	wsHandler := handlers.NewStreamHandler(cfg, sugar)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(sugar))

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.GET("/health", simHandler.Health)

	api := router.Group("/api")
	{
		api.POST("/simulate", simHandler.Simulate)
		api.GET("/policies", simHandler.Policies)
		api.GET("/ws", wsHandler.HandleWebSocket)
	}

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	sugar.Infof("server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		sugar.Fatalf("failed to start server: %v", err)
	}
}
