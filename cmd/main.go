package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"study-quiz-platform/internal/ai"
	"study-quiz-platform/internal/config"
	"study-quiz-platform/internal/telemetry"
	"study-quiz-platform/middleware"
	"study-quiz-platform/routes"
	"study-quiz-platform/services"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Connect to MongoDB
	mongoClient, err := config.ConnectMongoDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		mongoClient.Disconnect(ctx)
	}()

	db := mongoClient.Database(cfg.DBName)

	// Redis is optional: without it, rate limiting is disabled
	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Redis unavailable, rate limiting disabled: %v", err)
		redisClient = nil
	}

	// Tracing
	if cfg.TracingEnabled {
		shutdown, err := telemetry.InitTracer("study-quiz-platform", cfg.OTLPEndpoint)
		if err != nil {
			log.Printf("Failed to initialize tracing: %v", err)
		} else {
			defer shutdown()
		}
	}

	// Generation client and services
	aiClient := ai.NewClient(
		cfg.GeminiAPIKey,
		cfg.GeminiAPIURL,
		cfg.GeminiMaxRetries,
		time.Duration(cfg.GeminiRetryDelay)*time.Millisecond,
		time.Duration(cfg.GeminiTimeout)*time.Second,
	)
	documentStore := services.NewDocumentStore(db)
	quizService := services.NewQuizService(db, documentStore, aiClient, cfg)
	summarizer := services.NewSummarizationService(aiClient)
	flashcardGenerator := services.NewFlashcardGenerator(db, aiClient)

	// Study event reminder scan
	reminders := services.NewReminderService(db, time.Duration(cfg.ReminderInterval)*time.Minute)
	if err := reminders.Start(); err != nil {
		log.Printf("Failed to start reminder scheduler: %v", err)
	}
	defer reminders.Stop()

	// Initialize Gin router
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	if cfg.TracingEnabled {
		router.Use(middleware.TracingMiddleware())
		router.Use(middleware.EnrichTrace())
	}
	router.Use(middleware.RateLimitMiddleware(redisClient, cfg))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
	})

	// Setup routes
	authMiddleware := middleware.NewAuthMiddleware(cfg)
	routes.SetupAuthRoutes(router, cfg, mongoClient)
	routes.SetupQuizRoutes(router, cfg, quizService, authMiddleware)
	routes.SetupGenerateRoutes(router, cfg, aiClient, summarizer, flashcardGenerator, authMiddleware)
	routes.SetupNoteRoutes(router, cfg, mongoClient, authMiddleware)
	routes.SetupFlashcardRoutes(router, cfg, mongoClient, authMiddleware)
	routes.SetupStudyEventRoutes(router, cfg, mongoClient, authMiddleware)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
