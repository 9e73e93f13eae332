package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/askhubdev/askhub/backend/internal/database"
	"github.com/askhubdev/askhub/backend/internal/handlers"
	"github.com/askhubdev/askhub/backend/internal/middleware"
)

type Server struct {
	db      database.Service
	handler *handlers.Handler
}

// NewServer creates and configures a new server
func NewServer() *http.Server {
	// Initialize database
	db, err := database.New()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Create unified handler
	handler := handlers.NewHandler(db.GetDB())

	// Create server instance
	newServer := &Server{
		db:      db,
		handler: handler,
	}

	// Configure Gin router
	router := newServer.RegisterRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // local dev fallback
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         "0.0.0.0:" + port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("🚀 Server starting on port %s\n", port)
	fmt.Println("📝 Press Ctrl+C to stop the server")

	return server
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	r.Use(middleware.RequestID())

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	// API routes
	api := r.Group("/api")
	{
		// Question routes (public reads)
		api.GET("/questions", s.handler.Question.GetQuestions)
		api.GET("/questions/:id", s.handler.Question.GetQuestion)

		// Tag routes (public reads)
		api.GET("/tags", s.handler.Tag.GetTags)

		// Protected routes (authenticated caller required)
		protected := api.Group("")
		protected.Use(middleware.RequireUser())
		{
			// Question protected routes
			protected.POST("/questions", s.handler.Question.AskQuestion)
			protected.POST("/questions/:id/answers", s.handler.Question.PostAnswer)

			// Vote protected routes
			protected.POST("/questions/:id/vote", s.handler.Vote.VoteQuestion)
			protected.POST("/answers/:id/vote", s.handler.Vote.VoteAnswer)
		}
	}

	return r
}
