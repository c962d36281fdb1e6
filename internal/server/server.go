package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/campusvoice/policy-board/backend/internal/config"
	"github.com/campusvoice/policy-board/backend/internal/database"
	"github.com/campusvoice/policy-board/backend/internal/handlers"
	"github.com/campusvoice/policy-board/backend/internal/middleware"
	"github.com/campusvoice/policy-board/backend/internal/token"
)

type Server struct {
	db      *database.Database
	handler *handlers.Handler
	issuer  *token.Issuer
}

// New creates and configures a new server
func New(cfg *config.Config) (*http.Server, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	issuer := token.NewIssuer(cfg.JWTSecret, time.Hour)
	handler := handlers.NewHandler(db.DB, issuer)

	newServer := &Server{
		db:      db,
		handler: handler,
		issuer:  issuer,
	}

	router := newServer.RegisterRoutes()

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server, nil
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	// Auth routes (public)
	r.POST("/login", s.handler.Auth.Login)
	r.POST("/signup", s.handler.Auth.Signup)

	// Policy routes (public reads)
	r.GET("/policies/academic-year", s.handler.Policy.GetPoliciesByAcademicYear)
	r.GET("/policies/:policyId/votes", s.handler.Policy.GetPolicyVotes)

	// Protected routes (authentication required)
	protected := r.Group("")
	protected.Use(middleware.RequireAuth(s.issuer))
	{
		protected.POST("/policies", s.handler.Policy.CreatePolicy)
		protected.POST("/policies/:policyId/upvote", s.handler.Policy.UpvotePolicy)
		protected.POST("/policies/:policyId/downvote", s.handler.Policy.DownvotePolicy)
	}

	return r
}
