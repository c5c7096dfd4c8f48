package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lukasmoe/authgate/internal/config"
	"github.com/lukasmoe/authgate/internal/middleware"
	"github.com/lukasmoe/authgate/pkg/logger"
)

// registerRoutes mounts middleware and all HTTP endpoints.
func registerRoutes(r *gin.Engine, cfg *config.Config, svc *appServices) {
	r.Use(logger.GinLogger())
	r.Use(logger.GinRecovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.ClientOrigin))

	r.GET("/health", svc.healthHandler.Check)

	// Credential-bearing routes get a tight per-IP limit.
	authLimiter := middleware.NewAuthRateLimiter(10, 10*time.Minute)

	auth := r.Group("/auth")
	{
		auth.POST("/register", authLimiter.Middleware(), svc.authHandler.Register)
		auth.POST("/login", authLimiter.Middleware(), svc.authHandler.Login)
		auth.POST("/refresh", svc.authHandler.Refresh)
		auth.POST("/logout", svc.authHandler.Logout)
	}

	protected := r.Group("/")
	protected.Use(middleware.AuthRequired(svc.codec))
	{
		protected.GET("/me", svc.userHandler.Me)
	}
}
