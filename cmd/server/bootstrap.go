package main

import (
	"time"

	"github.com/lukasmoe/authgate/internal/auth"
	"github.com/lukasmoe/authgate/internal/config"
	"github.com/lukasmoe/authgate/internal/handlers"
	"github.com/lukasmoe/authgate/internal/models"
	"github.com/lukasmoe/authgate/internal/services"
	"github.com/lukasmoe/authgate/internal/store"
	"github.com/lukasmoe/authgate/pkg/logger"
	"gorm.io/gorm"
)

// appServices holds every constructed dependency. Construction happens
// once here; nothing below this layer reaches for globals.
type appServices struct {
	db            *gorm.DB
	authHandler   *handlers.AuthHandler
	userHandler   *handlers.UserHandler
	healthHandler *handlers.HealthHandler
	codec         *auth.TokenCodec
	retention     *services.RetentionService
}

// bootstrap wires storage, crypto components, services and handlers.
func bootstrap(cfg *config.Config) *appServices {
	db, err := models.OpenDB(&cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(db); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	accessTTL := time.Duration(cfg.JWT.AccessTTLMinutes) * time.Minute
	refreshTTL := time.Duration(cfg.JWT.RefreshTTLDays) * 24 * time.Hour

	users := store.NewCredentialStore(db)
	tokens := store.NewRefreshTokenStore(db, refreshTTL)
	hasher := auth.NewPasswordHasher()
	codec := auth.NewTokenCodec(cfg.JWT.Secret, accessTTL)

	sessions := services.NewSessionService(users, tokens, hasher, codec)
	audit := services.NewAuditService(db)

	retention := services.NewRetentionService(tokens, cfg.Retention)
	if err := retention.Start(); err != nil {
		logger.Fatalf("Failed to start retention sweeper: %v", err)
	}

	return &appServices{
		db:            db,
		authHandler:   handlers.NewAuthHandler(sessions, audit, cfg.Cookie.Secure, refreshTTL),
		userHandler:   handlers.NewUserHandler(sessions),
		healthHandler: handlers.NewHealthHandler(db),
		codec:         codec,
		retention:     retention,
	}
}

// shutdown stops background work.
func (s *appServices) shutdown() {
	s.retention.Stop()
}
