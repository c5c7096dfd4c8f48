package services

import (
	"github.com/lukasmoe/authgate/internal/models"
	"github.com/lukasmoe/authgate/pkg/logger"
	"gorm.io/gorm"
)

// Audit event names.
const (
	EventRegister      = "register"
	EventLoginSuccess  = "login_success"
	EventLoginFailed   = "login_failed"
	EventRefresh       = "refresh"
	EventRefreshFailed = "refresh_failed"
	EventLogout        = "logout"
	EventRevokeAll     = "revoke_all"
)

// AuditService appends auth activity to the auth_events table. Writes
// are best-effort: a failed audit insert is logged and swallowed so it
// never fails the request that triggered it.
type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

func (s *AuditService) Record(event string, userID *uint, email, ip, userAgent, detail string) {
	entry := models.AuthEvent{
		Event:     event,
		UserID:    userID,
		Email:     email,
		IP:        ip,
		UserAgent: userAgent,
		Detail:    detail,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		logger.Error().Err(err).Str("event", event).Msg("failed to write auth event")
	}
}
