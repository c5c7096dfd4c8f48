package services

import (
	"time"

	"github.com/lukasmoe/authgate/internal/config"
	"github.com/lukasmoe/authgate/internal/store"
	"github.com/lukasmoe/authgate/pkg/logger"
	"github.com/robfig/cron/v3"
)

// RetentionService hard-deletes refresh-token rows whose expiry is older
// than the configured retention window. Revocation itself never deletes;
// this is a separate housekeeping policy and is disabled when Days <= 0.
type RetentionService struct {
	tokens    *store.RefreshTokenStore
	cfg       config.RetentionConfig
	scheduler *cron.Cron
}

func NewRetentionService(tokens *store.RefreshTokenStore, cfg config.RetentionConfig) *RetentionService {
	return &RetentionService{tokens: tokens, cfg: cfg}
}

// Start schedules the sweep. A disabled config is a no-op.
func (s *RetentionService) Start() error {
	if s.cfg.Days <= 0 {
		logger.Info().Msg("refresh token retention sweep disabled")
		return nil
	}

	s.scheduler = cron.New()
	if _, err := s.scheduler.AddFunc(s.cfg.Cron, s.sweep); err != nil {
		return err
	}
	s.scheduler.Start()
	logger.Info().Str("schedule", s.cfg.Cron).Int("days", s.cfg.Days).Msg("refresh token retention sweep scheduled")
	return nil
}

func (s *RetentionService) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *RetentionService) sweep() {
	cutoff := time.Now().AddDate(0, 0, -s.cfg.Days)
	deleted, err := s.tokens.DeleteExpiredBefore(cutoff)
	if err != nil {
		logger.Error().Err(err).Msg("retention sweep failed")
		return
	}
	if deleted > 0 {
		logger.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("swept expired refresh tokens")
	}
}
