package store

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/lukasmoe/authgate/internal/models"
	"gorm.io/gorm"
)

// tokenBytes is the entropy of an opaque refresh token: 32 bytes gives
// 256 bits, hex-encoded to 64 characters.
const tokenBytes = 32

// RefreshTokenStore persists opaque refresh tokens. The raw token value
// is stored and looked up directly, so the unique index doubles as the
// lookup path.
type RefreshTokenStore struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

func NewRefreshTokenStore(db *gorm.DB, ttl time.Duration) *RefreshTokenStore {
	return &RefreshTokenStore{db: db, ttl: ttl, now: time.Now}
}

// Issue generates a random opaque token for userID, persists it with an
// expiry of now+TTL, and returns the raw token value.
func (s *RefreshTokenStore) Issue(userID uint) (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)

	record := models.RefreshToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return "", err
	}
	return token, nil
}

// FindValid returns the record for token only if it is unrevoked and
// unexpired; otherwise gorm.ErrRecordNotFound. Revoked and expired
// tokens are indistinguishable from absent ones on purpose.
func (s *RefreshTokenStore) FindValid(token string) (*models.RefreshToken, error) {
	var record models.RefreshToken
	err := s.db.
		Where("token = ? AND revoked_at IS NULL AND expires_at > ?", token, s.now()).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Revoke soft-deletes the token by setting revoked_at. It is idempotent:
// revoking an unknown or already-revoked token is a no-op. The row is
// never deleted, preserving the audit trail.
func (s *RefreshTokenStore) Revoke(token string) error {
	return s.db.Model(&models.RefreshToken{}).
		Where("token = ? AND revoked_at IS NULL", token).
		Update("revoked_at", s.now()).Error
}

// RevokeAllForUser invalidates every live token belonging to userID.
// Exposed for "log out everywhere"; not reachable from any route yet.
func (s *RefreshTokenStore) RevokeAllForUser(userID uint) error {
	return s.db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", s.now()).Error
}

// DeleteExpiredBefore hard-deletes rows whose expiry predates cutoff.
// Used only by the retention sweeper; revocation never deletes.
func (s *RefreshTokenStore) DeleteExpiredBefore(cutoff time.Time) (int64, error) {
	res := s.db.Where("expires_at < ?", cutoff).Delete(&models.RefreshToken{})
	return res.RowsAffected, res.Error
}
