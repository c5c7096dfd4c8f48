package store

import (
	"errors"
	"testing"
	"time"

	"github.com/lukasmoe/authgate/internal/models"
	"gorm.io/gorm"
)

func newTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	users := NewCredentialStore(db)
	user, err := users.Create(email, "hash")
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func TestRefreshTokenStore_IssueAndFindValid(t *testing.T) {
	db := setupTestDB(t)
	user := newTestUser(t, db, "alice@example.com")
	tokens := NewRefreshTokenStore(db, 14*24*time.Hour)

	token, err := tokens.Issue(user.ID)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if len(token) != 64 {
		t.Errorf("token length = %d, expected 64 hex chars", len(token))
	}

	record, err := tokens.FindValid(token)
	if err != nil {
		t.Fatalf("FindValid() error = %v", err)
	}
	if record.UserID != user.ID {
		t.Errorf("UserID = %d, expected %d", record.UserID, user.ID)
	}
	if record.RevokedAt != nil {
		t.Error("fresh token should not be revoked")
	}
	if !record.ExpiresAt.After(time.Now()) {
		t.Error("fresh token should expire in the future")
	}
}

func TestRefreshTokenStore_Issue_UniqueTokens(t *testing.T) {
	db := setupTestDB(t)
	user := newTestUser(t, db, "alice@example.com")
	tokens := NewRefreshTokenStore(db, time.Hour)

	token1, _ := tokens.Issue(user.ID)
	token2, _ := tokens.Issue(user.ID)

	if token1 == token2 {
		t.Error("consecutive tokens should not collide")
	}
}

func TestRefreshTokenStore_FindValid_Unknown(t *testing.T) {
	db := setupTestDB(t)
	tokens := NewRefreshTokenStore(db, time.Hour)

	_, err := tokens.FindValid("no-such-token")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("FindValid for unknown token = %v, expected gorm.ErrRecordNotFound", err)
	}
}

func TestRefreshTokenStore_FindValid_Expired(t *testing.T) {
	db := setupTestDB(t)
	user := newTestUser(t, db, "alice@example.com")
	tokens := NewRefreshTokenStore(db, time.Hour)

	// Pin the clock so the token is already expired at lookup time.
	past := time.Now().Add(-2 * time.Hour)
	tokens.now = func() time.Time { return past }
	token, err := tokens.Issue(user.ID)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tokens.now = time.Now
	_, err = tokens.FindValid(token)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("FindValid for expired token = %v, expected gorm.ErrRecordNotFound", err)
	}
}

func TestRefreshTokenStore_Revoke(t *testing.T) {
	db := setupTestDB(t)
	user := newTestUser(t, db, "alice@example.com")
	tokens := NewRefreshTokenStore(db, time.Hour)

	token, _ := tokens.Issue(user.ID)

	if err := tokens.Revoke(token); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}

	_, err := tokens.FindValid(token)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("FindValid after revoke = %v, expected gorm.ErrRecordNotFound", err)
	}

	// The row survives revocation.
	var count int64
	db.Model(&models.RefreshToken{}).Where("token = ?", token).Count(&count)
	if count != 1 {
		t.Errorf("revoked token row count = %d, expected 1", count)
	}
}

func TestRefreshTokenStore_Revoke_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	user := newTestUser(t, db, "alice@example.com")
	tokens := NewRefreshTokenStore(db, time.Hour)

	token, _ := tokens.Issue(user.ID)

	if err := tokens.Revoke(token); err != nil {
		t.Fatalf("first Revoke() error = %v", err)
	}

	var first models.RefreshToken
	db.Where("token = ?", token).First(&first)

	if err := tokens.Revoke(token); err != nil {
		t.Fatalf("second Revoke() error = %v", err)
	}

	var second models.RefreshToken
	db.Where("token = ?", token).First(&second)

	if first.RevokedAt == nil || second.RevokedAt == nil {
		t.Fatal("revoked_at should be set")
	}
	if !first.RevokedAt.Equal(*second.RevokedAt) {
		t.Error("second revoke should not change the original revocation time")
	}
}

func TestRefreshTokenStore_Revoke_Unknown(t *testing.T) {
	db := setupTestDB(t)
	tokens := NewRefreshTokenStore(db, time.Hour)

	if err := tokens.Revoke("no-such-token"); err != nil {
		t.Errorf("Revoke of unknown token = %v, expected nil", err)
	}
}

func TestRefreshTokenStore_RevokeAllForUser(t *testing.T) {
	db := setupTestDB(t)
	alice := newTestUser(t, db, "alice@example.com")
	bob := newTestUser(t, db, "bob@example.com")
	tokens := NewRefreshTokenStore(db, time.Hour)

	aliceToken1, _ := tokens.Issue(alice.ID)
	aliceToken2, _ := tokens.Issue(alice.ID)
	bobToken, _ := tokens.Issue(bob.ID)

	if err := tokens.RevokeAllForUser(alice.ID); err != nil {
		t.Fatalf("RevokeAllForUser() error = %v", err)
	}

	for _, token := range []string{aliceToken1, aliceToken2} {
		if _, err := tokens.FindValid(token); !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Errorf("alice's token should be revoked, got %v", err)
		}
	}

	if _, err := tokens.FindValid(bobToken); err != nil {
		t.Errorf("bob's token should survive, got %v", err)
	}
}

func TestRefreshTokenStore_DeleteExpiredBefore(t *testing.T) {
	db := setupTestDB(t)
	user := newTestUser(t, db, "alice@example.com")
	tokens := NewRefreshTokenStore(db, time.Hour)

	past := time.Now().Add(-30 * 24 * time.Hour)
	tokens.now = func() time.Time { return past }
	oldToken, _ := tokens.Issue(user.ID)

	tokens.now = time.Now
	liveToken, _ := tokens.Issue(user.ID)

	deleted, err := tokens.DeleteExpiredBefore(time.Now().Add(-7 * 24 * time.Hour))
	if err != nil {
		t.Fatalf("DeleteExpiredBefore() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, expected 1", deleted)
	}

	var count int64
	db.Model(&models.RefreshToken{}).Where("token = ?", oldToken).Count(&count)
	if count != 0 {
		t.Error("expired token row should be gone")
	}

	if _, err := tokens.FindValid(liveToken); err != nil {
		t.Errorf("live token should survive the sweep, got %v", err)
	}
}
