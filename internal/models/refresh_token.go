package models

import "time"

// RefreshToken is the server-side anchor for a session. Revocation is a
// soft delete: RevokedAt is set exactly once and the row is kept as an
// audit record. A token is usable only while RevokedAt is NULL and
// ExpiresAt is in the future.
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	Token     string     `gorm:"uniqueIndex;size:128;not null" json:"-"`
	ExpiresAt time.Time  `gorm:"index;not null" json:"expires_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	User      *User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (RefreshToken) TableName() string { return "refresh_tokens" }
