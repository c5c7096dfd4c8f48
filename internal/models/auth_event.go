package models

import "time"

// AuthEvent records authentication activity (registrations, logins,
// refreshes, revocations) for auditing.
type AuthEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Event     string    `gorm:"size:50;index;not null" json:"event"`
	UserID    *uint     `gorm:"index" json:"user_id,omitempty"`
	Email     string    `gorm:"size:255" json:"email,omitempty"`
	IP        string    `gorm:"size:64" json:"ip,omitempty"`
	UserAgent string    `gorm:"size:500" json:"user_agent,omitempty"`
	Detail    string    `gorm:"size:500" json:"detail,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (AuthEvent) TableName() string { return "auth_events" }
