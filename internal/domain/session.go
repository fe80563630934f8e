package domain

import "time"

// Session binds a cookie-carried token to an external Discord identity.
// The user identity is denormalized into the row: the source of truth for
// users is the Discord guild, not this service, so there is no users table.
type Session struct {
	SessionID  string    `db:"session_id" json:"session_id"`
	UserID     string    `db:"user_id" json:"user_id"`
	UserName   string    `db:"user_name" json:"user_name"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	LastAccess time.Time `db:"last_access" json:"last_access"`
	ExpiresAt  time.Time `db:"expires_at" json:"expires_at"`
}

// SessionInfo is what a successful validation yields to callers.
type SessionInfo struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
}
