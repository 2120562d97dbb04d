package models

import "time"

// RefreshTokenValidity is the fixed lifetime of a refresh token.
const RefreshTokenValidity = 7 * 24 * time.Hour

// RefreshToken is an opaque, persisted, revocable credential used solely
// to mint new access tokens. Expired rows are eligible for storage-side
// cleanup; validity is always re-checked here regardless.
type RefreshToken struct {
	Base
	Token     string    `gorm:"uniqueIndex;size:64;not null" json:"token"`
	UserID    string    `gorm:"type:uuid;index;not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
	IsRevoked bool      `gorm:"default:false" json:"is_revoked"`
	UserAgent string    `json:"-"`
	IP        string    `json:"-"`
}

// Valid reports whether the token may still mint access tokens.
func (t *RefreshToken) Valid(now time.Time) bool {
	return !t.IsRevoked && t.ExpiresAt.After(now)
}
