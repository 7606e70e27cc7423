// Package models defines server-side data models persisted in the database.
package models

import "time"

// LoginToken is a one-time token a user exchanges for a session credential.
// Only the keyed hash of the token is stored.
type LoginToken struct {
	TokenHash string
	UserID    string
	Expires   time.Time
	UsedAt    *time.Time
}

// Used reports whether the token has already been exchanged.
func (t *LoginToken) Used() bool {
	return t.UsedAt != nil
}

// Expired reports whether the token is past its expiry at now.
func (t *LoginToken) Expired(now time.Time) bool {
	return !now.Before(t.Expires)
}
