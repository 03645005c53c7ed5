// Package model defines the data structures used throughout the application.
package model

import "time"

// Identity is a registered user's credential record.
//
// Username and Email are each unique across the store (enforced by the
// database, not by a read-then-write check — see repository/sqlite).
// PasswordHash is a bcrypt hash; the salt lives inside the hash string,
// so there is no separate salt column.
//
// The record is immutable after signup and never deleted by this system.
type Identity struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never serialised
	CreatedAt    time.Time `json:"createdAt"`
}
