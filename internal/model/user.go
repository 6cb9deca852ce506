// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// WHY PasswordHash WITH json:"-"?
// The bcrypt hash must never leave the server. The `json:"-"` tag tells
// encoding/json to skip the field entirely, so even if a handler encodes a
// full User by accident, the hash is not serialized. API responses still use
// explicit response structs, but the tag is a second line of defence.
//
// Email carries a UNIQUE constraint in the database (case-sensitive as
// stored). That constraint, not application code, is what enforces
// one-account-per-email under concurrent registrations.
type User struct {
	ID           string    `json:"id"        db:"id"`
	Name         string    `json:"name"      db:"name"`
	Email        string    `json:"email"     db:"email"`
	PasswordHash string    `json:"-"         db:"password"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
