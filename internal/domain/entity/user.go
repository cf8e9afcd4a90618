// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the registered principal of the system. The email is the login
// handle, unique and immutable after creation. PasswordHash stores the bcrypt
// hash of the password; the plaintext never reaches this entity.
type User struct {
	ID           uuid.UUID // Generated at registration; opaque to clients.
	Email        string    // Login handle, unique across all users.
	Name         string    // Display name.
	PasswordHash string    // bcrypt hash, never serialized into API responses.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification.
}
