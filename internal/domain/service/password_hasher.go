// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password. Repeated calls
	// with the same plaintext yield different outputs because the salt is
	// random per call.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a stored hash. It returns
	// false on any mismatch, including a structurally invalid hash.
	Check(password, hash string) bool

	// ValidatePasswordStrength checks a plaintext password against the
	// configured strength policy before it is accepted at registration.
	ValidatePasswordStrength(password string) error
}
