// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import "context"

// PasswordHasher defines the interface for password hashing and verification.
// Both calls are CPU-bound and may wait for a free worker; ctx bounds that wait.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(ctx context.Context, password string) (string, error)

	// Check compares a plaintext password with a hash. A mismatch or a
	// malformed hash is (false, nil); the error is reserved for ctx ending
	// before a worker became free.
	Check(ctx context.Context, password, hash string) (bool, error)
}
