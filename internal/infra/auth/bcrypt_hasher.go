// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"context"
	"encoding/base64"
	"time"

	"folks/config"
	"folks/internal/domain/service"
	"folks/internal/errors"
	"folks/internal/infra/metrics"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// DefaultCost matches the work factor used since the first release.
const DefaultCost = 10

// bcryptSalt decodes the 22-character salt of a modular-crypt bcrypt string.
// Strict mode refuses non-zero trailing bits, which bcrypt itself ignores.
var bcryptSalt = base64.NewEncoding("./ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789").
	WithPadding(base64.NoPadding).
	Strict()

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
// At most `workers` bcrypt computations run at once; the rest wait on the semaphore
// instead of piling onto every CPU.
type bcryptHasher struct {
	cost    int
	workers *semaphore.Weighted
	metrics metrics.Recorder
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config, recorder metrics.Recorder) service.PasswordHasher {
	return newBcryptHasher(cfg.Auth.BcryptCost, cfg.Auth.HashWorkers, recorder)
}

// NewBcryptHasherWithCost builds a hasher without metrics, mostly for tests and tools.
func NewBcryptHasherWithCost(cost, workers int) service.PasswordHasher {
	return newBcryptHasher(cost, workers, metrics.Nop{})
}

func newBcryptHasher(cost, workers int, recorder metrics.Recorder) *bcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	if workers < 1 {
		workers = 1
	}
	if recorder == nil {
		recorder = metrics.Nop{}
	}

	return &bcryptHasher{
		cost:    cost,
		workers: semaphore.NewWeighted(int64(workers)),
		metrics: recorder,
	}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(ctx context.Context, password string) (string, error) {
	var hash []byte
	err := h.run(ctx, "hash", func() error {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(password), h.cost)

		return err
	})
	if err != nil {
		return "", errors.Wrap(err, "bcrypt hash")
	}

	return string(hash), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(ctx context.Context, password, hash string) (bool, error) {
	var match bool
	if !wellFormed(hash) {
		return false, nil
	}

	err := h.run(ctx, "check", func() error {
		// err is nil only if the password and hash match.
		match = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil

		return nil
	})
	if err != nil {
		return false, errors.Wrap(err, "bcrypt check")
	}

	return match, nil
}

func (h *bcryptHasher) run(ctx context.Context, op string, fn func() error) error {
	start := time.Now()
	if err := h.workers.Acquire(ctx, 1); err != nil {
		return errors.WithStack(err)
	}
	defer h.workers.Release(1)
	defer func() { h.metrics.ObservePasswordHash(op, time.Since(start)) }()

	return fn()
}

// wellFormed accepts only canonical "$2a$", "$2b$" or "$2y$" hashes. bcrypt's
// own parser tolerates an arbitrary minor version byte and slack bits in the
// salt, so a corrupted stored hash could otherwise still verify.
func wellFormed(hash string) bool {
	const (
		prefixLen = 7  // "$2a$10$"
		saltLen   = 22 // base64 of 16 bytes
		hashLen   = 60
	)

	if len(hash) != hashLen {
		return false
	}
	if hash[0] != '$' || hash[1] != '2' || hash[3] != '$' || hash[6] != '$' {
		return false
	}
	switch hash[2] {
	case 'a', 'b', 'y':
	default:
		return false
	}
	if hash[4] < '0' || hash[4] > '9' || hash[5] < '0' || hash[5] > '9' {
		return false
	}

	_, err := bcryptSalt.DecodeString(hash[prefixLen : prefixLen+saltLen])

	return err == nil
}
