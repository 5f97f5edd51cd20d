// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"folks/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByUsername retrieves a single user by exact username match.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// CountByUsername returns how many users hold the username (0 or 1).
	CountByUsername(ctx context.Context, username string) (int64, error)

	// List returns every user, oldest first.
	List(ctx context.Context) ([]*entity.User, error)

	// Create persists a new user and fills in its ID and timestamps.
	// A duplicate username yields domainerrors.ErrUsernameTaken.
	Create(ctx context.Context, user *entity.User) error

	// Update applies the present fields of update to the user with the given ID.
	Update(ctx context.Context, id uuid.UUID, update entity.UserUpdate) error
}
