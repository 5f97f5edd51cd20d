// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"folks/internal/domain/entity"
	"folks/internal/domain/validation"

	"github.com/google/uuid"
)

// UserUsecase covers registration and the user directory.
type UserUsecase interface {
	// Register validates a raw payload, rejects taken usernames and stores
	// the new user with a hashed password.
	Register(ctx context.Context, payload validation.Payload) (*entity.User, error)

	List(ctx context.Context) ([]*entity.User, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// Update applies a profile update on behalf of caller. Callers may only
	// edit their own record.
	Update(ctx context.Context, caller entity.Principal, id uuid.UUID, payload validation.Payload) error
}
