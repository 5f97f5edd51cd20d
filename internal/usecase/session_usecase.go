package usecase

import (
	"context"

	"folks/internal/domain/entity"
)

// SessionUsecase turns a proven identity into a bearer token.
type SessionUsecase interface {
	// Login authenticates the credential and returns a signed token.
	Login(ctx context.Context, credential entity.Credential) (string, error)

	// Refresh issues a fresh token for an already authenticated principal.
	Refresh(ctx context.Context, principal entity.Principal) (string, error)
}
