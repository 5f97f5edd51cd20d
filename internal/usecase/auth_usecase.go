package usecase

import (
	"context"

	"folks/internal/domain/entity"
)

// PasswordStrategy authenticates a username/password pair against the store.
//
// Authenticate never returns an error: the outcome is encoded in the result's
// Status so callers cannot confuse "wrong password" with "store unavailable".
type PasswordStrategy interface {
	Authenticate(ctx context.Context, credential entity.Credential) entity.AuthResult
}

// TokenStrategy authenticates a request by its Authorization header value.
type TokenStrategy interface {
	Authenticate(ctx context.Context, authorization string) entity.AuthResult
}
