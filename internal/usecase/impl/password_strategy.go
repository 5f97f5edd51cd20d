// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "folks/internal/delivery/context"
	"folks/internal/domain/entity"
	domainerrors "folks/internal/domain/errors"
	"folks/internal/domain/repository"
	"folks/internal/domain/service"
	"folks/internal/errors"
	"folks/internal/usecase"

	"go.uber.org/fx"
)

// dummyPassword is hashed once at startup. Unknown usernames are checked
// against that hash so both rejection paths spend the same bcrypt time.
const dummyPassword = "folks-timing-equalizer"

type passwordStrategy struct {
	users     repository.UserRepository
	hasher    service.PasswordHasher
	dummyHash string
	logger    *slog.Logger
}

// PasswordStrategyParams holds dependencies for the password strategy, injected by Fx.
type PasswordStrategyParams struct {
	fx.In

	Users  repository.UserRepository
	Hasher service.PasswordHasher
	Logger *slog.Logger
}

func NewPasswordStrategy(params PasswordStrategyParams) (usecase.PasswordStrategy, error) {
	dummyHash, err := params.Hasher.Hash(context.Background(), dummyPassword)
	if err != nil {
		return nil, errors.Wrap(err, "hash timing equalizer")
	}

	return &passwordStrategy{
		users:     params.Users,
		hasher:    params.Hasher,
		dummyHash: dummyHash,
		logger:    params.Logger,
	}, nil
}

func (s *passwordStrategy) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// Authenticate looks the username up by exact match and compares the password.
// Unknown user and wrong password yield the same Rejected result.
func (s *passwordStrategy) Authenticate(ctx context.Context, credential entity.Credential) entity.AuthResult {
	user, err := s.users.FindByUsername(ctx, credential.Username)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return entity.Failed(errors.Wrap(err, "find user by username"))
	}

	hash := s.dummyHash
	if user != nil {
		hash = user.PasswordHash
	}

	match, err := s.hasher.Check(ctx, credential.Password, hash)
	if err != nil {
		return entity.Failed(errors.Wrap(err, "check password"))
	}

	if user == nil || !match {
		s.log(ctx).Debug("Password authentication rejected", slog.Any("credential", credential))

		return entity.Rejected(domainerrors.ErrLoginFailed)
	}

	return entity.Accepted(user)
}
