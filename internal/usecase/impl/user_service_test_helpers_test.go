package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"folks/config"
	"folks/internal/domain/entity"
	"folks/internal/domain/service"
	"folks/internal/infra/auth"
	"folks/internal/infra/persistence/memory"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-signing-secret"

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHasher() service.PasswordHasher {
	return auth.NewBcryptHasherWithCost(bcrypt.MinCost, 2)
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Database.Driver = config.DriverMemory
	cfg.JWT.Secret = testSecret
	cfg.Auth.BcryptCost = bcrypt.MinCost

	return cfg
}

func newTestTokenService(t *testing.T) service.TokenService {
	t.Helper()

	tokens, err := auth.NewJWTService(newTestConfig())
	require.NoError(t, err)

	return tokens
}

// seedUser stores a user whose password hash was produced by hasher.
func seedUser(t *testing.T, repo *memory.UserRepository, hasher service.PasswordHasher, username, password string) *entity.User {
	t.Helper()

	hash, err := hasher.Hash(context.Background(), password)
	require.NoError(t, err)

	user := &entity.User{Username: username, PasswordHash: hash, FirstName: "First", LastName: "Last", Image: entity.DefaultImage}
	require.NoError(t, repo.Create(context.Background(), user))

	return user
}
