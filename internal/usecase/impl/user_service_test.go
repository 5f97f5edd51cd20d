package impl

import (
	"context"
	stderrors "errors"
	"testing"

	"folks/internal/domain/entity"
	domainerrors "folks/internal/domain/errors"
	"folks/internal/domain/validation"
	"folks/internal/infra/metrics"
	"folks/internal/infra/persistence/memory"
	mockRepo "folks/internal/mocks/repository"
	mockService "folks/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newMemoryUserService(t *testing.T) (*userService, *memory.UserRepository) {
	t.Helper()

	repo := memory.NewUserRepository()
	srv := NewUserService(UserServiceParams{
		Users:  repo,
		Hasher: newTestHasher(),
		Logger: newDiscardLogger(),
	})

	return srv.(*userService), repo
}

func TestUserService_Register(t *testing.T) {
	srv, repo := newMemoryUserService(t)
	ctx := context.Background()

	user, err := srv.Register(ctx, validation.Payload{
		"username":  "alice",
		"password":  "goodpassword1",
		"firstName": " Alice ",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "Alice", user.FirstName)
	assert.Equal(t, entity.DefaultImage, user.Image)
	assert.NotEqual(t, "goodpassword1", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("goodpassword1")))

	stored, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)

	serialized := user.Serialize()
	assert.Equal(t, "alice", serialized.Username)
}

func TestUserService_RegisterValidation(t *testing.T) {
	srv, repo := newMemoryUserService(t)

	_, err := srv.Register(context.Background(), validation.Payload{"username": "alice", "password": "short"})

	var verr *domainerrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password", verr.Location())
	assert.Equal(t, "Must be at least 10 characters long", verr.Message())

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUserService_RegisterShapeErrorsBeforeTakenUsername(t *testing.T) {
	srv, repo := newMemoryUserService(t)
	seedUser(t, repo, newTestHasher(), "alice", "goodpassword1")

	_, err := srv.Register(context.Background(), validation.Payload{"username": "alice", "password": "short"})

	require.NotErrorIs(t, err, domainerrors.ErrUsernameTaken)
	var verr *domainerrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.False(t, verr.IsConflict())
	assert.Equal(t, "password", verr.Location())
	assert.Equal(t, "Must be at least 10 characters long", verr.Message())
}

func TestUserService_RegisterInvalidNeverQueriesStore(t *testing.T) {
	payloads := map[string]validation.Payload{
		"short password":   {"username": "alice", "password": "short"},
		"padded username":  {"username": "alice ", "password": "goodpassword1"},
		"missing password": {"username": "alice"},
		"wrong type":       {"username": "alice", "password": "goodpassword1", "lastName": 7},
	}

	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			repo := mockRepo.NewMockUserRepository(t)
			hasher := mockService.NewMockPasswordHasher(t)
			srv := NewUserService(UserServiceParams{Users: repo, Hasher: hasher, Logger: newDiscardLogger()})

			_, err := srv.Register(context.Background(), payload)

			var verr *domainerrors.ValidationError
			require.ErrorAs(t, err, &verr)
			repo.AssertNotCalled(t, "CountByUsername", mock.Anything, mock.Anything)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			hasher.AssertNotCalled(t, "Hash", mock.Anything, mock.Anything)
		})
	}
}

func TestUserService_RegisterDuplicate(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)
	repo := memory.NewUserRepository()
	srv := NewUserService(UserServiceParams{Users: repo, Hasher: newTestHasher(), Metrics: collector, Logger: newDiscardLogger()})
	ctx := context.Background()

	payload := validation.Payload{"username": "alice", "password": "goodpassword1"}
	_, err := srv.Register(ctx, payload)
	require.NoError(t, err)

	_, err = srv.Register(ctx, payload)
	require.ErrorIs(t, err, domainerrors.ErrUsernameTaken)

	var verr *domainerrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.IsConflict())
	assert.Equal(t, "username", verr.Location())
	assert.Equal(t, 422, verr.HTTPCode())

	count, err := testutil.GatherAndCount(reg, "folks_registrations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestUserService_RegisterRaceLostAtCreate(t *testing.T) {
	repo := mockRepo.NewMockUserRepository(t)
	hasher := mockService.NewMockPasswordHasher(t)
	srv := NewUserService(UserServiceParams{Users: repo, Hasher: hasher, Logger: newDiscardLogger()})

	repo.EXPECT().CountByUsername(mock.Anything, "alice").Return(int64(0), nil)
	hasher.EXPECT().Hash(mock.Anything, "goodpassword1").Return("hash", nil)
	repo.EXPECT().Create(mock.Anything, mock.AnythingOfType("*entity.User")).Return(domainerrors.ErrUsernameTaken)

	_, err := srv.Register(context.Background(), validation.Payload{"username": "alice", "password": "goodpassword1"})
	assert.ErrorIs(t, err, domainerrors.ErrUsernameTaken)
}

func TestUserService_RegisterInternalFailures(t *testing.T) {
	payload := validation.Payload{"username": "alice", "password": "goodpassword1"}

	t.Run("count fails", func(t *testing.T) {
		repo := mockRepo.NewMockUserRepository(t)
		srv := NewUserService(UserServiceParams{Users: repo, Hasher: mockService.NewMockPasswordHasher(t), Logger: newDiscardLogger()})
		repo.EXPECT().CountByUsername(mock.Anything, "alice").Return(int64(0), stderrors.New("db down"))

		_, err := srv.Register(context.Background(), payload)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 500, appErr.HTTPCode())
	})

	t.Run("hash fails", func(t *testing.T) {
		repo := mockRepo.NewMockUserRepository(t)
		hasher := mockService.NewMockPasswordHasher(t)
		srv := NewUserService(UserServiceParams{Users: repo, Hasher: hasher, Logger: newDiscardLogger()})
		repo.EXPECT().CountByUsername(mock.Anything, "alice").Return(int64(0), nil)
		hasher.EXPECT().Hash(mock.Anything, "goodpassword1").Return("", bcrypt.ErrPasswordTooLong)

		_, err := srv.Register(context.Background(), payload)
		assert.ErrorIs(t, err, domainerrors.ErrPasswordHashFailed)
	})

	t.Run("create fails", func(t *testing.T) {
		repo := mockRepo.NewMockUserRepository(t)
		hasher := mockService.NewMockPasswordHasher(t)
		srv := NewUserService(UserServiceParams{Users: repo, Hasher: hasher, Logger: newDiscardLogger()})
		repo.EXPECT().CountByUsername(mock.Anything, "alice").Return(int64(0), nil)
		hasher.EXPECT().Hash(mock.Anything, "goodpassword1").Return("hash", nil)
		repo.EXPECT().Create(mock.Anything, mock.Anything).Return(stderrors.New("disk full"))

		_, err := srv.Register(context.Background(), payload)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 500, appErr.HTTPCode())
		assert.NotContains(t, domainerrors.Body(appErr).Message, "disk full")
	})
}

func TestUserService_GetAndList(t *testing.T) {
	srv, repo := newMemoryUserService(t)
	ctx := context.Background()
	alice := seedUser(t, repo, srv.hasher, "alice", "goodpassword1")
	seedUser(t, repo, srv.hasher, "bob", "goodpassword2")

	users, err := srv.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	got, err := srv.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = srv.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_Update(t *testing.T) {
	srv, repo := newMemoryUserService(t)
	ctx := context.Background()
	alice := seedUser(t, repo, srv.hasher, "alice", "goodpassword1")
	bob := seedUser(t, repo, srv.hasher, "bob", "goodpassword2")
	caller := alice.Principal()

	t.Run("own record", func(t *testing.T) {
		err := srv.Update(ctx, caller, alice.ID, validation.Payload{
			"firstName":   " Ally ",
			"description": "hello",
			"username":    "hijack",
			"password":    "ignored-too",
		})
		require.NoError(t, err)

		got, err := repo.FindByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ally", got.FirstName)
		assert.Equal(t, "hello", got.Description)
		assert.Equal(t, "alice", got.Username)
		assert.Equal(t, alice.PasswordHash, got.PasswordHash)
	})

	t.Run("someone else's record", func(t *testing.T) {
		err := srv.Update(ctx, caller, bob.ID, validation.Payload{"firstName": "pwned"})
		require.ErrorIs(t, err, domainerrors.ErrForbidden)

		got, err := repo.FindByID(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, "First", got.FirstName)
	})

	t.Run("missing record", func(t *testing.T) {
		err := srv.Update(ctx, caller, uuid.New(), validation.Payload{"firstName": "x"})
		assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
	})

	t.Run("invalid payload", func(t *testing.T) {
		err := srv.Update(ctx, caller, alice.ID, validation.Payload{"image": 12})

		var verr *domainerrors.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "image", verr.Location())
	})

	t.Run("nothing to change", func(t *testing.T) {
		require.NoError(t, srv.Update(ctx, caller, alice.ID, validation.Payload{"username": "renamed"}))
	})
}
