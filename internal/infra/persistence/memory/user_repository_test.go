package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"folks/internal/domain/entity"
	domainerrors "folks/internal/domain/errors"
	"folks/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	user := &entity.User{Username: "alice", PasswordHash: "hash", FirstName: "Alice"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byName, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", byID.FirstName)

	count, err := repo.CountByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestUserRepository_UsernameIsExactMatch(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &entity.User{Username: "alice"}))

	_, err := repo.FindByUsername(ctx, "Alice")
	require.ErrorIs(t, err, repository.ErrUserNotFound)

	count, err := repo.CountByUsername(ctx, "alice ")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.User{Username: "alice"}))
	err := repo.Create(ctx, &entity.User{Username: "alice"})
	assert.ErrorIs(t, err, domainerrors.ErrUsernameTaken)
}

func TestUserRepository_ConcurrentCreateSameUsername(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	var created atomic.Int32
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if repo.Create(ctx, &entity.User{Username: "racer"}) == nil {
				created.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, created.Load())
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	user := &entity.User{Username: "alice", FirstName: "Alice"}
	require.NoError(t, repo.Create(ctx, user))
	user.FirstName = "changed after create"

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	found.FirstName = "changed after find"

	again, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", again.FirstName)
}

func TestUserRepository_Update(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	user := &entity.User{Username: "alice", FirstName: "Alice", Description: "old"}
	require.NoError(t, repo.Create(ctx, user))

	desc := "new"
	require.NoError(t, repo.Update(ctx, user.ID, entity.UserUpdate{Description: &desc}))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", found.Description)
	assert.Equal(t, "Alice", found.FirstName)

	err = repo.Update(ctx, uuid.New(), entity.UserUpdate{Description: &desc})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_List(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	for i := range 3 {
		require.NoError(t, repo.Create(ctx, &entity.User{Username: fmt.Sprintf("user%d", i)}))
	}

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "user0", users[0].Username)
	assert.Equal(t, "user2", users[2].Username)

	users[0].Username = "mutated"
	again, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user0", again[0].Username)
}

func TestUserRepository_CancelledContext(t *testing.T) {
	repo := NewUserRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.FindByUsername(ctx, "alice")
	assert.ErrorIs(t, err, context.Canceled)
}
