// Package memory is a process-local UserRepository for tests and
// database-less local runs.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"folks/internal/domain/entity"
	domainerrors "folks/internal/domain/errors"
	"folks/internal/domain/repository"

	"github.com/google/uuid"
)

// UserRepository keeps users in a map guarded by an RWMutex. Callers always
// receive copies, so mutating a returned user never changes the store.
type UserRepository struct {
	mu         sync.RWMutex
	byID       map[uuid.UUID]*entity.User
	byUsername map[string]uuid.UUID
	now        func() time.Time
}

var _ repository.UserRepository = (*UserRepository)(nil)

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:       make(map[uuid.UUID]*entity.User),
		byUsername: make(map[string]uuid.UUID),
		now:        time.Now,
	}
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return clone(user), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return clone(r.byID[id]), nil
}

func (r *UserRepository) CountByUsername(ctx context.Context, username string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.byUsername[username]; ok {
		return 1, nil
	}

	return 0, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	users := make([]*entity.User, 0, len(r.byID))
	for _, user := range r.byID {
		users = append(users, clone(user))
	}
	r.mu.RUnlock()

	slices.SortFunc(users, func(a, b *entity.User) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}

		return strings.Compare(a.Username, b.Username)
	})

	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byUsername[user.Username]; taken {
		return domainerrors.ErrUsernameTaken
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := r.now()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.byID[user.ID] = clone(user)
	r.byUsername[user.Username] = user.ID

	return nil
}

func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, update entity.UserUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return repository.ErrUserNotFound
	}

	update.Apply(user)
	user.UpdatedAt = r.now()

	return nil
}

func clone(user *entity.User) *entity.User {
	c := *user

	return &c
}
