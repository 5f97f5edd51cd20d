package impl

import (
	"context"
	"log/slog"

	deliverycontext "folks/internal/delivery/context"
	"folks/internal/domain/entity"
	domainerrors "folks/internal/domain/errors"
	"folks/internal/domain/repository"
	"folks/internal/domain/service"
	"folks/internal/domain/validation"
	"folks/internal/errors"
	"folks/internal/infra/metrics"
	"folks/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	users   repository.UserRepository
	hasher  service.PasswordHasher
	metrics metrics.Recorder
	logger  *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	Users   repository.UserRepository
	Hasher  service.PasswordHasher
	Metrics metrics.Recorder `optional:"true"`
	Logger  *slog.Logger
}

func NewUserService(params UserServiceParams) usecase.UserUsecase {
	recorder := params.Metrics
	if recorder == nil {
		recorder = metrics.Nop{}
	}

	return &userService{
		users:   params.Users,
		hasher:  params.Hasher,
		metrics: recorder,
		logger:  params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register runs validate -> uniqueness check -> hash -> create. The unique
// index behind Create still catches two registrations racing past the count.
func (srv *userService) Register(ctx context.Context, payload validation.Payload) (*entity.User, error) {
	reg, err := validation.ValidateRegistration(payload)
	if err != nil {
		srv.metrics.RecordRegistration(metrics.OutcomeInvalid)

		return nil, err
	}

	count, err := srv.users.CountByUsername(ctx, reg.Username)
	if err != nil {
		srv.metrics.RecordRegistration(metrics.OutcomeError)

		return nil, domainerrors.NewDatabaseExecuteError(err, "count users by username")
	}
	if count > 0 {
		srv.metrics.RecordRegistration(metrics.OutcomeConflict)

		return nil, domainerrors.ErrUsernameTaken
	}

	hash, err := srv.hasher.Hash(ctx, reg.Password)
	if err != nil {
		srv.metrics.RecordRegistration(metrics.OutcomeError)

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	user := &entity.User{
		Username:     reg.Username,
		PasswordHash: hash,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Image:        entity.DefaultImage,
	}

	if err := srv.users.Create(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrUsernameTaken) {
			srv.metrics.RecordRegistration(metrics.OutcomeConflict)

			return nil, domainerrors.ErrUsernameTaken
		}
		srv.metrics.RecordRegistration(metrics.OutcomeError)

		return nil, domainerrors.NewDatabaseExecuteError(err, "create user")
	}

	srv.metrics.RecordRegistration(metrics.OutcomeSuccess)
	srv.log(ctx).Info("User registered", slog.String("user_id", user.ID.String()), slog.String("username", user.Username))

	return user, nil
}

func (srv *userService) List(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.users.List(ctx)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "list users")
	}

	return users, nil
}

func (srv *userService) Get(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := srv.users.FindByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "find user by id")
	}

	return user, nil
}

// Update checks existence, then ownership, then the payload. Only firstName,
// lastName, description and image are ever written.
func (srv *userService) Update(ctx context.Context, caller entity.Principal, id uuid.UUID, payload validation.Payload) error {
	target, err := srv.Get(ctx, id)
	if err != nil {
		return err
	}

	if target.Username != caller.Username {
		srv.log(ctx).Warn("Rejected update of another user's record",
			slog.String("caller", caller.Username),
			slog.String("target_id", id.String()),
		)

		return domainerrors.ErrForbidden
	}

	update, err := validation.ValidateUpdate(payload)
	if err != nil {
		return err
	}
	if update.Empty() {
		return nil
	}

	err = srv.users.Update(ctx, id, update)
	if errors.Is(err, repository.ErrUserNotFound) {
		return domainerrors.ErrUserNotFound
	}
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "update user")
	}

	return nil
}
