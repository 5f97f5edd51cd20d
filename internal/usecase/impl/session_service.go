package impl

import (
	"context"
	"log/slog"

	deliverycontext "folks/internal/delivery/context"
	"folks/internal/domain/entity"
	domainerrors "folks/internal/domain/errors"
	"folks/internal/domain/service"
	"folks/internal/errors"
	"folks/internal/infra/metrics"
	"folks/internal/usecase"

	"go.uber.org/fx"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	passwords usecase.PasswordStrategy
	tokens    service.TokenService
	metrics   metrics.Recorder
	logger    *slog.Logger
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	Passwords usecase.PasswordStrategy
	Tokens    service.TokenService
	Metrics   metrics.Recorder `optional:"true"`
	Logger    *slog.Logger
}

func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	recorder := params.Metrics
	if recorder == nil {
		recorder = metrics.Nop{}
	}

	return &sessionService{
		passwords: params.Passwords,
		tokens:    params.Tokens,
		metrics:   recorder,
		logger:    params.Logger,
	}
}

func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *sessionService) Login(ctx context.Context, credential entity.Credential) (string, error) {
	result := srv.passwords.Authenticate(ctx, credential)

	switch result.Status {
	case entity.AuthAccepted:
		token, err := srv.issue(result.Principal)
		if err != nil {
			srv.metrics.RecordLogin(metrics.OutcomeError)

			return "", err
		}
		srv.metrics.RecordLogin(metrics.OutcomeSuccess)
		srv.log(ctx).Info("User logged in", slog.String("username", result.Principal.Username))

		return token, nil

	case entity.AuthRejected:
		srv.metrics.RecordLogin(metrics.OutcomeRejected)

		return "", domainerrors.ErrLoginFailed

	case entity.AuthFailed:
		srv.metrics.RecordLogin(metrics.OutcomeError)

		return "", errors.Wrap(domainerrors.ErrInternalError, result.Cause.Error())

	default:
		srv.metrics.RecordLogin(metrics.OutcomeError)

		return "", errors.Wrapf(domainerrors.ErrInternalError, "unexpected auth status %s", result.Status)
	}
}

func (srv *sessionService) Refresh(ctx context.Context, principal entity.Principal) (string, error) {
	if principal.Username == "" {
		return "", domainerrors.ErrUnauthenticated
	}

	return srv.issue(principal)
}

func (srv *sessionService) issue(principal entity.Principal) (string, error) {
	token, err := srv.tokens.Issue(principal)
	if err != nil {
		return "", domainerrors.ErrTokenSigningFailed.WrapMessage(err.Error())
	}

	return token, nil
}
