package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "folks/internal/delivery/context"
	"folks/internal/domain/entity"
	domainerrors "folks/internal/domain/errors"
	"folks/internal/domain/service"
	"folks/internal/infra/metrics"
	"folks/internal/usecase"

	"go.uber.org/fx"
)

const bearerScheme = "bearer"

type tokenStrategy struct {
	tokens  service.TokenService
	metrics metrics.Recorder
	logger  *slog.Logger
}

// TokenStrategyParams holds dependencies for the token strategy, injected by Fx.
type TokenStrategyParams struct {
	fx.In

	Tokens  service.TokenService
	Metrics metrics.Recorder `optional:"true"`
	Logger  *slog.Logger
}

func NewTokenStrategy(params TokenStrategyParams) usecase.TokenStrategy {
	recorder := params.Metrics
	if recorder == nil {
		recorder = metrics.Nop{}
	}

	return &tokenStrategy{
		tokens:  params.Tokens,
		metrics: recorder,
		logger:  params.Logger,
	}
}

// Authenticate accepts "Bearer <token>" with the scheme matched case-insensitively.
// Every failure is the same Rejected(ErrUnauthenticated); the cause is only logged.
func (s *tokenStrategy) Authenticate(ctx context.Context, authorization string) entity.AuthResult {
	raw, ok := bearerToken(authorization)
	if !ok {
		s.metrics.RecordTokenVerification(metrics.OutcomeInvalid)

		return entity.Rejected(domainerrors.ErrUnauthenticated)
	}

	claims, err := s.tokens.Verify(raw)
	if err != nil {
		s.metrics.RecordTokenVerification(metrics.OutcomeRejected)
		deliverycontext.GetLoggerOrDefault(ctx, s.logger).Debug("Bearer token rejected", slog.Any("error", err))

		return entity.Rejected(domainerrors.ErrUnauthenticated)
	}

	s.metrics.RecordTokenVerification(metrics.OutcomeSuccess)

	return entity.AcceptedPrincipal(claims.User)
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}
