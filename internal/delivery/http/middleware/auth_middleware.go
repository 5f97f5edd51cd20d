package middleware

import (
	"log/slog"

	deliverycontext "folks/internal/delivery/context"
	"folks/internal/domain/entity"
	"folks/internal/errors"
	"folks/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware guards routes with the bearer-token strategy.
type AuthMiddleware struct {
	strategy usecase.TokenStrategy
	logger   *slog.Logger
}

func NewAuthMiddleware(strategy usecase.TokenStrategy, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{strategy: strategy, logger: logger}
}

// Authenticate puts the verified principal in the request context. A rejected
// token yields the generic 401 without saying what was wrong with it.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		result := m.strategy.Authenticate(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization))

		switch result.Status {
		case entity.AuthAccepted:
			deliverycontext.SetPrincipal(c, result.Principal)

			return next(c)

		case entity.AuthRejected:
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")

			return result.Reason

		case entity.AuthFailed:
			return errors.Wrap(result.Cause, "bearer authentication")

		default:
			return errors.Errorf("unexpected auth status %s", result.Status)
		}
	}
}
