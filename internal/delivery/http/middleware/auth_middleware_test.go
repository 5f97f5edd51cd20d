package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "folks/internal/delivery/context"
	"folks/internal/domain/entity"
	domainerrors "folks/internal/domain/errors"
	"folks/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type strategyFunc func(ctx context.Context, authorization string) entity.AuthResult

func (f strategyFunc) Authenticate(ctx context.Context, authorization string) entity.AuthResult {
	return f(ctx, authorization)
}

func runAuth(t *testing.T, result entity.AuthResult) (*httptest.ResponseRecorder, echo.Context, error, bool) {
	t.Helper()

	var gotHeader string
	mw := NewAuthMiddleware(strategyFunc(func(_ context.Context, authorization string) entity.AuthResult {
		gotHeader = authorization

		return result
	}), slog.New(slog.DiscardHandler))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/folks", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	err := mw.Authenticate(func(echo.Context) error {
		called = true

		return nil
	})(c)
	assert.Equal(t, "Bearer abc", gotHeader)

	return rec, c, err, called
}

func TestAuthMiddleware_Accepted(t *testing.T) {
	principal := entity.Principal{Username: "alice", FirstName: "Alice"}

	_, c, err, called := runAuth(t, entity.AcceptedPrincipal(principal))
	require.NoError(t, err)
	assert.True(t, called)

	got, ok := deliverycontext.Principal(c)
	require.True(t, ok)
	assert.Equal(t, principal, got)

	fromCtx, ok := deliverycontext.PrincipalFromContext(c.Request().Context())
	require.True(t, ok)
	assert.Equal(t, principal, fromCtx)
}

func TestAuthMiddleware_Rejected(t *testing.T) {
	rec, _, err, called := runAuth(t, entity.Rejected(domainerrors.ErrUnauthenticated))

	assert.False(t, called)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
	assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
}

func TestAuthMiddleware_Failed(t *testing.T) {
	cause := errors.New("key store unavailable")
	rec, _, err, called := runAuth(t, entity.Failed(cause))

	assert.False(t, called)
	assert.ErrorIs(t, err, cause)
	assert.Empty(t, rec.Header().Get(echo.HeaderWWWAuthenticate))

	var appErr domainerrors.AppError
	assert.False(t, errors.As(err, &appErr))
}
