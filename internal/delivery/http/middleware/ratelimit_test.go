package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domainerrors "folks/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/time/rate"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestLimiter(t *testing.T, limit rate.Limit, burst int) *LoginRateLimiter {
	t.Helper()

	rl := newLoginRateLimiter(limit, burst, time.Hour, slog.New(slog.DiscardHandler))
	t.Cleanup(rl.Stop)

	return rl
}

func hit(rl *LoginRateLimiter, remoteAddr string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()

	err := rl.Limit(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(e.NewContext(req, rec))

	return rec, err
}

func TestLoginRateLimiter_BurstThenReject(t *testing.T) {
	rl := newTestLimiter(t, rate.Limit(0.5), 3)

	for range 3 {
		rec, err := hit(rl, "203.0.113.7:5000")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec, err := hit(rl, "203.0.113.7:5001")
	require.ErrorIs(t, err, domainerrors.ErrTooManyRequests)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))

	// Another client has its own burst.
	_, err = hit(rl, "198.51.100.2:5000")
	require.NoError(t, err)
	assert.Equal(t, 2, rl.Len())
}

func TestLoginRateLimiter_Sweep(t *testing.T) {
	rl := newTestLimiter(t, rate.Limit(1), 1)

	_, err := hit(rl, "203.0.113.7:5000")
	require.NoError(t, err)
	require.Equal(t, 1, rl.Len())

	rl.sweep(time.Now().Add(time.Hour))
	assert.Equal(t, 1, rl.Len())

	rl.sweep(time.Now().Add(3 * time.Hour))
	assert.Zero(t, rl.Len())
}

func TestLoginRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := newLoginRateLimiter(rate.Limit(1), 1, time.Millisecond, slog.New(slog.DiscardHandler))

	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}

func TestRetryAfterSeconds(t *testing.T) {
	assert.Equal(t, 1, retryAfterSeconds(rate.Limit(5)))
	assert.Equal(t, 1, retryAfterSeconds(rate.Limit(1)))
	assert.Equal(t, 4, retryAfterSeconds(rate.Limit(0.25)))
	assert.Equal(t, 1, retryAfterSeconds(0))
}
