package middleware

import (
	"log/slog"
	"math"
	"strconv"
	"sync"
	"time"

	"folks/config"
	deliverycontext "folks/internal/delivery/context"
	domainerrors "folks/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const defaultLimiterCleanupInterval = 5 * time.Minute

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// LoginRateLimiter throttles password attempts per client IP. Idle entries are
// swept by a background loop that Stop ends.
type LoginRateLimiter struct {
	limit           rate.Limit
	burst           int
	cleanupInterval time.Duration
	logger          *slog.Logger

	mu       sync.Mutex
	limiters map[string]*clientLimiter

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func NewLoginRateLimiter(cfg *config.Config, logger *slog.Logger) *LoginRateLimiter {
	return newLoginRateLimiter(rate.Limit(cfg.Auth.LoginRate), cfg.Auth.LoginBurst, defaultLimiterCleanupInterval, logger)
}

func newLoginRateLimiter(limit rate.Limit, burst int, cleanupInterval time.Duration, logger *slog.Logger) *LoginRateLimiter {
	rl := &LoginRateLimiter{
		limit:           limit,
		burst:           burst,
		cleanupInterval: cleanupInterval,
		logger:          logger,
		limiters:        make(map[string]*clientLimiter),
		stopCh:          make(chan struct{}),
		doneCh:          make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Stop ends the cleanup goroutine and waits for it. Safe to call twice.
func (rl *LoginRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
	<-rl.doneCh
}

// Limit rejects a request with 429 and Retry-After once the client IP has
// spent its burst.
func (rl *LoginRateLimiter) Limit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ip := c.RealIP()
		if rl.limiterFor(ip).Allow() {
			return next(c)
		}

		deliverycontext.GetLoggerOrDefault(c.Request().Context(), rl.logger).Warn("Login rate limit exceeded",
			slog.String("remote_ip", ip),
		)
		c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(rl.limit)))

		return domainerrors.ErrTooManyRequests
	}
}

// Len reports how many client IPs are tracked.
func (rl *LoginRateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return len(rl.limiters)
}

func (rl *LoginRateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.limiters[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[ip] = cl
	}
	cl.lastAccess = time.Now()

	return cl.limiter
}

func (rl *LoginRateLimiter) cleanupLoop() {
	defer close(rl.doneCh)

	ticker := time.NewTicker(rl.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweep(time.Now())
		case <-rl.stopCh:
			return
		}
	}
}

// sweep drops entries idle for two cleanup intervals.
func (rl *LoginRateLimiter) sweep(now time.Time) {
	ttl := 2 * rl.cleanupInterval

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, cl := range rl.limiters {
		if now.Sub(cl.lastAccess) > ttl {
			delete(rl.limiters, ip)
		}
	}
}

func retryAfterSeconds(limit rate.Limit) int {
	if limit <= 0 {
		return 1
	}

	return max(1, int(math.Ceil(1/float64(limit))))
}
