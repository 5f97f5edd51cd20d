package middleware

import (
	"log/slog"
	"net/http"

	deliverycontext "folks/internal/delivery/context"
	"folks/internal/delivery/http/response"
	domainerrors "folks/internal/domain/errors"
	"folks/internal/errors"

	"github.com/labstack/echo/v4"
)

// ErrorMiddleware is the central echo.HTTPErrorHandler. Client errors are
// rendered as-is; everything else is logged with its stack and answered with
// the generic internal body.
type ErrorMiddleware struct {
	logger *slog.Logger
}

func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{logger: logger}
}

func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			m.logInternal(c, err, appErr.Details())
		}
		_ = response.Error(c, appErr)

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		_ = m.handleEchoError(c, err, httpErr)

		return
	}

	m.logInternal(c, err, "unhandled error")
	_ = response.Error(c, domainerrors.ErrInternalError)
}

func (m *ErrorMiddleware) handleEchoError(c echo.Context, err error, httpErr *echo.HTTPError) error {
	switch {
	// Unknown paths and unsupported methods on known paths look the same.
	case httpErr.Code == http.StatusNotFound, httpErr.Code == http.StatusMethodNotAllowed:
		return response.NotFound(c)

	case httpErr.Code >= http.StatusInternalServerError:
		m.logInternal(c, err, "echo error")

		return response.Error(c, domainerrors.ErrInternalError)

	default:
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok && msg != "" {
			message = msg
		}

		return response.Error(c, domainerrors.NewBaseError(httpErr.Code, reasonFor(httpErr.Code), message, ""))
	}
}

func (m *ErrorMiddleware) logInternal(c echo.Context, err error, details string) {
	req := c.Request()
	deliverycontext.GetLoggerOrDefault(req.Context(), m.logger).Error("Request failed",
		slog.String("error", err.Error()),
		slog.String("details", details),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.String("stack", errors.StackTrace(err)),
	)
}

func reasonFor(code int) string {
	switch code {
	case http.StatusBadRequest:
		return domainerrors.ErrInvalidInput.ErrorCode()
	case http.StatusUnauthorized:
		return domainerrors.ErrUnauthenticated.ErrorCode()
	case http.StatusRequestEntityTooLarge:
		return "RequestTooLarge"
	case http.StatusTooManyRequests:
		return domainerrors.ErrTooManyRequests.ErrorCode()
	default:
		return "HTTPError"
	}
}
