// Package response writes the JSON bodies the HTTP API returns.
// Success bodies are the resource itself, without an envelope.
package response

import (
	"net/http"

	domainerrors "folks/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// NotFoundBody is returned for any unmatched route.
type NotFoundBody struct {
	Message string `json:"message"`
}

// TokenBody carries a freshly issued bearer token.
type TokenBody struct {
	AuthToken string `json:"authToken"`
}

// StatusBody is the /api and /health payload.
type StatusBody struct {
	OK bool `json:"ok"`
}

func OK(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, data)
}

func Created(c echo.Context, data any) error {
	return c.JSON(http.StatusCreated, data)
}

func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

func Token(c echo.Context, token string) error {
	return c.JSON(http.StatusOK, TokenBody{AuthToken: token})
}

// Error writes the {code, reason, message, location?} body for err.
// 5xx errors are collapsed to the generic internal body.
func Error(c echo.Context, err domainerrors.AppError) error {
	body := domainerrors.Body(err)
	if c.Request().Method == http.MethodHead {
		return c.NoContent(body.Code)
	}

	return c.JSON(body.Code, body)
}

func NotFound(c echo.Context) error {
	if c.Request().Method == http.MethodHead {
		return c.NoContent(http.StatusNotFound)
	}

	return c.JSON(http.StatusNotFound, NotFoundBody{Message: "Not Found"})
}
