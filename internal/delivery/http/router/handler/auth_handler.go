package handler

import (
	"log/slog"

	deliverycontext "folks/internal/delivery/context"
	"folks/internal/delivery/http/response"
	"folks/internal/domain/entity"
	domainerrors "folks/internal/domain/errors"
	"folks/internal/errors"
	"folks/internal/usecase"

	"github.com/labstack/echo/v4"
)

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthHandler exchanges credentials for bearer tokens.
type AuthHandler struct {
	sessions usecase.SessionUsecase
	logger   *slog.Logger
}

func NewAuthHandler(sessions usecase.SessionUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{sessions: sessions, logger: logger}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return domainerrors.ErrInvalidInput.WrapMessage(err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return domainerrors.ErrMissingCredentials.WrapMessage(err.Error())
	}

	token, err := h.sessions.Login(c.Request().Context(), entity.Credential{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Token(c, token)
}

// Refresh handles POST /api/auth/refresh. It only re-signs the principal the
// caller already holds a valid token for.
func (h *AuthHandler) Refresh(c echo.Context) error {
	principal, ok := deliverycontext.Principal(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	token, err := h.sessions.Refresh(c.Request().Context(), principal)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Token(c, token)
}
