// Package handler contains the HTTP handlers for the application.
package handler

import (
	"bytes"
	"io"
	"log/slog"

	deliverycontext "folks/internal/delivery/context"
	"folks/internal/delivery/http/response"
	"folks/internal/domain/entity"
	domainerrors "folks/internal/domain/errors"
	"folks/internal/domain/validation"
	"folks/internal/errors"
	"folks/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UserHandler serves registration and the user directory.
type UserHandler struct {
	users  usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(users usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// Register handles POST /api/users.
func (h *UserHandler) Register(c echo.Context) error {
	payload, err := readPayload(c)
	if err != nil {
		return err
	}

	user, err := h.users.Register(c.Request().Context(), payload)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, user.Serialize())
}

// List handles GET /api/users/folks.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]entity.PublicUser, 0, len(users))
	for _, user := range users {
		out = append(out, user.Serialize())
	}

	return response.OK(c, out)
}

// Get handles GET /api/users/folks/:id.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return err
	}

	user, err := h.users.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, user.Serialize())
}

// Update handles PUT /api/users/folks/:id for the caller's own record.
func (h *UserHandler) Update(c echo.Context) error {
	caller, ok := deliverycontext.Principal(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	id, err := userID(c)
	if err != nil {
		return err
	}

	payload, err := readPayload(c)
	if err != nil {
		return err
	}

	if err := h.users.Update(c.Request().Context(), caller, id, payload); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

// userID parses the :id path parameter. A malformed id cannot name a user,
// so it is reported as not found.
func userID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrUserNotFound
	}

	return id, nil
}

// readPayload decodes the request body as a JSON object. An empty body is an
// empty payload so the field rules report what is missing.
func readPayload(c echo.Context) (validation.Payload, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			return nil, httpErr
		}

		return nil, domainerrors.ErrInvalidInput.WrapMessage(err.Error())
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return validation.Payload{}, nil
	}

	payload, err := validation.Decode(body)
	if err != nil {
		return nil, domainerrors.ErrInvalidInput.WrapMessage(err.Error())
	}

	return payload, nil
}
