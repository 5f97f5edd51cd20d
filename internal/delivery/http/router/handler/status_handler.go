package handler

import (
	"folks/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// APIRoot handles GET /api.
func APIRoot(c echo.Context) error {
	return response.OK(c, response.StatusBody{OK: true})
}

// HealthCheck handles GET /health.
func HealthCheck(c echo.Context) error {
	return response.OK(c, response.StatusBody{OK: true})
}
