package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *App) er(c echo.Context, statusCode int) error {
	return c.String(statusCode, http.StatusText(statusCode))
}
