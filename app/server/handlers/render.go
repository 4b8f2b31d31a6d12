package handlers

import (
	"net/http"

	"feedback-board/app/server/templates"

	"github.com/labstack/echo/v4"
)

func (a *App) render(c echo.Context, name string, data *templates.Data) error {
	if data == nil {
		data = &templates.Data{}
	}

	if data.CurrentUser == nil {
		data.CurrentUser = a.currentIdentity(c)
	}
	data.Flash = a.popFlash(c)

	return c.Render(http.StatusOK, name, data)
}
