package handlers

import (
	"net/http"

	"feedback-board/app/server/templates"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (a *App) AdminDashboard(c echo.Context) error {
	ident := a.currentIdentity(c)
	if ident == nil || !ident.IsAdmin {
		a.flash(c, "danger", "You do not have permissions to this page.")
		return c.Redirect(http.StatusSeeOther, "/")
	}

	rctx := c.Request().Context()

	users, err := a.users.List(rctx)
	if err != nil {
		a.l.Error("failed to list users", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	posts, err := a.postsAll(c)
	if err != nil {
		a.l.Error("failed to list posts", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return a.render(c, "dashboard", &templates.Data{
		Title:       "Admin dashboard",
		CurrentUser: ident,
		Users:       users,
		Posts:       posts,
	})
}
