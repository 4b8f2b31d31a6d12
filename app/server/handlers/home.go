package handlers

import (
	"net/http"

	"feedback-board/app/server/templates"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (a *App) Home(c echo.Context) error {
	ident := a.currentIdentity(c)
	if ident == nil {
		return c.Redirect(http.StatusSeeOther, "/register")
	}

	posts, err := a.postsAll(c)
	if err != nil {
		a.l.Error("failed to list posts", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return a.render(c, "home", &templates.Data{
		Title:       "All posts",
		CurrentUser: ident,
		Posts:       posts,
	})
}
