package handlers

import (
	"errors"
	"net/http"

	"feedback-board/app/server/stores"
	"feedback-board/app/server/templates"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (a *App) UserShow(c echo.Context) error {
	ident := a.currentIdentity(c)
	if ident == nil {
		a.flash(c, "danger", "Please log in first!")
		return c.Redirect(http.StatusSeeOther, "/")
	}

	rctx := c.Request().Context()
	username := c.Param("username")

	user, err := a.users.Get(rctx, username)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			a.flash(c, "danger", "User does not exist")
			return c.Redirect(http.StatusSeeOther, "/users/"+ident.Username)
		}
		a.l.Error("failed to get user", zap.String("username", username), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	posts, err := a.posts.ListByUsername(rctx, username)
	if err != nil {
		a.l.Error("failed to list posts of user", zap.String("username", username), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return a.render(c, "user", &templates.Data{
		Title:       user.Username,
		CurrentUser: ident,
		User:        user,
		Posts:       posts,
	})
}

func (a *App) UserDelete(c echo.Context) error {
	ident := a.currentIdentity(c)
	if ident == nil {
		a.flash(c, "danger", "Please log in first!")
		return c.Redirect(http.StatusSeeOther, "/")
	}

	rctx := c.Request().Context()
	username := c.Param("username")

	// 管理员可以删除任何用户，之后回到管理面板
	if ident.IsAdmin {
		if err := a.users.Delete(rctx, username); err != nil {
			a.l.Error("failed to delete user", zap.String("username", username), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
		a.invalidatePostsCache(c)

		a.flash(c, "success", "User deleted by admin.")
		return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
	}

	// 普通用户只能注销自己
	if ident.Username != username {
		a.flash(c, "danger", "You do not have permission to delete this user.")
		return c.Redirect(http.StatusSeeOther, "/users/"+ident.Username)
	}

	// 删除账号的同时结束自己的会话
	a.clearIdentity(c)
	if err := a.users.Delete(rctx, username); err != nil {
		a.l.Error("failed to delete user", zap.String("username", username), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	a.invalidatePostsCache(c)

	a.flash(c, "danger", "User deleted")
	return c.Redirect(http.StatusSeeOther, "/")
}
