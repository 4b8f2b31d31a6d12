package handlers

import (
	"net/http"
	"time"

	"feedback-board/app/server/constants"
	"feedback-board/app/server/jwt"
	"feedback-board/app/server/middlewares"
	"feedback-board/app/server/models"

	"github.com/labstack/echo/v4"
)

// currentIdentity 返回当前请求的会话身份，匿名时为 nil 。
// 身份由 middlewares.ResolveSession 在请求开始时解析好。
func (a *App) currentIdentity(c echo.Context) *jwt.Identity {
	return middlewares.IdentityFrom(c)
}

// setIdentity 签出会话 JWT 并写入 cookie ，登录与注册成功时调用
func (a *App) setIdentity(c echo.Context, user *models.User) error {
	expires := time.Now().Add(constants.SessionDuration)
	token, err := a.jwt.SignToken(&jwt.Identity{
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
		Expires:  expires.Unix(),
	})
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

func (a *App) clearIdentity(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
