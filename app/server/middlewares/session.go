package middlewares

import (
	"time"

	"feedback-board/app/server/constants"
	"feedback-board/app/server/jwt"

	"github.com/labstack/echo/v4"
)

// ContextKeyIdentity 是会话身份在 echo context 里的键
const ContextKeyIdentity = "identity"

// ResolveSession 在每个请求上解析会话 cookie ，把身份放进 context 。
// 没有 cookie 、签名无效或已过期都视为匿名，不中断请求：是否拒绝由各 handler 决定。
func ResolveSession(j *jwt.JWT) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(constants.SessionCookieName)
			if err != nil || cookie.Value == "" {
				// 匿名
				return next(c)
			}

			ident, err := j.ParseIdentity(cookie.Value)
			if err != nil {
				// 无效的 token ，按匿名处理
				return next(c)
			}

			if ident.Expires < time.Now().Unix() {
				return next(c)
			}

			// 设置 context
			c.Set(ContextKeyIdentity, ident)

			// 继续处理
			return next(c)
		}
	}
}

// IdentityFrom 从 context 中取出当前身份，匿名时返回 nil
func IdentityFrom(c echo.Context) *jwt.Identity {
	if ident, ok := c.Get(ContextKeyIdentity).(*jwt.Identity); ok {
		return ident
	}
	return nil
}
