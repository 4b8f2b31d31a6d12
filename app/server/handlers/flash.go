package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"feedback-board/app/server/constants"
	"feedback-board/app/server/templates"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// flash 记录一条一次性提示消息，在下一个渲染的页面上展示。
// 消息体放在 redis 里， cookie 只携带 uuid 。失败只记录日志，不影响请求。
func (a *App) flash(c echo.Context, category, message string) {
	rctx := c.Request().Context()

	id := uuid.NewString()
	cacheKey := fmt.Sprintf(constants.CacheKeyFlash, id)
	if err := a.rdb.Set(rctx, cacheKey, category+"|"+message, constants.CacheExpireFlash).Err(); err != nil {
		a.l.Error("failed to store flash message", zap.Error(err))
		return
	}

	c.SetCookie(&http.Cookie{
		Name:     constants.FlashCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(constants.CacheExpireFlash.Seconds()),
		HttpOnly: true,
	})
}

// popFlash 取出并清除当前的提示消息，没有时返回 nil
func (a *App) popFlash(c echo.Context) *templates.Flash {
	cookie, err := c.Cookie(constants.FlashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	// 读完即删， cookie 与 redis 记录都只活一次
	c.SetCookie(&http.Cookie{
		Name:     constants.FlashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	cacheKey := fmt.Sprintf(constants.CacheKeyFlash, cookie.Value)
	raw, err := a.rdb.GetDel(c.Request().Context(), cacheKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			a.l.Error("failed to load flash message", zap.Error(err))
		}
		return nil
	}

	parts := strings.SplitN(raw, "|", 2)
	if len(parts) != 2 {
		return nil
	}

	return &templates.Flash{Category: parts[0], Message: parts[1]}
}
