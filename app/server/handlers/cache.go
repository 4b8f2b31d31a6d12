package handlers

import (
	"encoding/json"
	"errors"

	"feedback-board/app/server/constants"
	"feedback-board/app/server/models"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// postsAll 返回全部帖子，优先走缓存。缓存故障时退回数据库，不影响请求。
func (a *App) postsAll(c echo.Context) ([]models.Post, error) {
	rctx := c.Request().Context()

	var posts []models.Post

	// 查询缓存
	if cacheBytes, err := a.rdb.Get(rctx, constants.CacheKeyPostsAll).Bytes(); err != nil {
		if !errors.Is(err, redis.Nil) {
			a.l.Error("failed to query post list cache", zap.Error(err))
		}
	} else if err = json.Unmarshal(cacheBytes, &posts); err != nil {
		a.l.Error("failed to unmarshal post list cache", zap.ByteString("cacheBytes", cacheBytes), zap.Error(err))
		// 可能是无效的缓存，清理掉
		a.rdb.Del(rctx, constants.CacheKeyPostsAll)
	} else {
		// 成功拉取到并格式化
		return posts, nil
	}

	// 查询数据库
	posts, err := a.posts.ListAll(rctx)
	if err != nil {
		return nil, err
	}

	// 格式化并加入缓存，方便下一次查询
	if cacheBytes, err := json.Marshal(posts); err != nil {
		a.l.Error("failed to marshal post list", zap.Error(err))
	} else {
		a.rdb.Set(rctx, constants.CacheKeyPostsAll, cacheBytes, constants.CacheExpirePostsAll)
	}

	return posts, nil
}

// invalidatePostsCache 在任何影响帖子列表的写操作之后调用
func (a *App) invalidatePostsCache(c echo.Context) {
	a.rdb.Del(c.Request().Context(), constants.CacheKeyPostsAll)
}
