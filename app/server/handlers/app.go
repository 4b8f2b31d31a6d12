package handlers

import (
	"feedback-board/app/server/jwt"
	"feedback-board/app/server/stores"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type App struct {
	l     *zap.Logger      // 日志
	users stores.UserStore // 用户存储
	posts stores.PostStore // 帖子存储
	rdb   *redis.Client    // Redis ，一次性提示消息与帖子列表缓存
	jwt   *jwt.JWT         // JWT ，用于无状态会话
}

func NewApp(l *zap.Logger, users stores.UserStore, posts stores.PostStore, rdb *redis.Client, j *jwt.JWT) *App {
	return &App{
		l:     l,
		users: users,
		posts: posts,
		rdb:   rdb,
		jwt:   j,
	}
}

func (a *App) RegisterRoutes(e *echo.Echo) {
	e.GET("/", a.Home)

	e.GET("/register", a.RegisterShow)
	e.POST("/register", a.RegisterSubmit)
	e.GET("/login", a.LoginShow)
	e.POST("/login", a.LoginSubmit)
	e.GET("/logout", a.Logout)

	e.GET("/users/:username", a.UserShow)
	e.GET("/users/:username/post/add", a.PostAddShow)
	e.POST("/users/:username/post/add", a.PostAddSubmit)
	e.POST("/users/:username/delete", a.UserDelete)

	e.GET("/post/:id/update", a.PostUpdateShow)
	e.POST("/post/:id/update", a.PostUpdateSubmit)
	e.POST("/post/:id/delete", a.PostDelete)

	e.GET("/admin/dashboard", a.AdminDashboard)
}
