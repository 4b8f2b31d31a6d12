package stores

import (
	"context"
	"errors"

	"feedback-board/app/server/models"
)

// 哨兵错误， handler 层据此决定是重新渲染表单还是 flash + 重定向
var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateKey     = errors.New("duplicate key")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrInvalidEmail     = errors.New("invalid email address")
)

// UserStore 管理用户记录与凭据
type UserStore interface {
	// Register 创建新用户，密码以 argon2id 哈希储存；用户名或邮箱冲突时返回 ErrDuplicateKey
	Register(ctx context.Context, username, password, email, firstName, lastName string) (*models.User, error)
	// Authenticate 校验用户名与密码；用户不存在与密码错误统一返回 ErrNotAuthenticated ，不泄露区别
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	Get(ctx context.Context, username string) (*models.User, error)
	// Delete 删除用户并级联删除其全部帖子
	Delete(ctx context.Context, username string) error
	List(ctx context.Context) ([]models.User, error)
}

// PostStore 管理帖子记录
type PostStore interface {
	Create(ctx context.Context, title, content, username string) (*models.Post, error)
	Get(ctx context.Context, id uint) (*models.Post, error)
	Update(ctx context.Context, id uint, title, content string) (*models.Post, error)
	Delete(ctx context.Context, id uint) error
	ListAll(ctx context.Context) ([]models.Post, error)
	ListByUsername(ctx context.Context, username string) ([]models.Post, error)
}
