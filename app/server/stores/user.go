package stores

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"feedback-board/app/server/models"

	"github.com/alexedwards/argon2id"
	"gorm.io/gorm"
)

type GormUserStore struct {
	db *gorm.DB
}

var _ UserStore = (*GormUserStore)(nil)

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) Register(ctx context.Context, username, password, email, firstName, lastName string) (*models.User, error) {
	// 邮箱的底线校验，正常情况下表单层已经拦下
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	// 创建密码哈希（每条记录独立盐）
	passwordHash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username:  username,
		Password:  passwordHash,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

func (s *GormUserStore) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 与密码错误同样处理，不泄露用户是否存在
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	// 提取密码 hash 并进行校验
	if match, _, err := argon2id.CheckHash(password, user.Password); err != nil {
		return nil, fmt.Errorf("failed to check password: %w", err)
	} else if !match {
		return nil, ErrNotAuthenticated
	}

	return &user, nil
}

func (s *GormUserStore) Get(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (s *GormUserStore) Delete(ctx context.Context, username string) error {
	// 用户与其帖子在同一事务里删除（ gorm.Model 是软删除，数据库层的级联不会触发）
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("username = ?", username).Delete(&models.Post{}).Error; err != nil {
			return fmt.Errorf("failed to delete posts of user: %w", err)
		}
		if err := tx.Where("username = ?", username).Delete(&models.User{}).Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
}

func (s *GormUserStore) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}
