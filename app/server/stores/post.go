package stores

import (
	"context"
	"errors"
	"fmt"

	"feedback-board/app/server/models"

	"gorm.io/gorm"
)

type GormPostStore struct {
	db *gorm.DB
}

var _ PostStore = (*GormPostStore)(nil)

func NewGormPostStore(db *gorm.DB) *GormPostStore {
	return &GormPostStore{db: db}
}

func (s *GormPostStore) Create(ctx context.Context, title, content, username string) (*models.Post, error) {
	post := models.Post{
		Title:    title,
		Content:  content,
		Username: username,
	}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return &post, nil
}

func (s *GormPostStore) Get(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &post, nil
}

func (s *GormPostStore) Update(ctx context.Context, id uint, title, content string) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	post.Title = title
	post.Content = content
	if err := s.db.WithContext(ctx).Model(&post).Updates(map[string]interface{}{
		"title":   title,
		"content": content,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return &post, nil
}

func (s *GormPostStore) Delete(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	return nil
}

func (s *GormPostStore) ListAll(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

func (s *GormPostStore) ListByUsername(ctx context.Context, username string) ([]models.Post, error) {
	var posts []models.Post
	if err := s.db.WithContext(ctx).Where("username = ?", username).Order("id ASC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to list posts of user: %w", err)
	}

	return posts, nil
}
