package handlers

import (
	"context"
	"sort"
	"strings"
	"sync"

	"feedback-board/app/server/models"
	"feedback-board/app/server/stores"
)

// 内存版存储，只用于 handler 测试。
// 密码哈希是 GORM 存储层的职责，在 stores 包的测试里覆盖；这里直接比较明文。

type fakeUserStore struct {
	mu    sync.Mutex
	seq   uint
	users map[string]*models.User // username -> user
	posts *fakePostStore          // 级联删除时使用
}

var _ stores.UserStore = (*fakeUserStore)(nil)

func newFakeUserStore(posts *fakePostStore) *fakeUserStore {
	return &fakeUserStore{
		users: make(map[string]*models.User),
		posts: posts,
	}
}

func (s *fakeUserStore) Register(_ context.Context, username, password, email, firstName, lastName string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !strings.Contains(email, "@") {
		return nil, stores.ErrInvalidEmail
	}
	if _, exists := s.users[username]; exists {
		return nil, stores.ErrDuplicateKey
	}
	for _, u := range s.users {
		if u.Email == email {
			return nil, stores.ErrDuplicateKey
		}
	}

	s.seq++
	user := &models.User{
		Username:  username,
		Password:  password,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	}
	user.ID = s.seq
	s.users[username] = user

	return user, nil
}

func (s *fakeUserStore) Authenticate(_ context.Context, username, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[username]
	if !exists || user.Password != password {
		return nil, stores.ErrNotAuthenticated
	}

	return user, nil
}

func (s *fakeUserStore) Get(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[username]
	if !exists {
		return nil, stores.ErrNotFound
	}

	return user, nil
}

func (s *fakeUserStore) Delete(ctx context.Context, username string) error {
	s.mu.Lock()
	delete(s.users, username)
	s.mu.Unlock()

	// 级联删除该用户的帖子
	posts, err := s.posts.ListByUsername(ctx, username)
	if err != nil {
		return err
	}
	for _, post := range posts {
		if err := s.posts.Delete(ctx, post.ID); err != nil {
			return err
		}
	}

	return nil
}

func (s *fakeUserStore) List(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var users []models.User
	for _, u := range s.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	return users, nil
}

// seed 直接塞入一个用户，绕过注册流程
func (s *fakeUserStore) seed(username, password string, isAdmin bool) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	user := &models.User{
		Username:  username,
		Password:  password,
		Email:     username + "@x.com",
		FirstName: "Test",
		LastName:  "User",
		IsAdmin:   isAdmin,
	}
	user.ID = s.seq
	s.users[username] = user

	return user
}

type fakePostStore struct {
	mu    sync.Mutex
	seq   uint
	posts map[uint]*models.Post
}

var _ stores.PostStore = (*fakePostStore)(nil)

func newFakePostStore() *fakePostStore {
	return &fakePostStore{posts: make(map[uint]*models.Post)}
}

func (s *fakePostStore) Create(_ context.Context, title, content, username string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	post := &models.Post{
		Title:    title,
		Content:  content,
		Username: username,
	}
	post.ID = s.seq
	s.posts[post.ID] = post

	return post, nil
}

func (s *fakePostStore) Get(_ context.Context, id uint) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[id]
	if !exists {
		return nil, stores.ErrNotFound
	}

	copied := *post
	return &copied, nil
}

func (s *fakePostStore) Update(_ context.Context, id uint, title, content string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[id]
	if !exists {
		return nil, stores.ErrNotFound
	}

	post.Title = title
	post.Content = content

	copied := *post
	return &copied, nil
}

func (s *fakePostStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.posts, id)
	return nil
}

func (s *fakePostStore) ListAll(_ context.Context) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var posts []models.Post
	for _, p := range s.posts {
		posts = append(posts, *p)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })

	return posts, nil
}

func (s *fakePostStore) ListByUsername(ctx context.Context, username string) ([]models.Post, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var posts []models.Post
	for _, p := range all {
		if p.Username == username {
			posts = append(posts, p)
		}
	}

	return posts, nil
}
