package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"feedback-board/app/server/constants"
	"feedback-board/app/server/jwt"
	"feedback-board/app/server/middlewares"
	"feedback-board/app/server/templates"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testServer 组装一个跑在内存存储上的完整服务。
// Redis 指向一个没人监听的地址：flash 与缓存都是尽力而为，故障必须不影响请求本身。
type testServer struct {
	e     *echo.Echo
	users *fakeUserStore
	posts *fakePostStore
	jwt   *jwt.JWT
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	j, err := jwt.New("test-signature-secret")
	require.NoError(t, err)

	renderer, err := templates.New()
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})

	posts := newFakePostStore()
	users := newFakeUserStore(posts)

	app := NewApp(zap.NewNop(), users, posts, rdb, j)

	e := echo.New()
	e.Renderer = renderer
	e.Use(middlewares.ResolveSession(j))
	app.RegisterRoutes(e)

	return &testServer{e: e, users: users, posts: posts, jwt: j}
}

func (ts *testServer) sessionCookie(t *testing.T, username string, isAdmin bool) *http.Cookie {
	t.Helper()

	token, err := ts.jwt.SignToken(&jwt.Identity{
		Username: username,
		IsAdmin:  isAdmin,
		Expires:  time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	return &http.Cookie{Name: constants.SessionCookieName, Value: token}
}

func (ts *testServer) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

// responseCookie 从响应里取出指定名字的 cookie
func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}
