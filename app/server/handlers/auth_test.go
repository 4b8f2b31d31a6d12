package handlers

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"feedback-board/app/server/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerForm(username string) url.Values {
	return url.Values{
		"username":   {username},
		"password":   {"pw123"},
		"email":      {username + "@x.com"},
		"first_name": {"Alice"},
		"last_name":  {"A"},
	}
}

func TestRegister_Success(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.postForm("/register", registerForm("alice"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/users/alice", rec.Header().Get("Location"))

	// 注册即登录：响应要带上会话 cookie
	session := responseCookie(rec, constants.SessionCookieName)
	require.NotNil(t, session)
	ident, err := ts.jwt.ParseIdentity(session.Value)
	require.NoError(t, err)
	assert.Equal(t, "alice", ident.Username)
	assert.False(t, ident.IsAdmin)

	// 之后用同样的凭据可以认证
	_, err = ts.users.Authenticate(context.Background(), "alice", "pw123")
	assert.NoError(t, err)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	ts := newTestServer(t)
	ts.users.seed("bob", "original-pw", false)

	form := registerForm("bob")
	form.Set("email", "bob-two@x.com")
	rec := ts.postForm("/register", form)

	// 重复的用户名在注册表单里内联报告，不产生新用户
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Username taken.  Please pick another")
	assert.Nil(t, responseCookie(rec, constants.SessionCookieName))

	// 原有账号不受影响，旧密码仍然可用
	user, err := ts.users.Authenticate(context.Background(), "bob", "original-pw")
	require.NoError(t, err)
	assert.Equal(t, "bob@x.com", user.Email)
}

func TestRegister_ValidationFailure(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.postForm("/register", url.Values{"username": {"alice"}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "This field is required.")

	// 校验失败不触碰存储
	_, err := ts.users.Get(context.Background(), "alice")
	assert.Error(t, err)
}

func TestRegister_BadEmail(t *testing.T) {
	ts := newTestServer(t)

	form := registerForm("alice")
	form.Set("email", "not-an-email")
	rec := ts.postForm("/register", form)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please enter a valid email address.")
}

func TestLogin_Success(t *testing.T) {
	ts := newTestServer(t)
	ts.users.seed("bob", "pw123", false)

	rec := ts.postForm("/login", url.Values{
		"username": {"bob"},
		"password": {"pw123"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/users/bob", rec.Header().Get("Location"))
	assert.NotNil(t, responseCookie(rec, constants.SessionCookieName))
}

func TestLogin_WrongPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.users.seed("bob", "pw123", false)

	rec := ts.postForm("/login", url.Values{
		"username": {"bob"},
		"password": {"wrong"},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid username/password.")
	assert.Nil(t, responseCookie(rec, constants.SessionCookieName))
}

func TestLogin_UnknownUser(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.postForm("/login", url.Values{
		"username": {"nobody"},
		"password": {"pw123"},
	})

	// 与密码错误一样的提示，不泄露用户是否存在
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid username/password.")
}

func TestLogout_ClearsSession(t *testing.T) {
	ts := newTestServer(t)
	ts.users.seed("bob", "pw123", false)

	rec := ts.get("/logout", ts.sessionCookie(t, "bob", false))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	session := responseCookie(rec, constants.SessionCookieName)
	require.NotNil(t, session)
	assert.Empty(t, session.Value)
	assert.Negative(t, session.MaxAge)
}

func TestLogout_Anonymous(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.get("/logout")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}
