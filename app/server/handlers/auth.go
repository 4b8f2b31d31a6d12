package handlers

import (
	"errors"
	"net/http"

	"feedback-board/app/server/forms"
	"feedback-board/app/server/stores"
	"feedback-board/app/server/templates"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (a *App) RegisterShow(c echo.Context) error {
	return a.render(c, "register", &templates.Data{Title: "Register"})
}

func (a *App) RegisterSubmit(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定表单
	var form forms.RegisterForm
	if err := c.Bind(&form); err != nil {
		a.l.Error("failed to bind register form", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	// 校验表单，失败则带着错误信息重新渲染
	if problems := forms.Validate(&form); problems != nil {
		return a.render(c, "register", &templates.Data{
			Title:  "Register",
			Errors: problems,
			Values: registerValues(&form),
		})
	}

	user, err := a.users.Register(rctx, form.Username, form.Password, form.Email, form.FirstName, form.LastName)
	if err != nil {
		if errors.Is(err, stores.ErrDuplicateKey) {
			// 用户名或邮箱已被占用，在注册表单上内联报告
			return a.render(c, "register", &templates.Data{
				Title:  "Register",
				Errors: map[string]string{"username": "Username taken.  Please pick another"},
				Values: registerValues(&form),
			})
		}
		if errors.Is(err, stores.ErrInvalidEmail) {
			return a.render(c, "register", &templates.Data{
				Title:  "Register",
				Errors: map[string]string{"email": "Please enter a valid email address."},
				Values: registerValues(&form),
			})
		}
		a.l.Error("failed to register user", zap.String("username", form.Username), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 注册即登录
	if err := a.setIdentity(c, user); err != nil {
		a.l.Error("failed to sign session token", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.flash(c, "success", "Welcome! Successfully Created Your Account!")
	return c.Redirect(http.StatusSeeOther, "/users/"+user.Username)
}

func (a *App) LoginShow(c echo.Context) error {
	return a.render(c, "login", &templates.Data{Title: "Log in"})
}

func (a *App) LoginSubmit(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定表单
	var form forms.LoginForm
	if err := c.Bind(&form); err != nil {
		a.l.Error("failed to bind login form", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	if problems := forms.Validate(&form); problems != nil {
		return a.render(c, "login", &templates.Data{
			Title:  "Log in",
			Errors: problems,
			Values: map[string]string{"username": form.Username},
		})
	}

	user, err := a.users.Authenticate(rctx, form.Username, form.Password)
	if err != nil {
		if errors.Is(err, stores.ErrNotAuthenticated) {
			// 不区分用户不存在与密码错误
			return a.render(c, "login", &templates.Data{
				Title:  "Log in",
				Errors: map[string]string{"username": "Invalid username/password."},
				Values: map[string]string{"username": form.Username},
			})
		}
		a.l.Error("failed to authenticate user", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	if err := a.setIdentity(c, user); err != nil {
		a.l.Error("failed to sign session token", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.flash(c, "primary", "Welcome Back, "+user.Username+"!")
	return c.Redirect(http.StatusSeeOther, "/users/"+user.Username)
}

func (a *App) Logout(c echo.Context) error {
	if a.currentIdentity(c) == nil {
		a.flash(c, "info", "You are already logged out!")
		return c.Redirect(http.StatusSeeOther, "/")
	}

	a.clearIdentity(c)
	a.flash(c, "info", "Goodbye!")
	return c.Redirect(http.StatusSeeOther, "/")
}

// registerValues 把已提交的注册表单值带回页面，密码除外
func registerValues(form *forms.RegisterForm) map[string]string {
	return map[string]string{
		"username":   form.Username,
		"email":      form.Email,
		"first_name": form.FirstName,
		"last_name":  form.LastName,
	}
}
