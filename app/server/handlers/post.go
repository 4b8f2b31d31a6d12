package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"feedback-board/app/server/forms"
	"feedback-board/app/server/models"
	"feedback-board/app/server/stores"
	"feedback-board/app/server/templates"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (a *App) PostAddShow(c echo.Context) error {
	ident := a.currentIdentity(c)
	if ident == nil {
		a.flash(c, "danger", "Please log in first!")
		return c.Redirect(http.StatusSeeOther, "/")
	}

	user, err := a.postAddTarget(c)
	if user == nil {
		// 响应已写好（重定向或错误页）
		return err
	}

	return a.render(c, "post_new", &templates.Data{
		Title:       "New post",
		CurrentUser: ident,
		User:        user,
	})
}

func (a *App) PostAddSubmit(c echo.Context) error {
	ident := a.currentIdentity(c)
	if ident == nil {
		a.flash(c, "danger", "Please log in first!")
		return c.Redirect(http.StatusSeeOther, "/")
	}

	user, err := a.postAddTarget(c)
	if user == nil {
		// 响应已写好（重定向或错误页）
		return err
	}

	rctx := c.Request().Context()

	// 绑定表单
	var form forms.PostForm
	if err := c.Bind(&form); err != nil {
		a.l.Error("failed to bind post form", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	if problems := forms.Validate(&form); problems != nil {
		return a.render(c, "post_new", &templates.Data{
			Title:       "New post",
			CurrentUser: ident,
			User:        user,
			Errors:      problems,
			Values:      postValues(&form),
		})
	}

	if _, err := a.posts.Create(rctx, form.Title, form.Content, user.Username); err != nil {
		a.l.Error("failed to create post", zap.String("username", user.Username), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	a.invalidatePostsCache(c)

	a.flash(c, "success", "Your post was created")
	return c.Redirect(http.StatusSeeOther, "/users/"+user.Username)
}

// postAddTarget 解析发帖路由中的目标用户：必须存在，且只能是当前用户自己。
// 不满足时直接写好 flash + 重定向响应并返回 nil 用户。
func (a *App) postAddTarget(c echo.Context) (*models.User, error) {
	ident := a.currentIdentity(c)
	username := c.Param("username")

	// 只能以自己的身份发帖
	if ident.Username != username {
		a.flash(c, "danger", "You do not have permission to post as this user.")
		return nil, c.Redirect(http.StatusSeeOther, "/users/"+ident.Username)
	}

	user, err := a.users.Get(c.Request().Context(), username)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			a.flash(c, "danger", "User does not exist")
			return nil, c.Redirect(http.StatusSeeOther, "/users/"+ident.Username)
		}
		a.l.Error("failed to get user", zap.String("username", username), zap.Error(err))
		return nil, a.er(c, http.StatusInternalServerError)
	}

	return user, nil
}

func (a *App) PostUpdateShow(c echo.Context) error {
	ident := a.currentIdentity(c)
	if ident == nil {
		a.flash(c, "danger", "Please log in first!")
		return c.Redirect(http.StatusSeeOther, "/")
	}

	post, err := a.editablePost(c)
	if post == nil {
		// 响应已写好（重定向或错误页）
		return err
	}

	return a.render(c, "post_edit", &templates.Data{
		Title:       "Edit post",
		CurrentUser: ident,
		Post:        post,
		Values: map[string]string{
			"title":   post.Title,
			"content": post.Content,
		},
	})
}

func (a *App) PostUpdateSubmit(c echo.Context) error {
	ident := a.currentIdentity(c)
	if ident == nil {
		a.flash(c, "danger", "Please log in first!")
		return c.Redirect(http.StatusSeeOther, "/")
	}

	post, err := a.editablePost(c)
	if post == nil {
		// 响应已写好（重定向或错误页）
		return err
	}

	rctx := c.Request().Context()

	// 绑定表单
	var form forms.PostForm
	if err := c.Bind(&form); err != nil {
		a.l.Error("failed to bind post form", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	if problems := forms.Validate(&form); problems != nil {
		return a.render(c, "post_edit", &templates.Data{
			Title:       "Edit post",
			CurrentUser: ident,
			Post:        post,
			Errors:      problems,
			Values:      postValues(&form),
		})
	}

	if _, err := a.posts.Update(rctx, post.ID, form.Title, form.Content); err != nil {
		a.l.Error("failed to update post", zap.Uint("id", post.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	a.invalidatePostsCache(c)

	a.flash(c, "success", "Your post was edited")
	return c.Redirect(http.StatusSeeOther, "/users/"+post.Username)
}

func (a *App) PostDelete(c echo.Context) error {
	ident := a.currentIdentity(c)
	if ident == nil {
		a.flash(c, "danger", "Please log in first!")
		return c.Redirect(http.StatusSeeOther, "/")
	}

	// 只有帖子的所有者或管理员可以删除
	post, err := a.editablePost(c)
	if post == nil {
		// 响应已写好（重定向或错误页）
		return err
	}

	if err := a.posts.Delete(c.Request().Context(), post.ID); err != nil {
		a.l.Error("failed to delete post", zap.Uint("id", post.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	a.invalidatePostsCache(c)

	// 回到来源页面
	target := c.Request().Referer()
	if target == "" {
		target = "/"
	}
	return c.Redirect(http.StatusSeeOther, target)
}

// editablePost 解析路由中的帖子 ID 并检查当前用户的编辑权限（所有者或管理员）。
// 不满足时直接写好 flash + 重定向响应并返回 nil 帖子。
func (a *App) editablePost(c echo.Context) (*models.Post, error) {
	ident := a.currentIdentity(c)

	idUint64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		a.flash(c, "danger", "Post does not exist")
		return nil, c.Redirect(http.StatusSeeOther, "/users/"+ident.Username)
	}

	post, err := a.posts.Get(c.Request().Context(), uint(idUint64))
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			a.flash(c, "danger", "Post does not exist")
			return nil, c.Redirect(http.StatusSeeOther, "/users/"+ident.Username)
		}
		a.l.Error("failed to get post", zap.Uint64("id", idUint64), zap.Error(err))
		return nil, a.er(c, http.StatusInternalServerError)
	}

	if post.Username != ident.Username && !ident.IsAdmin {
		a.flash(c, "danger", "You do not have permission to edit this post.")
		return nil, c.Redirect(http.StatusSeeOther, "/users/"+ident.Username)
	}

	return post, nil
}

func postValues(form *forms.PostForm) map[string]string {
	return map[string]string{
		"title":   form.Title,
		"content": form.Content,
	}
}
