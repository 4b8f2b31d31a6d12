package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"feedback-board/app/server/jwt"
	"feedback-board/app/server/models"

	"github.com/labstack/echo/v4"
)

//go:embed *.html
var pages embed.FS

// Flash 是渲染到页面顶部的一次性提示
type Flash struct {
	Category string // success / primary / info / danger
	Message  string
}

// Data 是所有页面共用的渲染数据，各页面取用自己需要的字段
type Data struct {
	Title       string
	CurrentUser *jwt.Identity // 为 nil 表示匿名
	Flash       *Flash

	// 表单重新渲染时使用
	Errors map[string]string // 字段名 -> 错误信息
	Values map[string]string // 字段名 -> 已填写的值

	User  *models.User
	Post  *models.Post
	Posts []models.Post
	Users []models.User
}

type Renderer struct {
	tmpl *template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

func New() (*Renderer, error) {
	tmpl, err := template.ParseFS(pages, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.tmpl.ExecuteTemplate(w, name, data)
}
