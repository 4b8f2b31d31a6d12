package forms

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type RegisterForm struct {
	Username  string `form:"username" validate:"required,max=20"`
	Password  string `form:"password" validate:"required"`
	Email     string `form:"email" validate:"required,email,max=50"`
	FirstName string `form:"first_name" validate:"required,max=30"`
	LastName  string `form:"last_name" validate:"required,max=30"`
}

type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type PostForm struct {
	Title   string `form:"title" validate:"required,max=100"`
	Content string `form:"content" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// 错误信息中使用 form 标签里的字段名
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// Validate 校验表单，返回 字段名 -> 人类可读错误信息 的映射；为空表示通过。
// 校验是纯函数，不触碰任何存储。
func Validate(form interface{}) map[string]string {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"": err.Error()}
	}

	problems := make(map[string]string, len(fieldErrors))
	for _, fe := range fieldErrors {
		problems[fe.Field()] = message(fe)
	}

	return problems
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Please enter a valid email address."
	case "max":
		return fmt.Sprintf("Must be at most %s characters long.", fe.Param())
	default:
		return "Invalid value."
	}
}
