package jwt

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

type JWT struct {
	key []byte
}

// Identity 是会话中携带的当前用户身份
type Identity struct {
	Username string
	IsAdmin  bool
	Expires  int64 // Unix second
}

func New(key string) (*JWT, error) {
	if len(key) == 0 {
		return nil, errors.New("key is empty")
	}

	return &JWT{key: []byte(key)}, nil
}

func (j *JWT) ParseIdentity(tokenString string) (*Identity, error) {
	// 检查是否有效
	if len(tokenString) == 0 {
		return nil, errors.New("token string is empty")
	}

	// 映射字段
	ident := &Identity{}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return j.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse jwt failed: %w", err)
	}

	// 匹配内容
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		username, ok := claims["sub"].(string)
		if !ok {
			return nil, fmt.Errorf("invalid token subject")
		}
		ident.Username = username
		if isAdmin, ok := claims["adm"].(bool); ok {
			ident.IsAdmin = isAdmin
		}
		ident.Expires = int64(claims["exp"].(float64))
	} else {
		return nil, fmt.Errorf("invalid token")
	}

	return ident, nil
}

func (j *JWT) SignToken(ident *Identity) (string, error) {
	// 创建声明
	claims := jwt.MapClaims{
		"sub": ident.Username,
		"adm": ident.IsAdmin,
		"exp": ident.Expires,
	}

	// 创建令牌
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// 签名并返回
	return token.SignedString(j.key)
}
