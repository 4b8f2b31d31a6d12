package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	// 基础信息
	Username  string `gorm:"column:username;size:20;uniqueIndex"` // 用户名，全局唯一
	Email     string `gorm:"column:email;size:50;uniqueIndex"`    // 邮箱，全局唯一，必须包含 @
	FirstName string `gorm:"column:first_name;size:30"`           // 名
	LastName  string `gorm:"column:last_name;size:30"`            // 姓
	IsAdmin   bool   `gorm:"column:is_admin"`                     // 是否为管理员：管理员可以管理所有用户与帖子

	// 登录认证相关
	Password string `gorm:"column:password"` // 密码，使用 argon2id 储存

	// 连接模型时使用
	Posts []Post `gorm:"foreignKey:Username;references:Username;constraint:OnDelete:CASCADE"` // 该用户发布的帖子
}
