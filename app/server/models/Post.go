package models

import "gorm.io/gorm"

type Post struct {
	gorm.Model

	Title    string `gorm:"column:title;size:100"`         // 标题
	Content  string `gorm:"column:content;type:text"`      // 正文，长度不限
	Username string `gorm:"column:username;size:20;index"` // 所属用户的用户名
}
