package model

import "astrolink/pkg/core/model/common"

// User 用户数据库模型
type User struct {
	common.Model
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email" comment:"邮箱"`
	PasswordHash string `gorm:"size:255;not null" json:"-" comment:"密码散列"`
	PlanID       int64  `gorm:"type:bigint;not null;comment:套餐ID" json:"planId" comment:"套餐ID"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
