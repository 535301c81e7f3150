package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	// RoleUser 普通用户
	RoleUser = "user"
	// RoleAdmin 管理员
	RoleAdmin = "admin"

	// UserStatusActive 正常
	UserStatusActive = "active"
	// UserStatusDisabled 禁用
	UserStatusDisabled = "disabled"
)

// User 用户表
type User struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                           // 主键
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`              // 邮箱
	PasswordHash       string         `gorm:"not null" json:"-"`                              // 密码哈希
	FirstName          string         `gorm:"type:varchar(100);default:''" json:"first_name"` // 名
	LastName           string         `gorm:"type:varchar(100);default:''" json:"last_name"`  // 姓
	Phone              string         `gorm:"type:varchar(50);default:''" json:"phone"`       // 电话
	Role               string         `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Status             string         `gorm:"type:varchar(20);default:'active'" json:"status"` // 账号状态
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`                     // Token 版本（用于全量失效）
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`                                  // 该时间点前签发的 Token 失效
	LastLoginAt        *time.Time     `json:"last_login_at"`                                   // 最后登录时间
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// IsAdmin 是否管理员
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
