package model

import "time"

// User 用户模型（身份信息由认证模块维护）
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:用户标识" json:"id"`
	Username  string    `gorm:"size:150;not null;uniqueIndex:uq_users_username;comment:用户名" json:"username"`
	Email     string    `gorm:"size:254;not null;default:'';comment:邮箱" json:"email"`
	Bio       string    `gorm:"type:text;not null;default:'';comment:简介" json:"bio"`
	Password  string    `gorm:"size:255;not null;comment:密码" json:"-"` // json:"-" 序列化时忽略密码
	IsStaff   bool      `gorm:"not null;default:false;comment:是否为管理员" json:"is_staff"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:注册时间" json:"created_at"`

	// 关联关系
	Videos []Video `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"videos,omitempty"`
	Likes  []Like  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"likes,omitempty"`
}

func (User) TableName() string {
	return "users"
}
