package model

import "time"

// User 账号；注册后不再修改
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username     string    `json:"username" gorm:"type:varchar(20);uniqueIndex:ux_users_username;not null"`
	Email        string    `json:"email" gorm:"type:varchar(120);uniqueIndex:ux_users_email;not null"`
	PasswordHash string    `json:"-" gorm:"type:text;not null"`
	CreatedAt    time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }
