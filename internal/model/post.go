package model

import "time"

// Post 博文；UserID 创建后不可变
type Post struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title     string    `json:"title" gorm:"type:varchar(100);not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);index:idx_post_user;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`

	Author *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
}

func (Post) TableName() string { return "posts" }
