package model

import "time"

// Like 点赞；(user_id, post_id) 唯一
type Like struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);not null;uniqueIndex:ux_like_user_post"`
	PostID    string    `json:"post_id" gorm:"type:varchar(36);not null;uniqueIndex:ux_like_user_post;index:idx_like_post"`
	CreatedAt time.Time `json:"created_at"`

	User *User `json:"-" gorm:"foreignKey:UserID"`
	Post *Post `json:"-" gorm:"foreignKey:PostID"`
}

func (Like) TableName() string { return "likes" }

// LikeResult 点赞切换结果
type LikeResult struct {
	Liked bool  `json:"liked"`
	Likes int64 `json:"likes"`
}
