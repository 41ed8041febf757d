package model

import "time"

// Comment 评论；ParentID 非空时为回复，构成以 parent_id 为边的评论树
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);index:idx_comment_user;not null"`
	PostID    string    `json:"post_id" gorm:"type:varchar(36);index:idx_comment_post;not null"`
	ParentID  *string   `json:"parent_id,omitempty" gorm:"type:varchar(36);index:idx_comment_parent"`
	CreatedAt time.Time `json:"created_at"`

	Author *User    `json:"-" gorm:"foreignKey:UserID"`
	Post   *Post    `json:"-" gorm:"foreignKey:PostID"`
	Parent *Comment `json:"-" gorm:"foreignKey:ParentID"`
}

func (Comment) TableName() string { return "comments" }

// CommentNode 评论树节点
type CommentNode struct {
	Comment
	Replies []*CommentNode `json:"replies"`
}
