package model

import "time"

// Message 私信
type Message struct {
	ID         string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	SenderID   string     `json:"sender_id" gorm:"type:varchar(36);not null;index:idx_msg_pair"`
	ReceiverID string     `json:"receiver_id" gorm:"type:varchar(36);not null;index:idx_msg_pair;index:idx_msg_receiver"`
	Content    string     `json:"content" gorm:"type:text;not null"`
	SentAt     time.Time  `json:"sent_at" gorm:"not null;index"`
	ReadAt     *time.Time `json:"read_at,omitempty"`

	Sender   *User `json:"-" gorm:"foreignKey:SenderID"`
	Receiver *User `json:"-" gorm:"foreignKey:ReceiverID"`
}

func (Message) TableName() string { return "messages" }

// Conversation 会话摘要
type Conversation struct {
	OtherUser   *User    `json:"other_user"`
	LastMessage *Message `json:"last_message"`
	Unread      int64    `json:"unread"`
}
