package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/blog-service/internal/model"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error
	// Thread 返回两人之间的全部私信，按发送时间正序
	Thread(ctx context.Context, userID, otherID string) ([]*model.Message, error)
	// Counterparts 返回与 userID 有过任一方向私信的用户 ID
	Counterparts(ctx context.Context, userID string) ([]string, error)
	// Latest 返回两人之间最近一条私信；没有时返回 nil
	Latest(ctx context.Context, userID, otherID string) (*model.Message, error)
	// MarkRead 将 senderID 发给 receiverID 的未读私信标记为已读
	MarkRead(ctx context.Context, receiverID, senderID string, at time.Time) (int64, error)
	UnreadCount(ctx context.Context, receiverID, senderID string) (int64, error)
}

type messageRepository struct{ db *gorm.DB }

func NewMessageRepository(db *gorm.DB) MessageRepository { return &messageRepository{db: db} }

func (r *messageRepository) Create(ctx context.Context, msg *model.Message) error {
	if msg.ID == "" {
		msg.ID = newID()
	}
	if msg.SentAt.IsZero() {
		msg.SentAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(msg).Error
}

func pairScope(userID, otherID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID)
	}
}

func (r *messageRepository) Thread(ctx context.Context, userID, otherID string) ([]*model.Message, error) {
	var res []*model.Message
	err := r.db.WithContext(ctx).
		Scopes(pairScope(userID, otherID)).
		Order("sent_at ASC, id ASC").
		Find(&res).Error
	return res, err
}

func (r *messageRepository) Counterparts(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Raw(`
		SELECT receiver_id AS user_id FROM messages WHERE sender_id = ?
		UNION
		SELECT sender_id AS user_id FROM messages WHERE receiver_id = ?
	`, userID, userID).Scan(&ids).Error
	return ids, err
}

func (r *messageRepository) Latest(ctx context.Context, userID, otherID string) (*model.Message, error) {
	var m model.Message
	err := r.db.WithContext(ctx).
		Scopes(pairScope(userID, otherID)).
		Order("sent_at DESC, id DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, receiverID, senderID string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND read_at IS NULL", receiverID, senderID).
		Update("read_at", at)
	return res.RowsAffected, res.Error
}

func (r *messageRepository) UnreadCount(ctx context.Context, receiverID, senderID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND read_at IS NULL", receiverID, senderID).
		Count(&cnt).Error
	return cnt, err
}
