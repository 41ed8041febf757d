package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/blog-service/internal/auth"
	"github.com/d60-Lab/blog-service/internal/model"
	"github.com/d60-Lab/blog-service/internal/repository"
	"github.com/d60-Lab/blog-service/pkg/errs"
	"github.com/d60-Lab/blog-service/pkg/logger"
)

// ThreadView 与某个用户的完整对话
type ThreadView struct {
	OtherUser *model.User      `json:"other_user"`
	Messages  []*model.Message `json:"messages"`
}

// MessagingService 私信
type MessagingService interface {
	Send(ctx context.Context, actor auth.Actor, receiverID, content string) (*model.Message, error)
	// Conversations 列出所有有过往来的用户及最近一条私信，按最近时间倒序
	Conversations(ctx context.Context, actor auth.Actor) ([]*model.Conversation, error)
	// Thread 返回与 otherID 的全部私信（时间正序），并将对方发来的未读消息置为已读
	Thread(ctx context.Context, actor auth.Actor, otherID string) (*ThreadView, error)
}

type messagingService struct {
	users    repository.UserRepository
	messages repository.MessageRepository
	now      func() time.Time
}

func NewMessagingService(users repository.UserRepository, messages repository.MessageRepository) MessagingService {
	return &messagingService{users: users, messages: messages, now: func() time.Time { return time.Now().UTC() }}
}

func (s *messagingService) Send(ctx context.Context, actor auth.Actor, receiverID, content string) (*model.Message, error) {
	if err := actor.Require(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, errs.Validation("message cannot be empty")
	}
	if receiverID == actor.UserID {
		return nil, errs.Validation("cannot send a message to yourself")
	}
	ok, err := s.users.Exists(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.NotFound("user")
	}
	m := &model.Message{SenderID: actor.UserID, ReceiverID: receiverID, Content: content, SentAt: s.now()}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *messagingService) Conversations(ctx context.Context, actor auth.Actor) ([]*model.Conversation, error) {
	if err := actor.Require(); err != nil {
		return nil, err
	}
	ids, err := s.messages.Counterparts(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	users, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]*model.Conversation, 0, len(users))
	for _, u := range users {
		last, err := s.messages.Latest(ctx, actor.UserID, u.ID)
		if err != nil {
			return nil, err
		}
		if last == nil {
			continue
		}
		unread, err := s.messages.UnreadCount(ctx, actor.UserID, u.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, &model.Conversation{OtherUser: u, LastMessage: last, Unread: unread})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].LastMessage, out[j].LastMessage
		if !a.SentAt.Equal(b.SentAt) {
			return a.SentAt.After(b.SentAt)
		}
		return a.ID > b.ID
	})
	return out, nil
}

func (s *messagingService) Thread(ctx context.Context, actor auth.Actor, otherID string) (*ThreadView, error) {
	if err := actor.Require(); err != nil {
		return nil, err
	}
	other, err := s.users.GetByID(ctx, otherID)
	if err != nil {
		return nil, err
	}
	msgs, err := s.messages.Thread(ctx, actor.UserID, otherID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	n, err := s.messages.MarkRead(ctx, actor.UserID, otherID, now)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		for _, m := range msgs {
			if m.ReceiverID == actor.UserID && m.ReadAt == nil {
				m.ReadAt = &now
			}
		}
		logger.Debug("messages marked read", zap.String("user_id", actor.UserID), zap.Int64("count", n))
	}
	return &ThreadView{OtherUser: other, Messages: msgs}, nil
}
