package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/d60-Lab/blog-service/internal/auth"
	"github.com/d60-Lab/blog-service/internal/model"
	"github.com/d60-Lab/blog-service/internal/repository"
	"github.com/d60-Lab/blog-service/pkg/errs"
	"github.com/d60-Lab/blog-service/pkg/logger"
)

const (
	maxUsernameLen   = 20
	maxEmailLen      = 120
	maxPasswordBytes = 72 // bcrypt 上限
)

// Session 登录结果
type Session struct {
	Token     string      `json:"-"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      *model.User `json:"user"`
}

// IdentityService 账号注册、登录与会话
type IdentityService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	// Verify 邮箱精确匹配且口令正确时返回用户，否则 errs.ErrAuth
	Verify(ctx context.Context, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	Logout(ctx context.Context, actor auth.Actor) error
	Profile(ctx context.Context, actor auth.Actor) (*model.User, error)
}

type identityService struct {
	users    repository.UserRepository
	hasher   auth.PasswordHasher
	sessions *auth.SessionManager
}

func NewIdentityService(users repository.UserRepository, hasher auth.PasswordHasher, sessions *auth.SessionManager) IdentityService {
	return &identityService{users: users, hasher: hasher, sessions: sessions}
}

func (s *identityService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	switch {
	case username == "":
		return nil, errs.Validation("username is required")
	case utf8.RuneCountInString(username) > maxUsernameLen:
		return nil, errs.Validation("username must be at most %d characters", maxUsernameLen)
	case email == "" || !strings.Contains(email, "@"):
		return nil, errs.Validation("a valid email is required")
	case utf8.RuneCountInString(email) > maxEmailLen:
		return nil, errs.Validation("email must be at most %d characters", maxEmailLen)
	case password == "":
		return nil, errs.Validation("password is required")
	case len(password) > maxPasswordBytes:
		return nil, errs.Validation("password must be at most %d bytes", maxPasswordBytes)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	u := &model.User{Username: username, Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, errs.ErrDuplicate) {
			return nil, errs.ErrDuplicate
		}
		return nil, err
	}
	logger.Info("user registered", zap.String("user_id", u.ID))
	return u, nil
}

func (s *identityService) Verify(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.ErrAuth
		}
		return nil, err
	}
	if !s.hasher.Verify(u.PasswordHash, password) {
		return nil, errs.ErrAuth
	}
	return u, nil
}

func (s *identityService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.Verify(ctx, email, password)
	if err != nil {
		return nil, err
	}
	token, exp, err := s.sessions.Issue(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: exp, User: u}, nil
}

func (s *identityService) Logout(ctx context.Context, actor auth.Actor) error {
	if err := actor.Require(); err != nil {
		return err
	}
	return s.sessions.Revoke(ctx, actor)
}

func (s *identityService) Profile(ctx context.Context, actor auth.Actor) (*model.User, error) {
	if err := actor.Require(); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, actor.UserID)
}
