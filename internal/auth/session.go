package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/d60-Lab/blog-service/pkg/errs"
)

// SessionStore 记录仍然有效的会话，登出即删除
type SessionStore interface {
	Save(ctx context.Context, sessionID, userID string, ttl time.Duration) error
	// Lookup 返回会话所属用户；会话不存在返回 errs.ErrUnauthorized
	Lookup(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

type redisSessionStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisSessionStore(rdb *redis.Client) SessionStore {
	return &redisSessionStore{rdb: rdb, prefix: "session:"}
}

func (s *redisSessionStore) Save(ctx context.Context, sessionID, userID string, ttl time.Duration) error {
	return s.rdb.Set(ctx, s.prefix+sessionID, userID, ttl).Err()
}

func (s *redisSessionStore) Lookup(ctx context.Context, sessionID string) (string, error) {
	uid, err := s.rdb.Get(ctx, s.prefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return "", errs.ErrUnauthorized
	}
	return uid, err
}

func (s *redisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, s.prefix+sessionID).Err()
}

// SessionManager 签发并解析会话令牌（HS256 JWT，jti 对应 SessionStore 中的记录）
type SessionManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	store  SessionStore
	now    func() time.Time
}

// NewSessionManager store 为 nil 时令牌只做签名校验，无法提前吊销
func NewSessionManager(secret, issuer string, ttl time.Duration, store SessionStore) *SessionManager {
	return &SessionManager{secret: []byte(secret), issuer: issuer, ttl: ttl, store: store, now: time.Now}
}

func (m *SessionManager) TTL() time.Duration { return m.ttl }

// Issue 为 userID 创建会话，返回令牌与过期时间
func (m *SessionManager) Issue(ctx context.Context, userID string) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.ttl)
	sid := uuid.New().String()
	claims := jwt.RegisteredClaims{
		Issuer:    m.issuer,
		Subject:   userID,
		ID:        sid,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session: %w", err)
	}
	if m.store != nil {
		if err := m.store.Save(ctx, sid, userID, m.ttl); err != nil {
			return "", time.Time{}, fmt.Errorf("save session: %w", err)
		}
	}
	return token, exp, nil
}

// Resolve 校验令牌并返回对应 Actor；无效、过期或已登出返回 errs.ErrUnauthorized
func (m *SessionManager) Resolve(ctx context.Context, token string) (Actor, error) {
	if token == "" {
		return Anonymous, errs.ErrUnauthorized
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	var claims jwt.RegisteredClaims
	parsed, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" || claims.ID == "" {
		return Anonymous, errs.ErrUnauthorized
	}
	if m.store != nil {
		uid, err := m.store.Lookup(ctx, claims.ID)
		if err != nil {
			if errors.Is(err, errs.ErrUnauthorized) {
				return Anonymous, err
			}
			return Anonymous, fmt.Errorf("lookup session: %w", err)
		}
		if uid != claims.Subject {
			return Anonymous, errs.ErrUnauthorized
		}
	}
	return Actor{UserID: claims.Subject, SessionID: claims.ID}, nil
}

// Revoke 使会话立即失效
func (m *SessionManager) Revoke(ctx context.Context, a Actor) error {
	if m.store == nil || a.SessionID == "" {
		return nil
	}
	return m.store.Delete(ctx, a.SessionID)
}
