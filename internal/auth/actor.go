package auth

import (
	"context"

	"github.com/d60-Lab/blog-service/pkg/errs"
)

// Actor 是当前请求的身份；UserID 为空表示未登录
type Actor struct {
	UserID    string
	SessionID string
}

// Anonymous 未登录身份
var Anonymous = Actor{}

func (a Actor) Authenticated() bool { return a.UserID != "" }

// Require 未登录时返回 errs.ErrUnauthorized
func (a Actor) Require() error {
	if !a.Authenticated() {
		return errs.ErrUnauthorized
	}
	return nil
}

type actorKey struct{}

// WithActor 将 Actor 绑定到 ctx，仅供中间件与 handler 之间传递
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// FromContext 取出 Actor；没有时返回 Anonymous
func FromContext(ctx context.Context) Actor {
	if a, ok := ctx.Value(actorKey{}).(Actor); ok {
		return a
	}
	return Anonymous
}
