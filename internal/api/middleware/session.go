package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-service/internal/auth"
	"github.com/d60-Lab/blog-service/pkg/errs"
	"github.com/d60-Lab/blog-service/pkg/response"
)

const actorIDKey = "actor_id"

// tokenFrom 优先读取 Cookie，其次 Authorization: Bearer
func tokenFrom(c *gin.Context, cookieName string) string {
	if v, err := c.Cookie(cookieName); err == nil && v != "" {
		return v
	}
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// Session 将会话令牌解析为 auth.Actor 并放入请求 context。
// 无令牌或令牌无效时按匿名身份继续，由业务层决定是否拒绝。
func Session(sessions *auth.SessionManager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFrom(c, cookieName)
		if token == "" {
			c.Next()
			return
		}
		actor, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, errs.ErrUnauthorized) {
				c.Next()
				return
			}
			// 会话存储不可用只中止当前请求
			response.InternalError(c, err)
			c.Abort()
			return
		}
		c.Set(actorIDKey, actor.UserID)
		c.Request = c.Request.WithContext(auth.WithActor(c.Request.Context(), actor))
		c.Next()
	}
}
