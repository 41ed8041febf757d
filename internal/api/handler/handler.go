package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-service/config"
	"github.com/d60-Lab/blog-service/internal/auth"
	"github.com/d60-Lab/blog-service/internal/service"
)

// Handler 聚合所有 HTTP 处理函数的依赖
type Handler struct {
	identity  service.IdentityService
	content   service.ContentService
	messaging service.MessagingService
	session   config.SessionConfig
	feed      config.FeedConfig
}

func New(identity service.IdentityService, content service.ContentService, messaging service.MessagingService, session config.SessionConfig, feed config.FeedConfig) *Handler {
	return &Handler{identity: identity, content: content, messaging: messaging, session: session, feed: feed}
}

func actorOf(c *gin.Context) auth.Actor { return auth.FromContext(c.Request.Context()) }

func (h *Handler) setSessionCookie(c *gin.Context, token string, expires time.Time) {
	maxAge := int(time.Until(expires).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.session.CookieName, token, maxAge, "/", "", h.session.Secure, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.session.CookieName, "", -1, "/", "", h.session.Secure, true)
}

// Health 存活探针
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
