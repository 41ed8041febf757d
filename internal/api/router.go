package api

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/blog-service/config"
	_ "github.com/d60-Lab/blog-service/docs"
	"github.com/d60-Lab/blog-service/internal/api/handler"
	"github.com/d60-Lab/blog-service/internal/api/middleware"
	"github.com/d60-Lab/blog-service/internal/auth"
)

// NewRouter 组装中间件与路由
func NewRouter(cfg *config.Config, h *handler.Handler, sessions *auth.SessionManager) (*gin.Engine, error) {
	gin.SetMode(cfg.Server.Mode)
	if err := middleware.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(middleware.Recovery())
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.Session(sessions, cfg.Session.CookieName))
	r.Use(middleware.Logger())

	r.GET("/healthz", h.Health)
	if cfg.Server.Mode != gin.ReleaseMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	{
		a := v1.Group("/auth")
		a.POST("/signup", h.Signup)
		a.POST("/login", h.Login)
		a.POST("/logout", h.Logout)

		v1.GET("/me", h.Me)
		v1.GET("/me/posts", h.MyPosts)
		v1.GET("/feed", h.Feed)

		p := v1.Group("/posts")
		p.POST("", h.CreatePost)
		p.GET("/:id", h.GetPost)
		p.PUT("/:id", h.UpdatePost)
		p.DELETE("/:id", h.DeletePost)
		p.GET("/:id/comments", h.ListComments)
		p.POST("/:id/comments", h.AddComment)
		p.POST("/:id/like", h.ToggleLike)

		v1.DELETE("/comments/:id", h.DeleteComment)

		ch := v1.Group("/chats")
		ch.GET("", h.ListChats)
		ch.GET("/:user_id", h.GetChat)
		ch.POST("/:user_id", h.SendMessage)
	}
	return r, nil
}
