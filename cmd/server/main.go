// @title Blog Service API
// @version 1.0
// @description 博客、评论、点赞与私信
// @BasePath /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/blog-service/config"
	"github.com/d60-Lab/blog-service/internal/api"
	"github.com/d60-Lab/blog-service/internal/api/handler"
	"github.com/d60-Lab/blog-service/internal/auth"
	"github.com/d60-Lab/blog-service/internal/repository"
	"github.com/d60-Lab/blog-service/internal/service"
	"github.com/d60-Lab/blog-service/pkg/database"
	"github.com/d60-Lab/blog-service/pkg/logger"
	"github.com/d60-Lab/blog-service/pkg/tracing"
)

func must[T any](v T, err error) T {
	if err != nil {
		fatal(err)
	}
	return v
}

func fatal(err error) {
	logger.Error("startup failed", zap.Error(err))
	logger.Sync()
	fmt.Fprintln(os.Stderr, "startup failed:", err)
	os.Exit(1)
}

func main() {
	cfg := must(config.Load())
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN, Environment: cfg.Sentry.Environment}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx := context.Background()
	shutdownTracing := must(tracing.Init(ctx, cfg.Tracing))

	db := must(database.InitDB(cfg))
	if cfg.Database.AutoMigrate {
		if err := repository.InitSchema(db); err != nil {
			fatal(err)
		}
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err := rdb.Ping(ctx).Err(); err != nil {
		fatal(err)
	}

	// repositories & services
	users := repository.NewCachedUserRepository(repository.NewUserRepository(db), rdb, cfg.Redis.UserCacheTTL)
	posts := repository.NewPostRepository(db)
	comments := repository.NewCommentRepository(db)
	likes := repository.NewLikeRepository(db)
	messages := repository.NewMessageRepository(db)

	sessions := auth.NewSessionManager(cfg.Session.Secret, cfg.Session.Issuer, cfg.Session.TTL, auth.NewRedisSessionStore(rdb))
	identity := service.NewIdentityService(users, auth.NewBcryptHasher(0), sessions)
	content := service.NewContentService(users, posts, comments, likes)
	messaging := service.NewMessagingService(users, messages)

	h := handler.New(identity, content, messaging, cfg.Session, cfg.Feed)
	router := must(api.NewRouter(cfg, h, sessions))

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("tracing shutdown", zap.Error(err))
	}
	_ = rdb.Close()
	if err := database.Close(db); err != nil {
		logger.Warn("database close", zap.Error(err))
	}
}
