package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/blog-service/config"
	"github.com/d60-Lab/blog-service/internal/auth"
	"github.com/d60-Lab/blog-service/internal/model"
	"github.com/d60-Lab/blog-service/internal/repository"
	"github.com/d60-Lab/blog-service/pkg/database"
)

type testEnv struct {
	db        *gorm.DB
	identity  IdentityService
	content   ContentService
	messaging MessagingService
	sessions  *auth.SessionManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite", DSN: "file::memory:?_foreign_keys=on", LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, repository.InitSchema(db))
	t.Cleanup(func() { _ = database.Close(db) })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	users := repository.NewCachedUserRepository(repository.NewUserRepository(db), rdb, time.Minute)
	sessions := auth.NewSessionManager("test-secret", "blog-test", time.Hour, auth.NewRedisSessionStore(rdb))
	return &testEnv{
		db:        db,
		identity:  NewIdentityService(users, auth.NewBcryptHasher(4), sessions),
		content:   NewContentService(users, repository.NewPostRepository(db), repository.NewCommentRepository(db), repository.NewLikeRepository(db)),
		messaging: NewMessagingService(users, repository.NewMessageRepository(db)),
		sessions:  sessions,
	}
}

// signup 注册并返回对应的已登录 Actor
func (e *testEnv) signup(t *testing.T, name string) (auth.Actor, *model.User) {
	t.Helper()
	u, err := e.identity.Register(context.Background(), name, name+"@example.com", "pw-"+name)
	require.NoError(t, err)
	return auth.Actor{UserID: u.ID}, u
}
