package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/blog-service/config"
	"github.com/d60-Lab/blog-service/internal/model"
	"github.com/d60-Lab/blog-service/pkg/database"
)

func setupTestDB(tb testing.TB) *gorm.DB {
	tb.Helper()
	db, err := database.Open(config.DatabaseConfig{
		Driver:   "sqlite",
		DSN:      "file::memory:?_foreign_keys=on",
		LogLevel: "silent",
	})
	require.NoError(tb, err)
	require.NoError(tb, InitSchema(db))
	tb.Cleanup(func() { _ = database.Close(db) })
	return db
}

func seedUser(tb testing.TB, db *gorm.DB, name string) *model.User {
	tb.Helper()
	u := &model.User{Username: name, Email: fmt.Sprintf("%s@example.com", name), PasswordHash: "x"}
	require.NoError(tb, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func seedPost(tb testing.TB, db *gorm.DB, owner *model.User, title string) *model.Post {
	tb.Helper()
	p := &model.Post{Title: title, Content: title + " body", UserID: owner.ID}
	require.NoError(tb, NewPostRepository(db).Create(context.Background(), p))
	return p
}
