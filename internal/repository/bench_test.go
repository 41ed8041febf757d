package repository

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/d60-Lab/blog-service/internal/model"
)

func BenchmarkToggleLike(b *testing.B) {
	db := setupTestDB(b)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	// 预创建部分用户与博文
	users := make([]*model.User, 200)
	for i := range users {
		users[i] = seedUser(b, db, fmt.Sprintf("u%04d", i))
	}
	posts := make([]*model.Post, 50)
	for i := range posts {
		posts[i] = seedPost(b, db, users[i%len(users)], fmt.Sprintf("p%04d", i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		u := users[rand.Intn(len(users))]
		p := posts[rand.Intn(len(posts))]
		if _, err := repo.Toggle(ctx, u.ID, p.ID); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkConversations(b *testing.B) {
	db := setupTestDB(b)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	// 构造：u0 与 N 个用户互发私信
	const N = 500
	u0 := seedUser(b, db, "u0")
	for i := 1; i <= N; i++ {
		u := seedUser(b, db, fmt.Sprintf("u%d", i))
		_ = repo.Create(ctx, &model.Message{SenderID: u0.ID, ReceiverID: u.ID, Content: "hi"})
		_ = repo.Create(ctx, &model.Message{SenderID: u.ID, ReceiverID: u0.ID, Content: "hello"})
	}

	b.ResetTimer()
	b.Run("Counterparts", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = repo.Counterparts(ctx, u0.ID)
		}
	})

	b.Run("Thread", func(b *testing.B) {
		ids, _ := repo.Counterparts(ctx, u0.ID)
		for i := 0; i < b.N; i++ {
			_, _ = repo.Thread(ctx, u0.ID, ids[i%len(ids)])
		}
	})
}
