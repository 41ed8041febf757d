package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/blog-service/internal/model"
	"github.com/d60-Lab/blog-service/pkg/errs"
)

func TestLikeRepository_ToggleIsInvolution(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	p := seedPost(t, db, alice, "Hello")

	_, err := repo.Toggle(ctx, alice.ID, p.ID)
	require.NoError(t, err)

	res, err := repo.Toggle(ctx, bob.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Equal(t, int64(2), res.Likes)

	res, err = repo.Toggle(ctx, bob.ID, p.ID)
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Equal(t, int64(1), res.Likes)
}

func TestLikeRepository_ConcurrentTogglesNeverDoubleInsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	p := seedPost(t, db, alice, "Hello")
	users := make([]*model.User, 5)
	for i := range users {
		users[i] = seedUser(t, db, fmt.Sprintf("u%d", i))
	}

	var wg sync.WaitGroup
	for _, u := range users {
		for i := 0; i < 3; i++ {
			wg.Add(1)
			go func(uid string) {
				defer wg.Done()
				_, err := repo.Toggle(ctx, uid, p.ID)
				assert.NoError(t, err)
			}(u.ID)
		}
	}
	wg.Wait()

	// 每个用户切换了奇数次，最终都处于已点赞状态
	var rows []model.Like
	require.NoError(t, db.Where("post_id = ?", p.ID).Find(&rows).Error)
	assert.Len(t, rows, len(users))
	perUser := map[string]int{}
	for _, r := range rows {
		perUser[r.UserID]++
	}
	for uid, n := range perUser {
		assert.Equal(t, 1, n, "user %s", uid)
	}
}

func TestLikeRepository_UniquePairEnforcedByStorage(t *testing.T) {
	db := setupTestDB(t)
	alice := seedUser(t, db, "alice")
	p := seedPost(t, db, alice, "Hello")

	require.NoError(t, db.Create(&model.Like{ID: newID(), UserID: alice.ID, PostID: p.ID}).Error)
	err := db.Create(&model.Like{ID: newID(), UserID: alice.ID, PostID: p.ID}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var n int64
	require.NoError(t, db.Model(&model.Like{}).Where("post_id = ?", p.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestLikeRepository_ToggleOnDeletedPost(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLikeRepository(db)
	alice := seedUser(t, db, "alice")
	p := seedPost(t, db, alice, "Hello")
	require.NoError(t, NewPostRepository(db).Delete(context.Background(), p.ID))

	_, err := repo.Toggle(context.Background(), alice.ID, p.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	var n int64
	require.NoError(t, db.Model(&model.Like{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestLikeRepository_CountsAndLikedBy(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	p1 := seedPost(t, db, alice, "p1")
	p2 := seedPost(t, db, alice, "p2")
	p3 := seedPost(t, db, alice, "p3")

	for _, pair := range [][2]string{{alice.ID, p1.ID}, {bob.ID, p1.ID}, {bob.ID, p2.ID}} {
		_, err := repo.Toggle(ctx, pair[0], pair[1])
		require.NoError(t, err)
	}

	counts, err := repo.CountByPosts(ctx, []string{p1.ID, p2.ID, p3.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[p1.ID])
	assert.Equal(t, int64(1), counts[p2.ID])
	assert.Zero(t, counts[p3.ID])

	liked, err := repo.LikedBy(ctx, alice.ID, []string{p1.ID, p2.ID, p3.ID})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{p1.ID: true}, liked)

	none, err := repo.LikedBy(ctx, "", []string{p1.ID})
	require.NoError(t, err)
	assert.Empty(t, none)
}
