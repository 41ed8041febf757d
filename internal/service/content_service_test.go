package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/blog-service/internal/auth"
	"github.com/d60-Lab/blog-service/internal/model"
	"github.com/d60-Lab/blog-service/pkg/errs"
)

func TestContent_AnonymousRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	anon := auth.Anonymous

	_, err := env.content.Feed(ctx, anon, 10)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
	_, err = env.content.OwnPosts(ctx, anon)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
	_, err = env.content.GetPost(ctx, anon, "x")
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
	_, err = env.content.CreatePost(ctx, anon, "t", "c")
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
	_, err = env.content.UpdatePost(ctx, anon, "x", "t", "c")
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
	assert.ErrorIs(t, env.content.DeletePost(ctx, anon, "x"), errs.ErrUnauthorized)
	_, err = env.content.AddComment(ctx, anon, "x", "hi", nil)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
	assert.ErrorIs(t, env.content.DeleteComment(ctx, anon, "x"), errs.ErrUnauthorized)
	_, err = env.content.ToggleLike(ctx, anon, "x")
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestContent_CreateAndOwnPosts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice, _ := env.signup(t, "alice")
	bob, _ := env.signup(t, "bob")

	for i := 0; i < 3; i++ {
		_, err := env.content.CreatePost(ctx, alice, fmt.Sprintf("a%d", i), "body")
		require.NoError(t, err)
	}
	_, err := env.content.CreatePost(ctx, bob, "b0", "body")
	require.NoError(t, err)

	mine, err := env.content.OwnPosts(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	for i, p := range mine {
		assert.Equal(t, fmt.Sprintf("a%d", i), p.Title)
		assert.Equal(t, "alice", p.Author)
		assert.Zero(t, p.Likes)
	}
}

func TestContent_FeedSize(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice, _ := env.signup(t, "alice")

	feed, err := env.content.Feed(ctx, alice, 10)
	require.NoError(t, err)
	assert.Empty(t, feed)

	for i := 0; i < 4; i++ {
		_, err := env.content.CreatePost(ctx, alice, fmt.Sprintf("p%d", i), "body")
		require.NoError(t, err)
	}
	for _, tc := range []struct{ limit, want int }{{0, 0}, {2, 2}, {4, 4}, {10, 4}} {
		feed, err := env.content.Feed(ctx, alice, tc.limit)
		require.NoError(t, err)
		assert.Len(t, feed, tc.want, "limit=%d", tc.limit)
		seen := map[string]bool{}
		for _, p := range feed {
			assert.False(t, seen[p.ID], "duplicate post in feed")
			seen[p.ID] = true
		}
	}
}

func TestContent_UpdateDeleteOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice, _ := env.signup(t, "alice")
	bob, _ := env.signup(t, "bob")

	p, err := env.content.CreatePost(ctx, alice, "original", "body")
	require.NoError(t, err)

	_, err = env.content.UpdatePost(ctx, bob, p.ID, "hijacked", "x")
	assert.ErrorIs(t, err, errs.ErrForbidden)
	assert.ErrorIs(t, env.content.DeletePost(ctx, bob, p.ID), errs.ErrForbidden)

	got, err := env.content.GetPost(ctx, alice, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Title)
	assert.Equal(t, "body", got.Content)

	updated, err := env.content.UpdatePost(ctx, alice, p.ID, "edited", "new body")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Title)
	assert.Equal(t, p.UserID, updated.UserID)

	_, err = env.content.UpdatePost(ctx, alice, "missing", "t", "c")
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.ErrorIs(t, env.content.DeletePost(ctx, alice, "missing"), errs.ErrNotFound)
}

func TestContent_DeletePostCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice, _ := env.signup(t, "alice")
	bob, _ := env.signup(t, "bob")

	p, err := env.content.CreatePost(ctx, alice, "doomed", "body")
	require.NoError(t, err)
	other, err := env.content.CreatePost(ctx, bob, "survivor", "body")
	require.NoError(t, err)

	root, err := env.content.AddComment(ctx, bob, p.ID, "first", nil)
	require.NoError(t, err)
	_, err = env.content.AddComment(ctx, alice, p.ID, "reply", &root.ID)
	require.NoError(t, err)
	_, err = env.content.ToggleLike(ctx, bob, p.ID)
	require.NoError(t, err)
	_, err = env.content.AddComment(ctx, alice, other.ID, "keep", nil)
	require.NoError(t, err)
	_, err = env.content.ToggleLike(ctx, alice, other.ID)
	require.NoError(t, err)

	require.NoError(t, env.content.DeletePost(ctx, alice, p.ID))

	_, err = env.content.GetPost(ctx, alice, p.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	var n int64
	require.NoError(t, env.db.Model(&model.Comment{}).Where("post_id = ?", p.ID).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, env.db.Model(&model.Like{}).Where("post_id = ?", p.ID).Count(&n).Error)
	assert.Zero(t, n)

	survivor, err := env.content.GetPost(ctx, bob, other.ID)
	require.NoError(t, err)
	assert.Len(t, survivor.Comments, 1)
	assert.Equal(t, int64(1), survivor.Likes)
}

func TestContent_ToggleLikeInvolution(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice, _ := env.signup(t, "alice")
	bob, _ := env.signup(t, "bob")
	p, err := env.content.CreatePost(ctx, alice, "likeable", "body")
	require.NoError(t, err)

	res, err := env.content.ToggleLike(ctx, bob, p.ID)
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Equal(t, int64(1), res.Likes)

	res, err = env.content.ToggleLike(ctx, alice, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Likes)

	res, err = env.content.ToggleLike(ctx, bob, p.ID)
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Equal(t, int64(1), res.Likes)

	detail, err := env.content.GetPost(ctx, bob, p.ID)
	require.NoError(t, err)
	assert.False(t, detail.Liked)
	detail, err = env.content.GetPost(ctx, alice, p.ID)
	require.NoError(t, err)
	assert.True(t, detail.Liked)
	assert.Equal(t, int64(1), detail.Likes)

	_, err = env.content.ToggleLike(ctx, bob, "missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestContent_CommentThread(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice, _ := env.signup(t, "alice")
	bob, _ := env.signup(t, "bob")
	p, err := env.content.CreatePost(ctx, alice, "discussion", "body")
	require.NoError(t, err)

	c20, err := env.content.AddComment(ctx, bob, p.ID, "comment 20", nil)
	require.NoError(t, err)
	c21, err := env.content.AddComment(ctx, alice, p.ID, "comment 21", &c20.ID)
	require.NoError(t, err)
	require.NotNil(t, c21.ParentID)
	assert.Equal(t, c20.ID, *c21.ParentID)

	empty := ""
	top, err := env.content.AddComment(ctx, alice, p.ID, "top level", &empty)
	require.NoError(t, err)
	assert.Nil(t, top.ParentID)

	tree, err := env.content.Comments(ctx, bob, p.ID)
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, c20.ID, tree[0].ID)
	require.Len(t, tree[0].Replies, 1)
	assert.Equal(t, c21.ID, tree[0].Replies[0].ID)
	assert.Equal(t, top.ID, tree[1].ID)
	assert.Empty(t, tree[1].Replies)

	_, err = env.content.Comments(ctx, bob, "missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestContent_AddCommentValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice, _ := env.signup(t, "alice")
	p1, err := env.content.CreatePost(ctx, alice, "one", "body")
	require.NoError(t, err)
	p2, err := env.content.CreatePost(ctx, alice, "two", "body")
	require.NoError(t, err)
	onP1, err := env.content.AddComment(ctx, alice, p1.ID, "hello", nil)
	require.NoError(t, err)

	_, err = env.content.AddComment(ctx, alice, p1.ID, "   ", nil)
	assert.ErrorIs(t, err, errs.ErrValidation)
	_, err = env.content.AddComment(ctx, alice, "missing", "hi", nil)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	missing := "missing"
	_, err = env.content.AddComment(ctx, alice, p1.ID, "hi", &missing)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	_, err = env.content.AddComment(ctx, alice, p2.ID, "cross post", &onP1.ID)
	assert.ErrorIs(t, err, errs.ErrValidation)

	var n int64
	require.NoError(t, env.db.Model(&model.Comment{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestContent_DeleteCommentSubtree(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice, _ := env.signup(t, "alice")
	bob, _ := env.signup(t, "bob")
	p, err := env.content.CreatePost(ctx, alice, "thread", "body")
	require.NoError(t, err)

	root, err := env.content.AddComment(ctx, alice, p.ID, "root", nil)
	require.NoError(t, err)
	child, err := env.content.AddComment(ctx, bob, p.ID, "child", &root.ID)
	require.NoError(t, err)
	_, err = env.content.AddComment(ctx, alice, p.ID, "grandchild", &child.ID)
	require.NoError(t, err)
	sibling, err := env.content.AddComment(ctx, bob, p.ID, "sibling", nil)
	require.NoError(t, err)

	assert.ErrorIs(t, env.content.DeleteComment(ctx, bob, root.ID), errs.ErrForbidden)
	assert.ErrorIs(t, env.content.DeleteComment(ctx, alice, "missing"), errs.ErrNotFound)

	require.NoError(t, env.content.DeleteComment(ctx, alice, root.ID))
	tree, err := env.content.Comments(ctx, alice, p.ID)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, sibling.ID, tree[0].ID)
}
