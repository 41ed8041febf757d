package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/blog-service/pkg/errs"
)

func newTestManager(t *testing.T) (*SessionManager, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewSessionManager("test-secret", "blog-test", time.Hour, NewRedisSessionStore(rdb)), mr
}

func TestSession_IssueResolveRevoke(t *testing.T) {
	m, mr := newTestManager(t)
	ctx := context.Background()

	token, exp, err := m.Issue(ctx, "user-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	actor, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", actor.UserID)
	assert.True(t, actor.Authenticated())
	assert.True(t, mr.Exists("session:"+actor.SessionID))

	require.NoError(t, m.Revoke(ctx, actor))
	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestSession_RejectsBadTokens(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	_, err := m.Resolve(ctx, "")
	assert.ErrorIs(t, err, errs.ErrUnauthorized)

	_, err = m.Resolve(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, errs.ErrUnauthorized)

	other := NewSessionManager("other-secret", "blog-test", time.Hour, nil)
	forged, _, err := other.Issue(ctx, "user-1")
	require.NoError(t, err)
	_, err = m.Resolve(ctx, forged)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestSession_Expired(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	past := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return past }
	token, _, err := m.Issue(ctx, "user-1")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestSession_StoreExpiryLogsOut(t *testing.T) {
	m, mr := newTestManager(t)
	ctx := context.Background()

	token, _, err := m.Issue(ctx, "user-1")
	require.NoError(t, err)
	mr.FastForward(2 * time.Hour)

	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestActorContext(t *testing.T) {
	ctx := context.Background()
	assert.False(t, FromContext(ctx).Authenticated())
	assert.ErrorIs(t, FromContext(ctx).Require(), errs.ErrUnauthorized)

	ctx = WithActor(ctx, Actor{UserID: "u1"})
	assert.Equal(t, "u1", FromContext(ctx).UserID)
	assert.NoError(t, FromContext(ctx).Require())
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(4)
	hash, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, h.Verify(hash, "s3cret"))
	assert.False(t, h.Verify(hash, "wrong"))
	assert.False(t, h.Verify("garbage", "s3cret"))

	_, err = h.Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, errs.ErrValidation)
	_, err = h.Hash(strings.Repeat("a", 72))
	assert.NoError(t, err)
}
