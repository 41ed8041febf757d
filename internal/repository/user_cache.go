package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/blog-service/internal/model"
	"github.com/d60-Lab/blog-service/pkg/logger"
)

// CachedUserRepository caches user snapshots in Redis in front of a
// UserRepository. Accounts are never mutated after signup, so entries are
// only ever expired by TTL.
type CachedUserRepository struct {
	UserRepository
	cache *redis.Client
	ttl   time.Duration

	bulkLoads atomic.Int64
}

// NewCachedUserRepository wraps next; a nil client disables caching.
func NewCachedUserRepository(next UserRepository, cache *redis.Client, ttl time.Duration) UserRepository {
	if cache == nil {
		return next
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CachedUserRepository{UserRepository: next, cache: cache, ttl: ttl}
}

func userKey(id string) string { return fmt.Sprintf("user:%s", id) }

// GetByIDs loads users with a single MGET and falls through to the database
// only for the ids that were missing. Cache errors degrade to a DB read.
func (r *CachedUserRepository) GetByIDs(ctx context.Context, ids []string) ([]*model.User, error) {
	if len(ids) == 0 {
		return []*model.User{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = userKey(id)
	}

	cached := make(map[string]*model.User, len(ids))
	if vals, err := r.cache.MGet(ctx, keys...).Result(); err == nil {
		for i, v := range vals {
			str, ok := v.(string)
			if !ok {
				continue
			}
			var u model.User
			if uErr := json.Unmarshal([]byte(str), &u); uErr == nil {
				cached[ids[i]] = &u
			}
		}
	} else {
		logger.Warn("user cache mget failed", zap.Error(err))
	}

	missing := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := cached[id]; !ok {
			missing = append(missing, id)
		}
	}

	if len(missing) > 0 {
		r.bulkLoads.Add(1)
		users, err := r.UserRepository.GetByIDs(ctx, missing)
		if err != nil {
			return nil, err
		}
		pipe := r.cache.Pipeline()
		for _, u := range users {
			cached[u.ID] = u
			if payload, err := json.Marshal(u); err == nil {
				pipe.Set(ctx, userKey(u.ID), payload, r.ttl)
			}
		}
		if _, err := pipe.Exec(ctx); err != nil {
			logger.Warn("user cache fill failed", zap.Error(err))
		}
	}

	result := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := cached[id]; ok {
			result = append(result, u)
		}
	}
	return result, nil
}

// BulkLoads reports how many times GetByIDs had to hit the database.
func (r *CachedUserRepository) BulkLoads() int64 { return r.bulkLoads.Load() }
