package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/muhammadheryan/picking-engine/model"
	"github.com/redis/go-redis/v9"
)

// CacheRepository is the distributed tier of the session store. A cache miss
// is (nil, nil), not an error; callers fall through to the durable tier.
type CacheRepository interface {
	GetSession(ctx context.Context, sessionID string) (*model.PickingSession, error)
	SetSession(ctx context.Context, s *model.PickingSession, ttl time.Duration) error
	DeleteSession(ctx context.Context, sessionID string) error
}

type repo struct {
	client *redis.Client
}

// NewCacheRepository returns a redis-backed CacheRepository. The client is
// injected so tests run without a live redis.
func NewCacheRepository(client *redis.Client) CacheRepository {
	return &repo{client: client}
}

func sessionKey(sessionID string) string {
	return "picking:session:" + sessionID
}

func (r *repo) GetSession(ctx context.Context, sessionID string) (*model.PickingSession, error) {
	val, err := r.client.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var s model.PickingSession
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repo) SetSession(ctx context.Context, s *model.PickingSession, ttl time.Duration) error {
	body, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, sessionKey(s.ID), body, ttl).Err()
}

func (r *repo) DeleteSession(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, sessionKey(sessionID)).Err()
}
