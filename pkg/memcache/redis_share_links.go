package mem

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const shareKeyPrefix = "share:token:"

// RedisShareLinks shares the token cache between API replicas.
type RedisShareLinks struct {
	rdb *redis.Client
}

func NewRedisShareLinks(rdb *redis.Client) *RedisShareLinks {
	return &RedisShareLinks{rdb: rdb}
}

func shareKey(token string) string { return shareKeyPrefix + token }

func (r *RedisShareLinks) Set(ctx context.Context, token string, e ShareLinkEntry, ttl time.Duration) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return r.rdb.SetEx(ctx, shareKey(token), payload, ttl).Err()
}

func (r *RedisShareLinks) Get(ctx context.Context, token string) (ShareLinkEntry, bool, error) {
	raw, err := r.rdb.Get(ctx, shareKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ShareLinkEntry{}, false, nil
	}
	if err != nil {
		return ShareLinkEntry{}, false, err
	}

	var e ShareLinkEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		// A corrupt entry behaves like a miss and is rebuilt from storage.
		return ShareLinkEntry{}, false, nil
	}
	return e, true, nil
}

func (r *RedisShareLinks) Delete(ctx context.Context, token string) error {
	return r.rdb.Del(ctx, shareKey(token)).Err()
}
