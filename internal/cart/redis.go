package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	rd "github.com/redis/go-redis/v9"
)

// RedisStore persists carts as JSON blobs keyed by session, with a TTL so
// abandoned carts age out.
type RedisStore struct {
	client *rd.Client
	ttl    time.Duration
}

func NewRedisStore(client *rd.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}
}

func cartKey(session string) string {
	return "dealboard:cart:" + session
}

func (r *RedisStore) Load(ctx context.Context, session string) ([]Item, error) {
	raw, err := r.client.Get(ctx, cartKey(session)).Bytes()
	if err != nil {
		if errors.Is(err, rd.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *RedisStore) Save(ctx context.Context, session string, items []Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, cartKey(session), raw, r.ttl).Err()
}

func (r *RedisStore) Clear(ctx context.Context, session string) error {
	return r.client.Del(ctx, cartKey(session)).Err()
}
