package exclusion

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Redis keeps exclusion lists server-side, keyed per shopper token. Used
// by storefronts where the widget runs without cookie access (checkout
// extensions). Entries carry no TTL on purpose: opt-outs never expire.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis { return &Redis{client: client} }

// ForShopper scopes the store to one shopper token.
func (r *Redis) ForShopper(token string) Store {
	return &redisStore{client: r.client, key: StorageKey + ":" + token}
}

type redisStore struct {
	client *redis.Client
	key    string
}

func (s *redisStore) Load(ctx context.Context) ([]int64, error) {
	raw, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return []int64{}, nil
	}
	if err != nil {
		return nil, err
	}
	var variants []int64
	if err := json.Unmarshal([]byte(raw), &variants); err != nil {
		// unreadable value: treat as absent rather than blocking the widget
		return []int64{}, nil
	}
	return variants, nil
}

func (s *redisStore) Save(ctx context.Context, variants []int64) error {
	if variants == nil {
		variants = []int64{}
	}
	b, err := json.Marshal(variants)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key, b, 0).Err()
}
