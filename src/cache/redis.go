package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/realorrender/realorrender/src/types"
)

const claimKeyPrefix = "claim:"

// RedisStore keeps adjudications in Redis keyed by claim fingerprint.
// Entries never expire: an adjudicated claim stays adjudicated.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Lookup(ctx context.Context, fingerprint string) (types.Adjudication, bool, error) {
	raw, err := s.rdb.Get(ctx, claimKeyPrefix+fingerprint).Result()
	if err == redis.Nil {
		return types.Adjudication{}, false, nil
	}
	if err != nil {
		return types.Adjudication{}, false, fmt.Errorf("cache lookup: %w", err)
	}
	var adj types.Adjudication
	if err := json.Unmarshal([]byte(raw), &adj); err != nil {
		// A corrupt entry is treated as a miss; the next Put overwrites it.
		return types.Adjudication{}, false, nil
	}
	return adj, true, nil
}

// Put is insert-or-replace. Concurrent writers for the same fingerprint are
// safe; the last write wins.
func (s *RedisStore) Put(ctx context.Context, fingerprint string, adj types.Adjudication) error {
	b, err := json.Marshal(adj)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return s.rdb.Set(ctx, claimKeyPrefix+fingerprint, b, 0).Err()
}
