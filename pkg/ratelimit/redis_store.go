package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// incrScript bumps the counter and arms the window TTL in one atomic step.
// PEXPIRE fires only on the first hit, so the window never slides forward
// under load.
var incrScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {count, ttl}
`)

// RedisStore implements Store on redis. Counters expire via TTL, so under
// normal operation redis reclaims windows on its own.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore creates a redis-backed counter store.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	if client == nil {
		panic("ratelimit: redis client is required")
	}
	return &RedisStore{client: client}
}

// IncrementAndGet runs the atomic increment script. There is no
// read-modify-write anywhere; concurrent callers each observe a distinct
// post-increment count.
func (s *RedisStore) IncrementAndGet(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	values, err := incrScript.Run(ctx, s.client, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, 0, err
	}
	if len(values) != 2 {
		return 0, 0, errors.New("ratelimit: unexpected script reply")
	}

	count, ttlMillis := values[0], values[1]
	if ttlMillis < 0 {
		// Key exists without a TTL; treat the remaining window as full
		// length and let the sweep reclaim the counter
		ttlMillis = window.Milliseconds()
	}

	return count, time.Duration(ttlMillis) * time.Millisecond, nil
}

// DeleteExpired scans the counter prefix and removes keys left without a
// TTL. Counters with a live TTL are redis's job; the sweep only reclaims
// strays, so a healthy deployment reports zero.
func (s *RedisStore) DeleteExpired(ctx context.Context) (int64, error) {
	var removed int64
	iter := s.client.Scan(ctx, 0, KeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		ttl, err := s.client.PTTL(ctx, key).Result()
		if err != nil {
			return removed, err
		}
		if ttl == -1 {
			if err := s.client.Del(ctx, key).Err(); err != nil {
				return removed, err
			}
			removed++
		}
	}
	if err := iter.Err(); err != nil {
		return removed, err
	}
	return removed, nil
}

var _ Store = (*RedisStore)(nil)
