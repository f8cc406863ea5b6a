package ratelimit

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisTTLSlackSeconds keeps keys alive slightly past the window boundary so
// in-flight checks near the edge still observe the counter.
const redisTTLSlackSeconds = 60

var redisIncrScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RedisLimiter implements a fixed-window rate limiter backed by Redis. The
// window is identified by its index (floor of now over the window duration)
// so all replicas sharing the Redis agree on window boundaries.
type RedisLimiter struct {
	client *redis.Client
	prefix string
}

// NewRedisLimiter constructs a RedisLimiter.
func NewRedisLimiter(client *redis.Client, prefix string) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: strings.TrimSpace(prefix),
	}
}

// Allow checks whether the request should be allowed in the current window.
func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (Result, error) {
	if limit <= 0 || key == "" || window <= 0 || l == nil || l.client == nil {
		return Result{Allowed: true}, nil
	}
	windowSecs := int64(window / time.Second)
	if windowSecs < 1 {
		windowSecs = 1
	}
	idx := now.Unix() / windowSecs
	reset := time.Unix((idx+1)*windowSecs, 0).UTC()
	redisKey := l.buildKey(key, idx)

	res, errEval := redisIncrScript.Run(ctx, l.client, []string{redisKey}, windowSecs+redisTTLSlackSeconds).Result()
	if errEval != nil {
		return Result{}, errEval
	}
	count, ok := res.(int64)
	if !ok {
		switch v := res.(type) {
		case int:
			count = int64(v)
		case uint64:
			count = int64(v)
		default:
			return Result{}, errors.New("rate limit redis: unexpected response type")
		}
	}
	if count > int64(limit) {
		return Result{Allowed: false, Remaining: 0, Reset: reset}, nil
	}
	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Result{Allowed: true, Remaining: remaining, Reset: reset}, nil
}

func (l *RedisLimiter) buildKey(key string, idx int64) string {
	idxStr := strconv.FormatInt(idx, 10)
	prefix := strings.TrimSpace(l.prefix)
	if prefix == "" {
		return key + ":" + idxStr
	}
	return prefix + ":" + key + ":" + idxStr
}
