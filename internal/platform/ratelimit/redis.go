package ratelimit

import (
	"context"
	"time"

	"minishop/internal/platform/logger"

	"github.com/redis/go-redis/v9"
)

const redisTimeout = 2 * time.Second

var windowScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {n, redis.call("PTTL", KEYS[1])}
`)

// Redis shares counters across replicas and falls back to Fallback
// when redis is missing or failing
type Redis struct {
	Client   redis.Scripter
	Window   time.Duration
	Prefix   string
	Fallback Limiter

	log logger.Logger
}

// NewRedis returns a Redis limiter with an in-memory fallback
func NewRedis(client redis.Scripter, w time.Duration) *Redis {
	if w <= 0 {
		w = defaultWindow
	}
	return &Redis{
		Client:   client,
		Window:   w,
		Prefix:   "minishop:rl:",
		Fallback: NewMemory(w),
		log:      *logger.Named("ratelimit"),
	}
}

// Allow counts one hit in redis
func (l *Redis) Allow(ctx context.Context, key string, limit int) Decision {
	limit = max(limit, 1)
	if l.Client == nil {
		return l.fallback(ctx, key, limit)
	}

	rctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()
	res, err := windowScript.Run(rctx, l.Client, []string{l.Prefix + key}, l.Window.Milliseconds()).Result()
	if err != nil {
		l.log.Warn().Err(err).Msg("redis limiter failed, using fallback")
		return l.fallback(ctx, key, limit)
	}
	vals, ok := res.([]any)
	if !ok || len(vals) < 2 {
		l.log.Warn().Interface("result", res).Msg("redis limiter unexpected result, using fallback")
		return l.fallback(ctx, key, limit)
	}
	count, _ := vals[0].(int64)
	ttl, _ := vals[1].(int64)
	if ttl < 0 {
		ttl = l.Window.Milliseconds()
	}
	return decide(int(count), limit, time.Now().UTC().Add(time.Duration(ttl)*time.Millisecond))
}

// fallback admits the hit when no fallback limiter is configured
func (l *Redis) fallback(ctx context.Context, key string, limit int) Decision {
	if l.Fallback != nil {
		return l.Fallback.Allow(ctx, key, limit)
	}
	return Decision{Allowed: true, Limit: limit, Remaining: limit, ResetAt: time.Now().UTC().Add(l.Window)}
}
