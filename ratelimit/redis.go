package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis shares its counters between processes through a Redis server.
type Redis struct {
	client *redis.Client
	limit  int
	period time.Duration
	prefix string
}

// RedisOptions describes the Redis connection.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedis connects and pings the server.
func NewRedis(ctx context.Context, opts RedisOptions, limit int, period time.Duration) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return &Redis{client: client, limit: limit, period: period, prefix: "dinedash:rate:"}, nil
}

// Allow increments the key's counter. The expiry is set whenever the key has
// none, not only on the first attempt, so a failed EXPIRE heals on the next
// call instead of locking the key out forever.
func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	k := r.prefix + key
	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	if _, err := r.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, k)
		ttl = p.TTL(ctx, k)
		return nil
	}); err != nil {
		return false, err
	}
	if ttl.Val() < 0 {
		if err := r.client.Expire(ctx, k, r.period).Err(); err != nil {
			return false, err
		}
	}
	return incr.Val() <= int64(r.limit), nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
