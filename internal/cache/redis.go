package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// mgetBatch bounds the keys sent in a single MGET
const mgetBatch = 100

// Redis is a Backend on a shared Redis server. Every key is namespaced so
// several deployments can share one database.
type Redis struct {
	client    *redis.Client
	namespace string
}

// OpenRedis connects to url (redis://[:password@]host:port/db) and checks the
// connection before returning
func OpenRedis(ctx context.Context, url, namespace string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.PoolSize = 10
	opts.MinIdleConns = 2
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 2 * time.Second
	opts.WriteTimeout = 2 * time.Second

	rc := &Redis{client: redis.NewClient(opts), namespace: namespace}
	if err := rc.Ping(ctx); err != nil {
		rc.client.Close()
		return nil, err
	}
	return rc, nil
}

func (r *Redis) ns(key string) string {
	return r.namespace + key
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, r.ns(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, r.ns(key), value, ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.ns(key)).Err()
}

func (r *Redis) GetMany(ctx context.Context, keys []string) (map[string][]byte, error) {
	found := make(map[string][]byte, len(keys))
	for start := 0; start < len(keys); start += mgetBatch {
		batch := keys[start:min(start+mgetBatch, len(keys))]
		nsKeys := make([]string, len(batch))
		for i, k := range batch {
			nsKeys[i] = r.ns(k)
		}

		values, err := r.client.MGet(ctx, nsKeys...).Result()
		if err != nil {
			return nil, fmt.Errorf("redis mget: %w", err)
		}
		for i, v := range values {
			// Missing keys come back as nil
			if s, ok := v.(string); ok {
				found[batch[i]] = []byte(s)
			}
		}
	}
	return found, nil
}

func (r *Redis) SetMany(ctx context.Context, items map[string][]byte, ttl time.Duration) error {
	if len(items) == 0 {
		return nil
	}
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range items {
			pipe.Set(ctx, r.ns(k), v, ttl)
		}
		return nil
	})
	return err
}

func (r *Redis) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
