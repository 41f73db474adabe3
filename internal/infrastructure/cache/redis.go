package cache

import (
	"context"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/hiroba-develop/GrantsDB-Demo/internal/config"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/monitoring/logging"
	"github.com/hiroba-develop/GrantsDB-Demo/pkg/errors"
)

// redisCache adapts a go-redis client to the Cache contract.  Keys carry a
// deployment prefix and TTLs get +/- 10% jitter so hot keys do not expire in
// lockstep.
type redisCache struct {
	client     *redis.Client
	log        logging.Logger
	prefix     string
	defaultTTL time.Duration
	serializer Serializer
	group      singleflight.Group
}

// RedisOption configures the Redis-backed cache.
type RedisOption func(*redisCache)

// WithRedisPrefix overrides the key prefix.
func WithRedisPrefix(prefix string) RedisOption {
	return func(c *redisCache) { c.prefix = prefix }
}

// WithRedisDefaultTTL overrides the TTL applied when Set receives zero.
func WithRedisDefaultTTL(ttl time.Duration) RedisOption {
	return func(c *redisCache) { c.defaultTTL = ttl }
}

// WithRedisSerializer overrides the JSON serializer.
func WithRedisSerializer(s Serializer) RedisOption {
	return func(c *redisCache) { c.serializer = s }
}

// NewRedisCache wraps client in the Cache contract.
func NewRedisCache(client *redis.Client, log logging.Logger, opts ...RedisOption) Cache {
	c := &redisCache{
		client:     client,
		log:        log,
		prefix:     "grantsdb:",
		defaultTTL: 5 * time.Minute,
		serializer: NewJSONSerializer(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewRedisClient builds a go-redis client from configuration.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
}

func (c *redisCache) fullKey(key string) string { return c.prefix + key }

func (c *redisCache) jitterTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return ttl
	}
	jitter := float64(ttl) * 0.1 * (rand.Float64()*2 - 1)
	return ttl + time.Duration(jitter)
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, c.fullKey(key)).Bytes()
	if err == redis.Nil {
		return ErrCacheMiss
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "cache get failed")
	}
	if err := c.serializer.Unmarshal(data, dest); err != nil {
		return ErrSerializationFailed
	}
	return nil
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	data, err := c.serializer.Marshal(value)
	if err != nil {
		return ErrSerializationFailed
	}
	if err := c.client.Set(ctx, c.fullKey(key), data, c.jitterTTL(ttl)).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "cache set failed")
	}
	return nil
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.fullKey(k)
	}
	if err := c.client.Del(ctx, full...).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "cache delete failed")
	}
	return nil
}

func (c *redisCache) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, loader func(ctx context.Context) (interface{}, error)) error {
	if err := c.Get(ctx, key, dest); err == nil {
		return nil
	} else if err != ErrCacheMiss {
		return err
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		if setErr := c.Set(ctx, key, loaded, ttl); setErr != nil {
			c.log.Warn("cache backfill failed", logging.String("key", key), logging.Err(setErr))
		}
		return loaded, nil
	})
	if err != nil {
		return err
	}

	data, err := c.serializer.Marshal(v)
	if err != nil {
		return ErrSerializationFailed
	}
	if err := c.serializer.Unmarshal(data, dest); err != nil {
		return ErrSerializationFailed
	}
	return nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "redis unreachable")
	}
	return nil
}

// New builds the cache backend selected by configuration.
func New(cfg config.CacheConfig, log logging.Logger) Cache {
	if cfg.Backend == config.CacheBackendRedis {
		return NewRedisCache(NewRedisClient(cfg.Redis), log,
			WithRedisPrefix(cfg.Redis.KeyPrefix),
			WithRedisDefaultTTL(cfg.DefaultTTL))
	}
	return NewMemoryCache(WithMemoryDefaultTTL(cfg.DefaultTTL))
}
