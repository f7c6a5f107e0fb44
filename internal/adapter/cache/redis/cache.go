// Package redis keeps the instance directory cache in Redis, one key per region.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/photosphere/connect-admin-console/internal/domain/instance"
)

// Cache implements instance.DirectoryCache with keys "<prefix>:<region>"
// holding the JSON encoded records of that region.
type Cache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

var _ instance.DirectoryCache = (*Cache)(nil)

// NewCache creates a Redis backed cache. A zero ttl keeps entries until the next write.
func NewCache(client redis.UniversalClient, prefix string, ttl time.Duration) *Cache {
	return &Cache{client: client, prefix: prefix, ttl: ttl}
}

// NewUniversalClient parses a redis:// URL into a client.
func NewUniversalClient(redisURL string, password string, db int) (redis.UniversalClient, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("cant parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	if db != 0 {
		opts.DB = db
	}
	return redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        []string{opts.Addr},
		DB:           opts.DB,
		Username:     opts.Username,
		Password:     opts.Password,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	}), nil
}

func (c *Cache) Read(ctx context.Context, regions []string) ([]instance.Record, error) {
	if len(regions) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(regions))
	for _, region := range regions {
		keys = append(keys, c.key(region))
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis read instance cache: %w", err)
	}

	var out []instance.Record
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var records []instance.Record
		if err := json.Unmarshal([]byte(raw), &records); err != nil {
			return nil, fmt.Errorf("decode cached instances for %s: %w", regions[i], err)
		}
		out = append(out, instance.FilterByRegions(records, regions[i:i+1])...)
	}
	return out, nil
}

func (c *Cache) Write(ctx context.Context, records []instance.Record) error {
	existing, err := c.client.Keys(ctx, c.prefix+":*").Result()
	if err != nil {
		return fmt.Errorf("redis list instance cache keys: %w", err)
	}

	grouped := instance.GroupByRegion(records)
	encoded := make(map[string][]byte, len(grouped))
	for region, recs := range grouped {
		b, err := json.Marshal(recs)
		if err != nil {
			return fmt.Errorf("encode instances for %s: %w", region, err)
		}
		encoded[c.key(region)] = b
	}

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(existing) > 0 {
			pipe.Del(ctx, existing...)
		}
		for key, b := range encoded {
			pipe.Set(ctx, key, b, c.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis write instance cache: %w", err)
	}
	return nil
}

func (c *Cache) key(region string) string {
	return c.prefix + ":" + region
}
