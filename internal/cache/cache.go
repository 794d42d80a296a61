package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	snapshotPrefix = "snap:"
	digestPrefix   = "digest:"

	// Snapshots and digest markers describe a single day; 48h covers
	// timezone skew around midnight.
	snapshotTTL = 48 * time.Hour
	digestTTL   = 48 * time.Hour
)

type Cache struct {
	Client *redis.Client
}

func New(redisURL string) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Cache{Client: client}, nil
}

func (c *Cache) Close() error {
	return c.Client.Close()
}

// PutSnapshot stores the raw snapshot document for a region, replacing
// whatever was there.
func (c *Cache) PutSnapshot(ctx context.Context, region string, raw []byte) error {
	return c.Client.Set(ctx, snapshotPrefix+region, raw, snapshotTTL).Err()
}

// GetSnapshot returns the cached snapshot document for a region, or nil
// when none is cached.
func (c *Cache) GetSnapshot(ctx context.Context, region string) ([]byte, error) {
	raw, err := c.Client.Get(ctx, snapshotPrefix+region).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// MarkDigestSent records that a digest for the given schedule stamp went
// out to a chat. It returns true when this is the first send, false when
// an identical digest was already delivered.
func (c *Cache) MarkDigestSent(ctx context.Context, chatID int64, region, group, stamp string) (bool, error) {
	key := fmt.Sprintf("%s%d:%s:%s:%s", digestPrefix, chatID, region, group, stamp)
	return c.Client.SetNX(ctx, key, 1, digestTTL).Result()
}
