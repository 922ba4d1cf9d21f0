package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Guyuepp/blog-threads/domain"
	"github.com/Guyuepp/blog-threads/internal/repository/cache"
)

const (
	KeyUserDisplayInfo = "identity:user:%s"

	// staleFactor 物理过期 = 逻辑过期 * staleFactor
	staleFactor = 6
)

type displayInfoCache struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

var _ domain.DisplayInfoCache = (*displayInfoCache)(nil)

// NewDisplayInfoCache keeps entries fresh for ttl and serves them as stale
// for a while longer.
func NewDisplayInfoCache(client *redis.Client, ttl time.Duration) *displayInfoCache {
	return &displayInfoCache{
		client: client,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (c *displayInfoCache) Get(ctx context.Context, userID string) (domain.DisplayInfo, bool, error) {
	data, err := c.client.Get(ctx, fmt.Sprintf(KeyUserDisplayInfo, userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.DisplayInfo{}, false, domain.ErrCacheMiss
	} else if err != nil {
		return domain.DisplayInfo{}, false, err
	}

	var entry cache.Entry[domain.DisplayInfo]
	if err = json.Unmarshal(data, &entry); err != nil {
		return domain.DisplayInfo{}, false, err
	}
	return entry.Data, entry.IsLogicalExpired(c.now()), nil
}

func (c *displayInfoCache) Set(ctx context.Context, userID string, info domain.DisplayInfo) error {
	data, err := json.Marshal(cache.NewEntry(info, c.ttl, c.now()))
	if err != nil {
		return err
	}
	return c.client.Set(ctx, fmt.Sprintf(KeyUserDisplayInfo, userID), data, c.ttl*staleFactor).Err()
}

func (c *displayInfoCache) Delete(ctx context.Context, userID string) error {
	return c.client.Del(ctx, fmt.Sprintf(KeyUserDisplayInfo, userID)).Err()
}
