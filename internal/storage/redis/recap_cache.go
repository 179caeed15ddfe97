package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chronicle-server/internal/interfaces"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Compile-time check to ensure implementation satisfies the interface.
var _ interfaces.RecapCache = (*recapCache)(nil)

// recapCache keeps generated recaps in Redis keyed by character. Entries are
// written with a TTL and explicitly invalidated whenever the character's
// scene chain changes.
type recapCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRecapCache creates a Redis-backed RecapCache.
func NewRecapCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) interfaces.RecapCache {
	return &recapCache{
		client: client,
		ttl:    ttl,
		logger: logger.Named("RedisRecapCache"),
	}
}

func recapKey(characterID string) string {
	return fmt.Sprintf("recap:%s", characterID)
}

func (c *recapCache) Get(ctx context.Context, characterID string) (string, error) {
	recap, err := c.client.Get(ctx, recapKey(characterID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		c.logger.Warn("Failed to read recap from cache", zap.Error(err), zap.String("characterID", characterID))
		return "", fmt.Errorf("ошибка чтения рекапа из кэша: %w", err)
	}
	return recap, nil
}

func (c *recapCache) Set(ctx context.Context, characterID, recap string) error {
	if err := c.client.Set(ctx, recapKey(characterID), recap, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to store recap in cache", zap.Error(err), zap.String("characterID", characterID))
		return fmt.Errorf("ошибка записи рекапа в кэш: %w", err)
	}
	return nil
}

func (c *recapCache) Invalidate(ctx context.Context, characterID string) error {
	if err := c.client.Del(ctx, recapKey(characterID)).Err(); err != nil {
		c.logger.Warn("Failed to invalidate recap cache", zap.Error(err), zap.String("characterID", characterID))
		return fmt.Errorf("ошибка инвалидации кэша рекапа: %w", err)
	}
	return nil
}
