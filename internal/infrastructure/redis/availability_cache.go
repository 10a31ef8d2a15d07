package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("キャッシュが見つかりません")

// AvailabilityCache はイベントごとの空席数をキャッシュする
type AvailabilityCache struct {
	client redis.Cmdable
}

func NewAvailabilityCache(client redis.Cmdable) *AvailabilityCache {
	return &AvailabilityCache{client: client}
}

// GetAvailableCount はキャッシュから空席数を取得する
func (c *AvailabilityCache) GetAvailableCount(ctx context.Context, eventID int) (int, error) {
	val, err := c.client.Get(ctx, availableCountKey(eventID)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrCacheMiss
		}
		return 0, fmt.Errorf("キャッシュ取得に失敗: %w", err)
	}
	return val, nil
}

func (c *AvailabilityCache) SetAvailableCount(ctx context.Context, eventID, count int, ttl time.Duration) error {
	if err := c.client.Set(ctx, availableCountKey(eventID), count, ttl).Err(); err != nil {
		return fmt.Errorf("キャッシュ保存に失敗: %w", err)
	}
	return nil
}

// Invalidate は予約確定やイベント更新の後に呼ぶ
func (c *AvailabilityCache) Invalidate(ctx context.Context, eventID int) error {
	if err := c.client.Del(ctx, availableCountKey(eventID)).Err(); err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}

func availableCountKey(eventID int) string {
	return fmt.Sprintf("seats:available:%d", eventID)
}
