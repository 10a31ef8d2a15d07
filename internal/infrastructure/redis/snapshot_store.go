package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// SnapshotStore はコレクションをJSON文字列として <prefix>:<key> に保存する
// 有効期限は設定しない
type SnapshotStore struct {
	client redis.Cmdable
	prefix string
}

func NewSnapshotStore(client redis.Cmdable, prefix string) *SnapshotStore {
	return &SnapshotStore{client: client, prefix: prefix}
}

func (s *SnapshotStore) Persist(ctx context.Context, key string, collection any) error {
	data, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("スナップショットのエンコードに失敗: %w", err)
	}
	if err := s.client.Set(ctx, s.key(key), data, 0).Err(); err != nil {
		return fmt.Errorf("スナップショットの保存に失敗: %w", err)
	}
	return nil
}

func (s *SnapshotStore) Restore(ctx context.Context, key string, dst any) (bool, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("スナップショットの取得に失敗: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("スナップショットのデコードに失敗 (%s): %w", key, err)
	}
	return true, nil
}

func (s *SnapshotStore) key(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}
