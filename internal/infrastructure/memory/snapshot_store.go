package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// SnapshotStore はJSONをメモリ上に保持するスナップショットストア
// プロセス終了で消えるため、テストや一時的な起動で使う
type SnapshotStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{blobs: make(map[string][]byte)}
}

func (s *SnapshotStore) Persist(ctx context.Context, key string, collection any) error {
	data, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("スナップショットのエンコードに失敗: %w", err)
	}
	s.mu.Lock()
	s.blobs[key] = data
	s.mu.Unlock()
	return nil
}

func (s *SnapshotStore) Restore(ctx context.Context, key string, dst any) (bool, error) {
	s.mu.RLock()
	data, ok := s.blobs[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("スナップショットのデコードに失敗: %w", err)
	}
	return true, nil
}
