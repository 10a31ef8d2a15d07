package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

var (
	ErrInvalidKey = errors.New("スナップショットのキーが不正です")

	validKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// Store はキーごとに1つのJSONファイルを書くスナップショットストア
// 書き込みは一時ファイル経由のリネームで行い、途中で落ちても前回の内容が残る
type Store struct {
	dir string
	mu  sync.Mutex
}

// New はディレクトリを作成してStoreを返す
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("スナップショットディレクトリの作成に失敗: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Persist(ctx context.Context, key string, collection any) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return fmt.Errorf("スナップショットのエンコードに失敗: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("一時ファイルの作成に失敗: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("スナップショットの書き込みに失敗: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("スナップショットの書き込みに失敗: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("スナップショットの書き込みに失敗: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("スナップショットの置き換えに失敗: %w", err)
	}
	return nil
}

func (s *Store) Restore(ctx context.Context, key string, dst any) (bool, error) {
	path, err := s.path(key)
	if err != nil {
		return false, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("スナップショットの読み込みに失敗: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("スナップショットのデコードに失敗 (%s): %w", key, err)
	}
	return true, nil
}

func (s *Store) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}
