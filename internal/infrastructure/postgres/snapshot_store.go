package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SnapshotStore はコレクションを snapshots テーブルにJSONBで保存する
type SnapshotStore struct {
	db *sqlx.DB
}

func NewSnapshotStore(db *sqlx.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Persist はキー単位でUPSERTする（コレクション全体の上書き）
func (s *SnapshotStore) Persist(ctx context.Context, key string, collection any) error {
	payload, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("スナップショットのエンコードに失敗: %w", err)
	}
	query := `
		INSERT INTO snapshots (key, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()
	`
	// lib/pq は []byte を bytea として送るため文字列で渡す
	if _, err := s.db.ExecContext(ctx, query, key, string(payload)); err != nil {
		return fmt.Errorf("スナップショットの保存に失敗: %w", err)
	}
	return nil
}

func (s *SnapshotStore) Restore(ctx context.Context, key string, dst any) (bool, error) {
	var payload []byte
	err := s.db.GetContext(ctx, &payload, `SELECT payload FROM snapshots WHERE key = $1`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("スナップショットの取得に失敗: %w", err)
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return false, fmt.Errorf("スナップショットのデコードに失敗 (%s): %w", key, err)
	}
	return true, nil
}
