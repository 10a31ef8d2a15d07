package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
)

// Source はデータセットの取得元
type Source interface {
	// Fetch は name（例: "events.json"）の生データを返す
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// DirSource は同梱の data ディレクトリから読み込む
type DirSource struct {
	Dir string
}

func (s DirSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.Dir, name))
	if err != nil {
		return nil, fmt.Errorf("%s の読み込みに失敗: %w", name, err)
	}
	return data, nil
}

// maxDatasetSize はHTTP取得時に読み込む上限
const maxDatasetSize = 10 << 20

// HTTPSource は静的ファイルサーバーから取得する
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

func (s HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	endpoint, err := url.JoinPath(s.BaseURL, name)
	if err != nil {
		return nil, fmt.Errorf("URLの組み立てに失敗: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエスト作成に失敗: %w", err)
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s の取得に失敗: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s の取得に失敗: status %d", name, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDatasetSize))
	if err != nil {
		return nil, fmt.Errorf("%s の読み込みに失敗: %w", name, err)
	}
	return data, nil
}
