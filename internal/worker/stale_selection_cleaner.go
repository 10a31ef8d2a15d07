package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/carnival-corner/internal/pkg/logger"
)

// SelectionReleaser は放置された座席選択を解放するインターフェース
type SelectionReleaser interface {
	ReleaseStaleSelection(ctx context.Context, idleAfter time.Duration) (int, error)
}

// StaleSelectionCleaner は一定時間操作のない座席選択を定期的に解放するワーカー
type StaleSelectionCleaner struct {
	releaser  SelectionReleaser
	interval  time.Duration
	idleAfter time.Duration
	stopCh    chan struct{}
	doneCh    chan struct{}
}

// NewStaleSelectionCleaner は新しいクリーナーを作成
func NewStaleSelectionCleaner(r SelectionReleaser, interval, idleAfter time.Duration) *StaleSelectionCleaner {
	return &StaleSelectionCleaner{
		releaser:  r,
		interval:  interval,
		idleAfter: idleAfter,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start はクリーナーを開始する（ブロックする）
func (c *StaleSelectionCleaner) Start(ctx context.Context) {
	logger.Info("座席選択クリーナー開始",
		zap.Duration("interval", c.interval),
		zap.Duration("idle_after", c.idleAfter),
	)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	defer close(c.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.Info("座席選択クリーナー停止（コンテキストキャンセル）")
			return
		case <-c.stopCh:
			logger.Info("座席選択クリーナー停止（シグナル受信）")
			return
		case <-ticker.C:
			c.cleanup(ctx)
		}
	}
}

// Stop はクリーナーを停止し、ループの終了を待つ
func (c *StaleSelectionCleaner) Stop() {
	close(c.stopCh)
	<-c.doneCh
}

func (c *StaleSelectionCleaner) cleanup(ctx context.Context) {
	log := logger.Get()

	count, err := c.releaser.ReleaseStaleSelection(ctx, c.idleAfter)
	if err != nil {
		log.Error("座席選択の解放に失敗", zap.Error(err))
		return
	}

	if count > 0 {
		log.Info("放置された座席選択を解放", zap.Int("seats", count))
	} else {
		log.Debug("解放対象の座席選択なし")
	}
}
