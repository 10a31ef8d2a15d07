package application

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/carnival-corner/internal/domain/booking"
	"github.com/sanosuguru/carnival-corner/internal/domain/event"
	"github.com/sanosuguru/carnival-corner/internal/domain/persistence"
	"github.com/sanosuguru/carnival-corner/internal/domain/vendor"
	"github.com/sanosuguru/carnival-corner/internal/pkg/logger"
	"github.com/sanosuguru/carnival-corner/internal/pkg/metrics"
)

// SnapshotWriter はコレクション全体をストアへ書き出す
// 保存の失敗はログとメトリクスに残すだけで、呼び出し元の操作は失敗させない
// nil の SnapshotWriter は何もしない
type SnapshotWriter struct {
	store   persistence.Store
	backend string
	metrics *metrics.Metrics

	// キーごとに一覧の取得から保存までを直列化する
	// 古い一覧が新しい一覧の後に書き込まれることはない
	keyLocks map[string]*sync.Mutex
}

// NewSnapshotWriter は SnapshotWriter を作成する。backend はメトリクスのラベルに使う
func NewSnapshotWriter(store persistence.Store, backend string, m *metrics.Metrics) *SnapshotWriter {
	return &SnapshotWriter{
		store:   store,
		backend: backend,
		metrics: m,
		keyLocks: map[string]*sync.Mutex{
			persistence.KeyEvents:   {},
			persistence.KeyBookings: {},
			persistence.KeyVendors:  {},
		},
	}
}

func (w *SnapshotWriter) lock(key string) func() {
	mu := w.keyLocks[key]
	mu.Lock()
	return mu.Unlock
}

// SaveEvents は全イベントを保存する
func (w *SnapshotWriter) SaveEvents(ctx context.Context, repo event.Repository) {
	if w == nil {
		return
	}
	defer w.lock(persistence.KeyEvents)()

	events, err := repo.List(ctx, event.Filter{})
	if err != nil {
		logger.Error("イベント一覧の取得に失敗したため保存をスキップ", zap.Error(err))
		return
	}
	w.persist(ctx, persistence.KeyEvents, events)
}

// SaveBookings は予約台帳を保存する
func (w *SnapshotWriter) SaveBookings(ctx context.Context, repo booking.Repository) {
	if w == nil {
		return
	}
	defer w.lock(persistence.KeyBookings)()

	bookings, err := repo.List(ctx)
	if err != nil {
		logger.Error("予約一覧の取得に失敗したため保存をスキップ", zap.Error(err))
		return
	}
	w.persist(ctx, persistence.KeyBookings, bookings)
}

// SaveVendors はベンダー申請台帳を保存する
func (w *SnapshotWriter) SaveVendors(ctx context.Context, repo vendor.Repository) {
	if w == nil {
		return
	}
	defer w.lock(persistence.KeyVendors)()

	applications, err := repo.List(ctx)
	if err != nil {
		logger.Error("ベンダー申請一覧の取得に失敗したため保存をスキップ", zap.Error(err))
		return
	}
	w.persist(ctx, persistence.KeyVendors, applications)
}

// RestoreEvent は保存済みの events スナップショットから1件を読み込む
// 他インスタンスが確定した予約を取り込むために使う
func (w *SnapshotWriter) RestoreEvent(ctx context.Context, id int) (*event.Event, bool) {
	if w == nil {
		return nil, false
	}
	defer w.lock(persistence.KeyEvents)()

	var events []*event.Event
	start := time.Now()
	found, err := w.store.Restore(ctx, persistence.KeyEvents, &events)
	w.observe("restore", start, err)
	if err != nil {
		logger.FromContext(ctx).Warn("共有スナップショットの読み込みに失敗",
			zap.Int("event_id", id), zap.String("backend", w.backend), zap.Error(err))
		return nil, false
	}
	if !found {
		return nil, false
	}
	for _, e := range events {
		if e != nil && e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// Restore はスナップショットを読み込む。読み込みの失敗は found=false として扱う
func (w *SnapshotWriter) Restore(ctx context.Context, key string, dst any) bool {
	if w == nil {
		return false
	}
	start := time.Now()
	found, err := w.store.Restore(ctx, key, dst)
	w.observe("restore", start, err)
	if err != nil {
		logger.Warn("スナップショットの復元に失敗したため初期データを使用します",
			zap.String("key", key), zap.String("backend", w.backend), zap.Error(err))
		return false
	}
	return found
}

func (w *SnapshotWriter) persist(ctx context.Context, key string, collection any) {
	start := time.Now()
	err := w.store.Persist(ctx, key, collection)
	w.observe("persist", start, err)
	if err != nil {
		logger.FromContext(ctx).Error("スナップショットの保存に失敗",
			zap.String("key", key), zap.String("backend", w.backend), zap.Error(err))
	}
}

func (w *SnapshotWriter) observe(operation string, start time.Time, err error) {
	if w.metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failed"
	}
	w.metrics.StoreOperationsTotal.WithLabelValues(w.backend, operation, status).Inc()
	w.metrics.StoreOperationDuration.WithLabelValues(w.backend, operation).Observe(time.Since(start).Seconds())
}
