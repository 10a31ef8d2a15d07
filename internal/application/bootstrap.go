package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sanosuguru/carnival-corner/internal/domain/booking"
	"github.com/sanosuguru/carnival-corner/internal/domain/event"
	"github.com/sanosuguru/carnival-corner/internal/domain/location"
	"github.com/sanosuguru/carnival-corner/internal/domain/persistence"
	"github.com/sanosuguru/carnival-corner/internal/domain/vendor"
	"github.com/sanosuguru/carnival-corner/internal/infrastructure/loader"
	"github.com/sanosuguru/carnival-corner/internal/pkg/logger"
)

// DatasetLoader は初期データセットの読み込み
type DatasetLoader interface {
	Load(ctx context.Context) (*loader.Dataset, error)
}

// Repositories は初期化対象のリポジトリ
type Repositories struct {
	Events    event.Repository
	Locations location.Repository
	Bookings  booking.Repository
	Vendors   vendor.Repository
}

// BootstrapResult は初期化の結果
type BootstrapResult struct {
	// LoadErr は初期データの読み込みに失敗した場合の *loader.LoadError（その場合も起動は続ける）
	LoadErr         error
	RestoredKeys    []string
	DroppedEventIDs []int
}

// Bootstrap は初期データを読み込み、保存済みスナップショットで上書きしてからリポジトリに投入する
// スナップショットが存在するコレクションは初期データをマージせずにそのまま置き換える
func Bootstrap(ctx context.Context, l DatasetLoader, snapshots *SnapshotWriter, repos Repositories) (*BootstrapResult, error) {
	res := &BootstrapResult{}

	ds, err := l.Load(ctx)
	if err != nil {
		res.LoadErr = err
	}
	if ds == nil {
		ds = loader.Empty()
	}

	var events []*event.Event
	if snapshots.Restore(ctx, persistence.KeyEvents, &events) {
		ds.Events = events
		res.RestoredKeys = append(res.RestoredKeys, persistence.KeyEvents)
	}
	var bookings []*booking.Booking
	if snapshots.Restore(ctx, persistence.KeyBookings, &bookings) {
		ds.Bookings = bookings
		res.RestoredKeys = append(res.RestoredKeys, persistence.KeyBookings)
	}
	var applications []*vendor.Application
	if snapshots.Restore(ctx, persistence.KeyVendors, &applications) {
		ds.Vendors = applications
		res.RestoredKeys = append(res.RestoredKeys, persistence.KeyVendors)
	}

	valid := make([]*event.Event, 0, len(ds.Events))
	for _, e := range ds.Events {
		if e == nil {
			continue
		}
		if e.Seating.BookedSeats == nil {
			e.Seating.BookedSeats = []string{}
		}
		if err := e.Validate(); err != nil {
			logger.Warn("不正なイベントを除外", zap.Int("event_id", e.ID), zap.Error(err))
			res.DroppedEventIDs = append(res.DroppedEventIDs, e.ID)
			continue
		}
		valid = append(valid, e)
	}

	if err := repos.Events.Replace(ctx, valid); err != nil {
		return nil, fmt.Errorf("イベントの初期化に失敗: %w", err)
	}
	if err := repos.Locations.Replace(ctx, ds.Locations); err != nil {
		return nil, fmt.Errorf("ロケーションの初期化に失敗: %w", err)
	}
	if err := repos.Bookings.Replace(ctx, nonNil(ds.Bookings)); err != nil {
		return nil, fmt.Errorf("予約の初期化に失敗: %w", err)
	}
	if err := repos.Vendors.Replace(ctx, nonNil(ds.Vendors)); err != nil {
		return nil, fmt.Errorf("ベンダー申請の初期化に失敗: %w", err)
	}

	logger.Info("インベントリを初期化",
		zap.Int("events", len(valid)),
		zap.Int("bookings", len(ds.Bookings)),
		zap.Int("vendors", len(ds.Vendors)),
		zap.Strings("restored", res.RestoredKeys),
		zap.Bool("load_failed", res.LoadErr != nil),
	)
	return res, nil
}

func nonNil[T any](items []*T) []*T {
	out := make([]*T, 0, len(items))
	for _, it := range items {
		if it != nil {
			out = append(out, it)
		}
	}
	return out
}
