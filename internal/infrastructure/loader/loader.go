package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sanosuguru/carnival-corner/internal/domain/booking"
	"github.com/sanosuguru/carnival-corner/internal/domain/event"
	"github.com/sanosuguru/carnival-corner/internal/domain/location"
	"github.com/sanosuguru/carnival-corner/internal/domain/vendor"
	"github.com/sanosuguru/carnival-corner/internal/pkg/logger"
	"github.com/sanosuguru/carnival-corner/internal/pkg/metrics"
)

// データセット名
const (
	DatasetEvents    = "events"
	DatasetLocations = "locations"
	DatasetBookings  = "bookings"
	DatasetVendors   = "vendors"
)

// Dataset は初期化に使う4つのコレクション
type Dataset struct {
	Events    []*event.Event
	Locations []*location.Location
	Bookings  []*booking.Booking
	Vendors   []*vendor.Application
}

// DatasetError は1つのデータセットの取得・解析エラー
type DatasetError struct {
	Dataset string
	Err     error
}

func (e DatasetError) Error() string {
	return e.Dataset + ": " + e.Err.Error()
}

func (e DatasetError) Unwrap() error {
	return e.Err
}

// LoadError は1つ以上のデータセットの読み込みに失敗したことを表す
// この場合 Load は部分的な結果を返さず、空のコレクションを返す
type LoadError struct {
	Failures []DatasetError
}

func (e *LoadError) Error() string {
	names := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		names[i] = f.Dataset
	}
	return fmt.Sprintf("データセットの読み込みに失敗しました: %s", strings.Join(names, ", "))
}

func (e *LoadError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}

// Failed はデータセットが失敗に含まれるかを返す
func (e *LoadError) Failed(dataset string) bool {
	for _, f := range e.Failures {
		if f.Dataset == dataset {
			return true
		}
	}
	return false
}

// Loader は4つのデータセットを並行に取得する
type Loader struct {
	source  Source
	timeout time.Duration
	metrics *metrics.Metrics
}

// New はLoaderを作成する。timeout が0なら制限しない。metrics は nil 可
func New(source Source, timeout time.Duration, m *metrics.Metrics) *Loader {
	return &Loader{source: source, timeout: timeout, metrics: m}
}

// Load は全データセットの取得を待ってから結果を返す
// 1つでも失敗した場合は空の Dataset と *LoadError を返す
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	var ds Dataset
	targets := []struct {
		name string
		dst  any
	}{
		{DatasetEvents, &ds.Events},
		{DatasetLocations, &ds.Locations},
		{DatasetBookings, &ds.Bookings},
		{DatasetVendors, &ds.Vendors},
	}

	// 1つの失敗で他の取得を中断しないよう WithContext は使わない
	var g errgroup.Group
	errs := make([]error, len(targets))
	for i, t := range targets {
		g.Go(func() error {
			errs[i] = l.fetch(ctx, t.name, t.dst)
			return errs[i]
		})
	}
	_ = g.Wait()

	var loadErr LoadError
	for i, err := range errs {
		if err != nil {
			loadErr.Failures = append(loadErr.Failures, DatasetError{Dataset: targets[i].name, Err: err})
		}
	}
	if len(loadErr.Failures) > 0 {
		logger.Error("データセットの読み込みに失敗したため空の状態で起動します", zap.Error(&loadErr))
		return Empty(), &loadErr
	}

	ds.normalize()
	logger.Info("データセットを読み込みました",
		zap.Int("events", len(ds.Events)),
		zap.Int("locations", len(ds.Locations)),
		zap.Int("bookings", len(ds.Bookings)),
		zap.Int("vendors", len(ds.Vendors)),
	)
	return &ds, nil
}

func (l *Loader) fetch(ctx context.Context, name string, dst any) error {
	err := func() error {
		raw, err := l.source.Fetch(ctx, name+".json")
		if err != nil {
			return err
		}
		return Decode(raw, dst)
	}()

	status := "success"
	if err != nil {
		status = "failed"
		logger.Warn("データセット取得エラー", zap.String("dataset", name), zap.Error(err))
	}
	if l.metrics != nil {
		l.metrics.DatasetLoadsTotal.WithLabelValues(name, status).Inc()
	}
	return err
}

// Decode はコメント・末尾カンマを許容してJSONを読み込む
func Decode(raw []byte, dst any) error {
	if err := json.Unmarshal(jsonc.ToJSON(raw), dst); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return fmt.Errorf("JSONの構文エラー (offset %d): %w", syntaxErr.Offset, err)
		}
		return fmt.Errorf("JSONの解析に失敗: %w", err)
	}
	return nil
}

// Empty は空のコレクションを持つ Dataset を返す
func Empty() *Dataset {
	ds := &Dataset{}
	ds.normalize()
	return ds
}

// normalize は null のコレクションを空スライスにそろえる（null のイベントは除外）
func (d *Dataset) normalize() {
	if d.Events == nil {
		d.Events = []*event.Event{}
	}
	if d.Locations == nil {
		d.Locations = []*location.Location{}
	}
	if d.Bookings == nil {
		d.Bookings = []*booking.Booking{}
	}
	if d.Vendors == nil {
		d.Vendors = []*vendor.Application{}
	}
	d.Events = slices.DeleteFunc(d.Events, func(e *event.Event) bool { return e == nil })
	for _, e := range d.Events {
		if e.Seating.BookedSeats == nil {
			e.Seating.BookedSeats = []string{}
		}
	}
}
