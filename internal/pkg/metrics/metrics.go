package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics はアプリケーションのメトリクスを管理する
type Metrics struct {
	// HTTPリクエストの総数（method, path, status_code）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPリクエストのレイテンシ（method, path）
	HTTPRequestDuration *prometheus.HistogramVec

	// 処理中のHTTPリクエスト数
	HTTPRequestsInFlight prometheus.Gauge

	// 予約確定の試行数（status: success, invalid, conflict, lock_failed, error）
	BookingsTotal *prometheus.CounterVec

	// 座席選択トグルの結果（result: selected, deselected, rejected）
	SeatTogglesTotal *prometheus.CounterVec

	// ベンダー申請の状態遷移（status: pending, approved）
	VendorApplicationsTotal *prometheus.CounterVec

	// データセット読み込み（dataset, status: success, failed）
	DatasetLoadsTotal *prometheus.CounterVec

	// スナップショットストアの操作（backend, operation: persist/restore, status）
	StoreOperationsTotal *prometheus.CounterVec

	// スナップショットストアの操作時間（backend, operation）
	StoreOperationDuration *prometheus.HistogramVec

	// 分散ロックの操作時間（operation: acquire/release, status: success/failed）
	DistributedLockDuration *prometheus.HistogramVec

	// 予約済み座席数（event_id）
	BookedSeats *prometheus.GaugeVec
}

// New は新しいMetricsインスタンスを作成し、デフォルトレジストリに登録する
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry は指定したレジストリにメトリクスを登録する
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),
		BookingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookings_total",
				Help: "Total number of booking attempts by outcome",
			},
			[]string{"status"},
		),
		SeatTogglesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seat_toggles_total",
				Help: "Total number of seat selection toggles by result",
			},
			[]string{"result"},
		),
		VendorApplicationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vendor_applications_total",
				Help: "Vendor applications registered or approved",
			},
			[]string{"status"},
		),
		DatasetLoadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dataset_loads_total",
				Help: "Seed dataset fetches by dataset and outcome",
			},
			[]string{"dataset", "status"},
		),
		StoreOperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "snapshot_store_operations_total",
				Help: "Snapshot store operations by backend, operation and outcome",
			},
			[]string{"backend", "operation", "status"},
		),
		StoreOperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "snapshot_store_operation_duration_seconds",
				Help:    "Time spent persisting or restoring snapshots",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"backend", "operation"},
		),
		DistributedLockDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "distributed_lock_duration_seconds",
				Help:    "Time spent on distributed lock operations",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"operation", "status"},
		),
		BookedSeats: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "event_booked_seats",
				Help: "Current number of booked seats per event",
			},
			[]string{"event_id"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.BookingsTotal,
		m.SeatTogglesTotal,
		m.VendorApplicationsTotal,
		m.DatasetLoadsTotal,
		m.StoreOperationsTotal,
		m.StoreOperationDuration,
		m.DistributedLockDuration,
		m.BookedSeats,
	)

	return m
}

// デフォルトのメトリクスインスタンス
var defaultMetrics *Metrics

// Init はデフォルトのメトリクスインスタンスを初期化する
func Init() *Metrics {
	defaultMetrics = New()
	return defaultMetrics
}

// Get はデフォルトのメトリクスインスタンスを返す（Init 前は nil）
func Get() *Metrics {
	return defaultMetrics
}
