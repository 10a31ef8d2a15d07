package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/sanosuguru/carnival-corner/internal/api"
	"github.com/sanosuguru/carnival-corner/internal/api/handler"
	"github.com/sanosuguru/carnival-corner/internal/api/middleware"
	"github.com/sanosuguru/carnival-corner/internal/application"
	"github.com/sanosuguru/carnival-corner/internal/config"
	"github.com/sanosuguru/carnival-corner/internal/domain/persistence"
	"github.com/sanosuguru/carnival-corner/internal/infrastructure/filestore"
	"github.com/sanosuguru/carnival-corner/internal/infrastructure/loader"
	"github.com/sanosuguru/carnival-corner/internal/infrastructure/memory"
	"github.com/sanosuguru/carnival-corner/internal/infrastructure/postgres"
	"github.com/sanosuguru/carnival-corner/internal/infrastructure/rabbitmq"
	redisinfra "github.com/sanosuguru/carnival-corner/internal/infrastructure/redis"
	"github.com/sanosuguru/carnival-corner/internal/pkg/logger"
	"github.com/sanosuguru/carnival-corner/internal/pkg/metrics"
	"github.com/sanosuguru/carnival-corner/internal/worker"
)

func main() {
	envFile := pflag.String("env-file", "", "読み込む .env ファイルのパス")
	pflag.Parse()

	if err := config.LoadEnvFile(*envFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg := config.Load()

	logger.Init(cfg.Env)
	defer func() { _ = logger.Sync() }()

	if err := run(cfg); err != nil {
		logger.Fatal("起動に失敗しました", zap.Error(err))
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.Init()
	checks := map[string]handler.HealthCheck{}
	var closers []io.Closer
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i].Close(); err != nil {
				logger.Warn("クローズに失敗", zap.Error(err))
			}
		}
	}()

	// Redis（スナップショット保存先として選ばれた場合も接続する）
	var redisClient *goredis.Client
	if cfg.Redis.Enabled || cfg.Storage.Backend == config.StorageRedis {
		redisClient = redisinfra.NewClient(&cfg.Redis)
		closers = append(closers, redisClient)
		if err := redisinfra.Ping(ctx, redisClient); err != nil {
			return err
		}
		checks["redis"] = func(ctx context.Context) error { return redisinfra.Ping(ctx, redisClient) }
		logger.Info("Redisに接続しました", zap.String("addr", cfg.Redis.Addr()))
	}

	store, err := newSnapshotStore(cfg, redisClient, checks, &closers)
	if err != nil {
		return err
	}
	snapshots := application.NewSnapshotWriter(store, cfg.Storage.Backend, m)

	var notifier *application.Notifier
	if cfg.RabbitMQ.URL != "" {
		publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.URL)
		if err != nil {
			// 通知は任意機能のため、ブローカーに繋がらなくても起動は続ける
			logger.Warn("RabbitMQに接続できないため通知を無効化します", zap.Error(err))
		} else {
			closers = append(closers, publisher)
			notifier = application.NewNotifier(publisher)
			logger.Info("RabbitMQに接続しました")
		}
	}

	repos := application.Repositories{
		Events:    memory.NewEventRepository(),
		Locations: memory.NewLocationRepository(),
		Bookings:  memory.NewBookingRepository(),
		Vendors:   memory.NewVendorRepository(),
	}
	if _, err := application.Bootstrap(ctx, loader.New(datasetSource(cfg), cfg.Data.LoadTimeout, m), snapshots, repos); err != nil {
		return err
	}

	var (
		locks *redisinfra.LockManager
		cache *redisinfra.AvailabilityCache
	)
	if cfg.Redis.Enabled {
		locks = redisinfra.NewLockManager(redisClient)
		cache = redisinfra.NewAvailabilityCache(redisClient)
	}

	eventService := application.NewEventService(repos.Events, snapshots, cache)
	bookingService := application.NewBookingService(application.BookingDeps{
		Events:    repos.Events,
		Bookings:  repos.Bookings,
		Snapshots: snapshots,
		Locks:     locks,
		Cache:     cache,
		Notifier:  notifier,
		Metrics:   m,
	})
	vendorService := application.NewVendorService(repos.Vendors, repos.Events, snapshots, notifier, m)

	cleaner := worker.NewStaleSelectionCleaner(bookingService, cfg.Selection.SweepInterval, cfg.Selection.IdleTimeout)
	go cleaner.Start(ctx)
	defer cleaner.Stop()

	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	middleware.SetupMiddleware(e, m)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), middleware.MetricsBasicAuth(cfg.Metrics))
	handler.RegisterRoutes(e, handler.Handlers{
		Health:   handler.NewHealthHandler(checks),
		Event:    handler.NewEventHandler(eventService),
		Seat:     handler.NewSeatHandler(eventService, bookingService),
		Booking:  handler.NewBookingHandler(bookingService, eventService),
		Vendor:   handler.NewVendorHandler(vendorService, eventService),
		Location: handler.NewLocationHandler(application.NewLocationService(repos.Locations)),
		Admin:    handler.NewAdminHandler(application.NewDashboardService(repos.Events, repos.Bookings, repos.Vendors)),
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("サーバーを起動します", zap.String("port", cfg.Server.Port), zap.String("storage", cfg.Storage.Backend))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("サーバー起動エラー: %w", err)
	case <-ctx.Done():
	}

	logger.Info("サーバーをシャットダウンしています...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("サーバーシャットダウンエラー: %w", err)
	}
	logger.Info("サーバーが正常にシャットダウンしました")
	return nil
}

// newSnapshotStore は STORAGE_BACKEND に応じたスナップショットストアを作成する
func newSnapshotStore(cfg *config.Config, redisClient *goredis.Client, checks map[string]handler.HealthCheck, closers *[]io.Closer) (persistence.Store, error) {
	switch cfg.Storage.Backend {
	case config.StorageFile:
		return filestore.New(cfg.Storage.Dir)
	case config.StorageMemory:
		logger.Warn("メモリストアを使用します（再起動で保存内容は失われます）")
		return memory.NewSnapshotStore(), nil
	case config.StorageRedis:
		return redisinfra.NewSnapshotStore(redisClient, cfg.Storage.KeyPrefix), nil
	case config.StoragePostgres:
		db, err := postgres.NewConnection(&cfg.Database)
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, db)
		if err := postgres.RunMigrations(db.DB, cfg.Database.MigrationsPath); err != nil {
			return nil, err
		}
		checks["postgres"] = func(ctx context.Context) error { return postgres.Ping(ctx, db) }
		logger.Info("PostgreSQLに接続しました", zap.String("host", cfg.Database.Host))
		return postgres.NewSnapshotStore(db), nil
	default:
		return nil, fmt.Errorf("未対応のストレージバックエンドです: %q", cfg.Storage.Backend)
	}
}

func datasetSource(cfg *config.Config) loader.Source {
	if cfg.Data.BaseURL != "" {
		return loader.HTTPSource{BaseURL: cfg.Data.BaseURL, Client: &http.Client{Timeout: cfg.Data.LoadTimeout}}
	}
	return loader.DirSource{Dir: cfg.Data.Dir}
}
