package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/carnival-corner/internal/domain/event"
	"github.com/sanosuguru/carnival-corner/internal/domain/seat"
	redisinfra "github.com/sanosuguru/carnival-corner/internal/infrastructure/redis"
	"github.com/sanosuguru/carnival-corner/internal/pkg/logger"
)

const (
	availabilityCacheTTL = 30 * time.Second

	// UnknownEventName は削除済みイベントを参照する予約・申請の表示名
	UnknownEventName = "N/A"
)

type EventService struct {
	eventRepo event.Repository
	snapshots *SnapshotWriter
	cache     *redisinfra.AvailabilityCache
}

// NewEventService は EventService を作成する。snapshots と cache は nil 可
func NewEventService(er event.Repository, snapshots *SnapshotWriter, cache *redisinfra.AvailabilityCache) *EventService {
	return &EventService{eventRepo: er, snapshots: snapshots, cache: cache}
}

type CreateEventInput struct {
	Name        string
	Description string
	City        string
	Area        string
	Venue       string
	Date        string
	Time        string
	Category    string
	Price       int
	Image       string
	Rows        int
	SeatsPerRow int
}

// CreateEvent はイベントを追加する。行数・1行あたりの座席数の未指定は10
func (s *EventService) CreateEvent(ctx context.Context, input CreateEventInput) (*event.Event, error) {
	e := event.NewEvent(event.Details(input))
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}
	if err := s.eventRepo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("イベント作成に失敗しました: %w", err)
	}
	s.snapshots.SaveEvents(ctx, s.eventRepo)
	logger.FromContext(ctx).Info("イベントを作成", zap.Int("event_id", e.ID), zap.String("name", e.Name))
	return e, nil
}

func (s *EventService) GetEvent(ctx context.Context, id int) (*event.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

func (s *EventService) ListEvents(ctx context.Context, filter event.Filter) ([]*event.Event, error) {
	return s.eventRepo.List(ctx, filter)
}

// UpdateEvent は指定されたフィールドだけを上書きする
func (s *EventService) UpdateEvent(ctx context.Context, id int, patch event.Patch) (*event.Event, error) {
	updated, err := s.eventRepo.Update(ctx, id, func(e *event.Event) error {
		if err := e.Apply(patch); err != nil {
			return err
		}
		if err := e.Validate(); err != nil {
			return fmt.Errorf("バリデーションエラー: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.snapshots.SaveEvents(ctx, s.eventRepo)
	s.invalidateCache(ctx, id)
	return updated, nil
}

// DeleteEvent はイベントを削除する
// このイベントを参照する予約・申請は残り、表示名は UnknownEventName になる
func (s *EventService) DeleteEvent(ctx context.Context, id int) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.snapshots.SaveEvents(ctx, s.eventRepo)
	s.invalidateCache(ctx, id)
	logger.FromContext(ctx).Info("イベントを削除", zap.Int("event_id", id))
	return nil
}

// SeatAvailability は座席の予約可否を返す（グリッド外や不正なIDは Invalid）
func (s *EventService) SeatAvailability(ctx context.Context, eventID int, seatID string) (seat.Availability, error) {
	e, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return seat.Invalid, err
	}
	return e.Availability(seatID), nil
}

func (s *EventService) CountAvailableSeats(ctx context.Context, eventID int) (int, error) {
	if s.cache != nil {
		count, err := s.cache.GetAvailableCount(ctx, eventID)
		if err == nil {
			logger.Debug("キャッシュヒット", zap.Int("event_id", eventID), zap.Int("count", count))
			return count, nil
		}
		if !errors.Is(err, redisinfra.ErrCacheMiss) {
			logger.Warn("キャッシュ取得エラー", zap.Error(err))
		}
	}

	e, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return 0, err
	}
	count := e.AvailableSeats()

	if s.cache != nil {
		if cacheErr := s.cache.SetAvailableCount(ctx, eventID, count, availabilityCacheTTL); cacheErr != nil {
			logger.Warn("キャッシュ保存エラー", zap.Error(cacheErr))
		}
	}
	return count, nil
}

// EventName はイベント名を返す。存在しない場合は UnknownEventName
func (s *EventService) EventName(ctx context.Context, id int) string {
	e, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return UnknownEventName
	}
	return e.Name
}

func (s *EventService) invalidateCache(ctx context.Context, eventID int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, eventID); err != nil {
		logger.Warn("キャッシュ無効化エラー", zap.Int("event_id", eventID), zap.Error(err))
	}
}
