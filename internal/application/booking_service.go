package application

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/carnival-corner/internal/domain/booking"
	"github.com/sanosuguru/carnival-corner/internal/domain/event"
	"github.com/sanosuguru/carnival-corner/internal/domain/seat"
	redisinfra "github.com/sanosuguru/carnival-corner/internal/infrastructure/redis"
	"github.com/sanosuguru/carnival-corner/internal/pkg/logger"
	"github.com/sanosuguru/carnival-corner/internal/pkg/metrics"
)

const (
	bookingLockTTL        = 10 * time.Second
	bookingLockRetries    = 3
	bookingLockRetryDelay = 100 * time.Millisecond
)

// BookingDeps は BookingService の依存。Events と Bookings 以外は nil 可
type BookingDeps struct {
	Events    event.Repository
	Bookings  booking.Repository
	Snapshots *SnapshotWriter
	Locks     *redisinfra.LockManager
	Cache     *redisinfra.AvailabilityCache
	Notifier  *Notifier
	Metrics   *metrics.Metrics
}

// BookingService は座席選択と予約確定を扱う
// 選択中の座席はプロセスに1つだけ存在し、mu で保護する
type BookingService struct {
	eventRepo   event.Repository
	bookingRepo booking.Repository
	snapshots   *SnapshotWriter
	lockManager *redisinfra.LockManager
	cache       *redisinfra.AvailabilityCache
	notifier    *Notifier
	metrics     *metrics.Metrics

	mu        sync.Mutex
	selection *seat.Selection
}

func NewBookingService(deps BookingDeps) *BookingService {
	return &BookingService{
		eventRepo:   deps.Events,
		bookingRepo: deps.Bookings,
		snapshots:   deps.Snapshots,
		lockManager: deps.Locks,
		cache:       deps.Cache,
		notifier:    deps.Notifier,
		metrics:     deps.Metrics,
		selection:   seat.NewSelection(),
	}
}

// ToggleSeat は座席の選択状態を反転する
// 予約済み・グリッド外の座席は Rejected を返し、選択は変更しない
// 選択中の座席の解除は空き状況に関係なく受け付ける
func (s *BookingService) ToggleSeat(ctx context.Context, eventID int, seatID string) (seat.ToggleResult, error) {
	// 予約確定と同じロックの下で空き確認と反転を行う
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return seat.Rejected, err
	}

	result := seat.Rejected
	if s.selection.Contains(eventID, seatID) || e.Availability(seatID) == seat.Available {
		result = s.selection.Toggle(eventID, seatID)
	}

	if s.metrics != nil {
		s.metrics.SeatTogglesTotal.WithLabelValues(string(result)).Inc()
	}
	return result, nil
}

// SelectionView は現在の選択内容と小計
type SelectionView struct {
	EventID     int
	EventName   string
	Seats       []string
	Price       int
	TotalAmount int
}

// Selection は現在の選択を返す。選択中のイベントが削除されていれば小計は0
func (s *BookingService) Selection(ctx context.Context) (*SelectionView, error) {
	s.mu.Lock()
	eventID := s.selection.EventID()
	seats := s.selection.Seats()
	s.mu.Unlock()

	view := &SelectionView{EventID: eventID, Seats: seats}
	if seats == nil {
		view.Seats = []string{}
	}
	if eventID == 0 {
		return view, nil
	}
	e, err := s.eventRepo.GetByID(ctx, eventID)
	if errors.Is(err, event.ErrEventNotFound) {
		view.EventName = UnknownEventName
		return view, nil
	}
	if err != nil {
		return nil, err
	}
	view.EventName = e.Name
	view.Price = e.Price
	view.TotalAmount = len(seats) * e.Price
	return view, nil
}

// SeatView はシートマップの1席
type SeatView struct {
	ID    string
	State seat.State
}

// SeatMap は行ごとの座席状態
type SeatMap struct {
	EventID     int
	Rows        int
	SeatsPerRow int
	Seats       [][]SeatView
}

// SeatMap は描画用に各座席の状態（空席・選択中・予約済み）を返す
func (s *BookingService) SeatMap(ctx context.Context, eventID int) (*SeatMap, error) {
	e, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	selected := s.selection.SeatsFor(eventID)
	s.mu.Unlock()

	grid := seat.Grid(e.Seating.Rows, e.Seating.SeatsPerRow)
	m := &SeatMap{
		EventID:     eventID,
		Rows:        e.Seating.Rows,
		SeatsPerRow: e.Seating.SeatsPerRow,
		Seats:       make([][]SeatView, len(grid)),
	}
	for r, row := range grid {
		m.Seats[r] = make([]SeatView, len(row))
		for c, id := range row {
			state := seat.StateAvailable
			switch {
			case e.IsSeatBooked(id):
				state = seat.StateBooked
			case slices.Contains(selected, id):
				state = seat.StateSelected
			}
			m.Seats[r][c] = SeatView{ID: id, State: state}
		}
	}
	return m, nil
}

type CreateBookingInput struct {
	EventID   int
	UserName  string
	UserEmail string
}

// CreateBooking は選択中の座席で予約を確定する
// 失敗した場合は座席・台帳・選択のいずれも変更しない
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*booking.Booking, error) {
	b, err := s.createBooking(ctx, input)
	if s.metrics != nil {
		s.metrics.BookingsTotal.WithLabelValues(bookingOutcome(err)).Inc()
	}
	return b, err
}

func (s *BookingService) createBooking(ctx context.Context, input CreateBookingInput) (*booking.Booking, error) {
	name := strings.TrimSpace(input.UserName)
	email := strings.TrimSpace(input.UserEmail)
	if name == "" {
		return nil, booking.ErrUserNameRequired
	}
	if email == "" {
		return nil, booking.ErrUserEmailRequired
	}

	// 確定処理全体で選択を固定する
	s.mu.Lock()
	defer s.mu.Unlock()

	seats := s.selection.SeatsFor(input.EventID)
	if len(seats) == 0 {
		return nil, booking.ErrSeatsRequired
	}

	// 分散ロック中は共有ストアの予約済み座席を取り込んでから検証する
	// events スナップショットの保存もロック解放より前に終わる
	if s.lockManager != nil {
		lock, err := s.acquireLock(ctx, input.EventID)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := lock.Release(ctx); err != nil {
				logger.FromContext(ctx).Warn("ロック解放エラー", zap.Int("event_id", input.EventID), zap.Error(err))
			}
		}()
		if err := s.syncBookedSeats(ctx, input.EventID); err != nil {
			return nil, err
		}
	}

	// 確定時点の空き状況で再検証し、全席まとめて予約済みにする
	var price int
	updated, err := s.eventRepo.Update(ctx, input.EventID, func(e *event.Event) error {
		price = e.Price
		return e.BookSeats(seats)
	})
	if err != nil {
		return nil, err
	}

	b := booking.NewBooking(input.EventID, name, email, seats, price)
	if err := b.Validate(); err != nil {
		s.releaseSeats(ctx, input.EventID, seats)
		return nil, err
	}
	if err := s.bookingRepo.Append(ctx, b); err != nil {
		s.releaseSeats(ctx, input.EventID, seats)
		return nil, fmt.Errorf("予約の保存に失敗: %w", err)
	}

	s.selection.Clear()

	s.snapshots.SaveEvents(ctx, s.eventRepo)
	s.snapshots.SaveBookings(ctx, s.bookingRepo)
	s.invalidateCache(ctx, input.EventID)
	if s.metrics != nil {
		s.metrics.BookedSeats.WithLabelValues(strconv.Itoa(input.EventID)).Set(float64(len(updated.Seating.BookedSeats)))
	}
	s.notifier.BookingConfirmed(ctx, b, updated.Name)

	logger.FromContext(ctx).Info("予約を確定",
		zap.Int("booking_id", b.ID),
		zap.Int("event_id", b.EventID),
		zap.Strings("seats", b.Seats),
		zap.Int("total_amount", b.TotalAmount),
	)
	return b, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id int) (*booking.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

func (s *BookingService) ListBookings(ctx context.Context) ([]*booking.Booking, error) {
	return s.bookingRepo.List(ctx)
}

// ReleaseStaleSelection は idleAfter より長く操作されていない選択を破棄し、解放した席数を返す
func (s *BookingService) ReleaseStaleSelection(ctx context.Context, idleAfter time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.selection.Len()
	if n == 0 || time.Since(s.selection.IdleSince()) < idleAfter {
		return 0, nil
	}
	logger.Info("放置された座席選択を破棄", zap.Int("event_id", s.selection.EventID()), zap.Int("seats", n))
	s.selection.Clear()
	return n, nil
}

func (s *BookingService) acquireLock(ctx context.Context, eventID int) (*redisinfra.DistributedLock, error) {
	start := time.Now()
	lock, err := s.lockManager.AcquireLockWithRetry(ctx, redisinfra.EventLockKey(eventID), bookingLockTTL, bookingLockRetries, bookingLockRetryDelay)
	if s.metrics != nil {
		status := "success"
		if err != nil {
			status = "failed"
		}
		s.metrics.DistributedLockDuration.WithLabelValues("acquire", status).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		if errors.Is(err, redisinfra.ErrLockNotAcquired) {
			return nil, ErrBookingInProgress
		}
		return nil, fmt.Errorf("ロック取得に失敗: %w", err)
	}
	return lock, nil
}

// syncBookedSeats は共有ストアに保存された他インスタンスの予約済み座席をローカルの在庫へ取り込む
// 予約が失敗しても取り込んだ座席は残る
func (s *BookingService) syncBookedSeats(ctx context.Context, eventID int) error {
	shared, ok := s.snapshots.RestoreEvent(ctx, eventID)
	if !ok {
		return nil
	}
	var added int
	_, err := s.eventRepo.Update(ctx, eventID, func(e *event.Event) error {
		added = e.MergeBookedSeats(shared.Seating.BookedSeats)
		return nil
	})
	if err != nil {
		return err
	}
	if added > 0 {
		logger.FromContext(ctx).Info("共有ストアの予約済み座席を取り込み", zap.Int("event_id", eventID), zap.Int("seats", added))
		s.invalidateCache(ctx, eventID)
	}
	return nil
}

// releaseSeats は台帳への追加に失敗したときの補償処理
func (s *BookingService) releaseSeats(ctx context.Context, eventID int, seats []string) {
	_, err := s.eventRepo.Update(ctx, eventID, func(e *event.Event) error {
		e.ReleaseSeats(seats)
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Error("座席の解放に失敗", zap.Int("event_id", eventID), zap.Strings("seats", seats), zap.Error(err))
	}
}

func (s *BookingService) invalidateCache(ctx context.Context, eventID int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, eventID); err != nil {
		logger.FromContext(ctx).Warn("キャッシュ無効化エラー", zap.Int("event_id", eventID), zap.Error(err))
	}
}

func bookingOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, event.ErrSeatAlreadyBooked), errors.Is(err, seat.ErrInvalidSeat), errors.Is(err, seat.ErrDuplicateSeat):
		return "conflict"
	case errors.Is(err, ErrBookingInProgress):
		return "lock_failed"
	case errors.Is(err, booking.ErrUserNameRequired), errors.Is(err, booking.ErrUserEmailRequired),
		errors.Is(err, booking.ErrSeatsRequired), errors.Is(err, event.ErrEventNotFound):
		return "invalid"
	default:
		return "error"
	}
}
