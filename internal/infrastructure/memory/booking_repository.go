package memory

import (
	"context"
	"sync"

	"github.com/sanosuguru/carnival-corner/internal/domain/booking"
)

// BookingRepository は予約台帳のインメモリ実装（追記のみ）
type BookingRepository struct {
	mu       sync.RWMutex
	bookings []*booking.Booking
	lastID   int
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

func (r *BookingRepository) Append(ctx context.Context, b *booking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	b.ID = r.lastID
	r.bookings = append(r.bookings, b.Clone())
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int) (*booking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bookings {
		if b.ID == id {
			return b.Clone(), nil
		}
	}
	return nil, booking.ErrBookingNotFound
}

func (r *BookingRepository) List(ctx context.Context) ([]*booking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*booking.Booking, len(r.bookings))
	for i, b := range r.bookings {
		out[i] = b.Clone()
	}
	return out, nil
}

func (r *BookingRepository) Replace(ctx context.Context, bookings []*booking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bookings = make([]*booking.Booking, 0, len(bookings))
	for _, b := range bookings {
		r.bookings = append(r.bookings, b.Clone())
		r.lastID = max(r.lastID, b.ID)
	}
	return nil
}
