package application

import (
	"context"

	"github.com/sanosuguru/carnival-corner/internal/domain/booking"
	"github.com/sanosuguru/carnival-corner/internal/domain/event"
	"github.com/sanosuguru/carnival-corner/internal/domain/vendor"
)

// Stats は管理画面の集計値
type Stats struct {
	TotalEvents    int
	TotalBookings  int
	TotalVendors   int
	PendingVendors int
	TotalRevenue   int
	BookedSeats    int
	TotalSeats     int
}

type DashboardService struct {
	eventRepo   event.Repository
	bookingRepo booking.Repository
	vendorRepo  vendor.Repository
}

func NewDashboardService(er event.Repository, br booking.Repository, vr vendor.Repository) *DashboardService {
	return &DashboardService{eventRepo: er, bookingRepo: br, vendorRepo: vr}
}

// Stats は件数と売上を集計する（売上は予約台帳の合計金額の和）
func (s *DashboardService) Stats(ctx context.Context) (*Stats, error) {
	events, err := s.eventRepo.List(ctx, event.Filter{})
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookingRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	applications, err := s.vendorRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	st := &Stats{
		TotalEvents:   len(events),
		TotalBookings: len(bookings),
		TotalVendors:  len(applications),
	}
	for _, e := range events {
		st.TotalSeats += e.Capacity()
		st.BookedSeats += len(e.Seating.BookedSeats)
	}
	for _, b := range bookings {
		st.TotalRevenue += b.TotalAmount
	}
	for _, a := range applications {
		if a.IsPending() {
			st.PendingVendors++
		}
	}
	return st, nil
}
