package handler

import (
	"context"

	"github.com/sanosuguru/carnival-corner/internal/application"
	"github.com/sanosuguru/carnival-corner/internal/domain/booking"
	"github.com/sanosuguru/carnival-corner/internal/domain/event"
	"github.com/sanosuguru/carnival-corner/internal/domain/location"
	"github.com/sanosuguru/carnival-corner/internal/domain/seat"
	"github.com/sanosuguru/carnival-corner/internal/domain/vendor"
)

// EventServiceInterface はイベントサービスのインターフェース
type EventServiceInterface interface {
	CreateEvent(ctx context.Context, input application.CreateEventInput) (*event.Event, error)
	GetEvent(ctx context.Context, id int) (*event.Event, error)
	ListEvents(ctx context.Context, filter event.Filter) ([]*event.Event, error)
	UpdateEvent(ctx context.Context, id int, patch event.Patch) (*event.Event, error)
	DeleteEvent(ctx context.Context, id int) error
	SeatAvailability(ctx context.Context, eventID int, seatID string) (seat.Availability, error)
	CountAvailableSeats(ctx context.Context, eventID int) (int, error)
	EventName(ctx context.Context, id int) string
}

// BookingServiceInterface は座席選択・予約サービスのインターフェース
type BookingServiceInterface interface {
	ToggleSeat(ctx context.Context, eventID int, seatID string) (seat.ToggleResult, error)
	Selection(ctx context.Context) (*application.SelectionView, error)
	SeatMap(ctx context.Context, eventID int) (*application.SeatMap, error)
	CreateBooking(ctx context.Context, input application.CreateBookingInput) (*booking.Booking, error)
	GetBooking(ctx context.Context, id int) (*booking.Booking, error)
	ListBookings(ctx context.Context) ([]*booking.Booking, error)
}

// VendorServiceInterface はベンダー申請サービスのインターフェース
type VendorServiceInterface interface {
	RegisterVendor(ctx context.Context, input application.RegisterVendorInput) (*vendor.Application, error)
	ApproveVendor(ctx context.Context, id int) (bool, error)
	GetVendor(ctx context.Context, id int) (*vendor.Application, error)
	ListVendors(ctx context.Context) ([]*vendor.Application, error)
}

type LocationServiceInterface interface {
	ListLocations(ctx context.Context) ([]*location.Location, error)
	AreasOf(ctx context.Context, city string) ([]string, error)
}

type DashboardServiceInterface interface {
	Stats(ctx context.Context) (*application.Stats, error)
}
