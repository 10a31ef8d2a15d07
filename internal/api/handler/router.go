package handler

import "github.com/labstack/echo/v4"

// Handlers はルーティング対象のハンドラー一式
type Handlers struct {
	Health   *HealthHandler
	Event    *EventHandler
	Seat     *SeatHandler
	Booking  *BookingHandler
	Vendor   *VendorHandler
	Location *LocationHandler
	Admin    *AdminHandler
}

// RegisterRoutes は /health と /api/v1 配下のルートを登録する
func RegisterRoutes(e *echo.Echo, h Handlers) {
	e.GET("/health", h.Health.Check)

	v1 := e.Group("/api/v1")

	v1.GET("/locations", h.Location.List)
	v1.GET("/locations/:city/areas", h.Location.Areas)

	v1.GET("/events", h.Event.List)
	v1.POST("/events", h.Event.Create)
	v1.GET("/events/:id", h.Event.GetByID)
	v1.PATCH("/events/:id", h.Event.Update)
	v1.DELETE("/events/:id", h.Event.Delete)

	v1.GET("/events/:id/seats", h.Seat.GetSeatMap)
	v1.GET("/events/:id/seats/available/count", h.Seat.CountAvailable)
	v1.GET("/events/:id/seats/:seat_id", h.Seat.GetAvailability)
	v1.POST("/events/:id/seats/:seat_id/toggle", h.Seat.Toggle)
	v1.GET("/selection", h.Seat.GetSelection)

	v1.POST("/bookings", h.Booking.Create)
	v1.GET("/bookings", h.Booking.List)
	v1.GET("/bookings/:id", h.Booking.GetByID)

	v1.POST("/vendors", h.Vendor.Register)
	v1.GET("/vendors", h.Vendor.List)
	v1.GET("/vendors/:id", h.Vendor.GetByID)
	v1.POST("/vendors/:id/approve", h.Vendor.Approve)

	v1.GET("/admin/stats", h.Admin.Stats)
}
