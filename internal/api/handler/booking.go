package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/carnival-corner/internal/application"
	"github.com/sanosuguru/carnival-corner/internal/domain/booking"
)

type BookingHandler struct {
	bookingService BookingServiceInterface
	eventService   EventServiceInterface
}

func NewBookingHandler(bs BookingServiceInterface, es EventServiceInterface) *BookingHandler {
	return &BookingHandler{bookingService: bs, eventService: es}
}

// CreateBookingRequest は選択中の座席で予約を確定するリクエスト
type CreateBookingRequest struct {
	EventID   int    `json:"event_id" validate:"required,gt=0" example:"1"`
	UserName  string `json:"user_name" validate:"required" example:"Ali"`
	UserEmail string `json:"user_email" validate:"required" example:"ali@example.com"`
}

type BookingResponse struct {
	ID          int       `json:"id" example:"1"`
	EventID     int       `json:"event_id" example:"1"`
	EventName   string    `json:"event_name" example:"Lahore Music Night"`
	UserName    string    `json:"user_name" example:"Ali"`
	UserEmail   string    `json:"user_email" example:"ali@example.com"`
	Seats       []string  `json:"seats" example:"A1,B2"`
	TotalAmount int       `json:"total_amount" example:"1000"`
	BookingDate time.Time `json:"booking_date"`
	Status      string    `json:"status" example:"confirmed"`
}

func (h *BookingHandler) toBookingResponse(ctx context.Context, b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:          b.ID,
		EventID:     b.EventID,
		EventName:   h.eventService.EventName(ctx, b.EventID),
		UserName:    b.UserName,
		UserEmail:   b.UserEmail,
		Seats:       b.Seats,
		TotalAmount: b.TotalAmount,
		BookingDate: b.BookingDate,
		Status:      string(b.Status),
	}
}

// Create godoc
// @Summary 予約を確定
// @Description 選択中の座席で予約を確定します。失敗時は何も変更しません
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body CreateBookingRequest true "予約者情報"
// @Success 201 {object} BookingResponse
// @Failure 400 {object} api.ErrorResponse "入力不備・座席未選択"
// @Failure 409 {object} api.ErrorResponse "座席が既に予約済み"
// @Router /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	var req CreateBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	b, err := h.bookingService.CreateBooking(ctx, application.CreateBookingInput{
		EventID:   req.EventID,
		UserName:  req.UserName,
		UserEmail: req.UserEmail,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, h.toBookingResponse(ctx, b))
}

// GetByID godoc
// @Summary 予約を取得
// @Tags bookings
// @Produce json
// @Param id path int true "予約ID"
// @Success 200 {object} BookingResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetByID(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	b, err := h.bookingService.GetBooking(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.toBookingResponse(ctx, b))
}

// List godoc
// @Summary 予約一覧を取得
// @Tags bookings
// @Produce json
// @Success 200 {array} BookingResponse
// @Router /bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	bookings, err := h.bookingService.ListBookings(ctx)
	if err != nil {
		return err
	}
	responses := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		responses[i] = h.toBookingResponse(ctx, b)
	}
	return c.JSON(http.StatusOK, responses)
}
