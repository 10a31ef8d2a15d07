package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/carnival-corner/internal/application"
	"github.com/sanosuguru/carnival-corner/internal/domain/seat"
)

// SeatHandler は座席マップ・空き状況・座席選択を扱う
type SeatHandler struct {
	eventService   EventServiceInterface
	bookingService BookingServiceInterface
}

func NewSeatHandler(es EventServiceInterface, bs BookingServiceInterface) *SeatHandler {
	return &SeatHandler{eventService: es, bookingService: bs}
}

type SeatResponse struct {
	ID    string `json:"id" example:"A1"`
	State string `json:"state" example:"available"`
}

type SeatMapResponse struct {
	EventID     int              `json:"event_id" example:"1"`
	Rows        int              `json:"rows" example:"10"`
	SeatsPerRow int              `json:"seats_per_row" example:"10"`
	Seats       [][]SeatResponse `json:"seats"`
}

type AvailabilityResponse struct {
	EventID      int    `json:"event_id" example:"1"`
	SeatID       string `json:"seat_id" example:"A1"`
	Availability string `json:"availability" example:"available"`
}

type ToggleResponse struct {
	EventID int    `json:"event_id" example:"1"`
	SeatID  string `json:"seat_id" example:"A1"`
	Result  string `json:"result" example:"selected"`
}

type SelectionResponse struct {
	EventID     int      `json:"event_id" example:"1"`
	EventName   string   `json:"event_name,omitempty" example:"Lahore Music Night"`
	Seats       []string `json:"seats" example:"A1,B2"`
	Price       int      `json:"price" example:"500"`
	TotalAmount int      `json:"total_amount" example:"1000"`
}

func toSeatMapResponse(m *application.SeatMap) *SeatMapResponse {
	rows := make([][]SeatResponse, len(m.Seats))
	for r, row := range m.Seats {
		rows[r] = make([]SeatResponse, len(row))
		for c, s := range row {
			rows[r][c] = SeatResponse{ID: s.ID, State: string(s.State)}
		}
	}
	return &SeatMapResponse{
		EventID:     m.EventID,
		Rows:        m.Rows,
		SeatsPerRow: m.SeatsPerRow,
		Seats:       rows,
	}
}

func toSelectionResponse(v *application.SelectionView) *SelectionResponse {
	return &SelectionResponse{
		EventID:     v.EventID,
		EventName:   v.EventName,
		Seats:       v.Seats,
		Price:       v.Price,
		TotalAmount: v.TotalAmount,
	}
}

// GetSeatMap godoc
// @Summary 座席マップを取得
// @Description 各座席の状態（available / selected / booked）を行ごとに返します
// @Tags seats
// @Produce json
// @Param id path int true "イベントID"
// @Success 200 {object} SeatMapResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /events/{id}/seats [get]
func (h *SeatHandler) GetSeatMap(c echo.Context) error {
	eventID, err := intParam(c, "id")
	if err != nil {
		return err
	}
	m, err := h.bookingService.SeatMap(c.Request().Context(), eventID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSeatMapResponse(m))
}

// CountAvailable godoc
// @Summary 空席数を取得
// @Tags seats
// @Produce json
// @Param id path int true "イベントID"
// @Success 200 {object} map[string]int
// @Router /events/{id}/seats/available/count [get]
func (h *SeatHandler) CountAvailable(c echo.Context) error {
	eventID, err := intParam(c, "id")
	if err != nil {
		return err
	}
	count, err := h.eventService.CountAvailableSeats(c.Request().Context(), eventID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int{"available_count": count})
}

// GetAvailability godoc
// @Summary 座席の予約可否を取得
// @Description グリッド外や不正な座席IDは invalid を返します
// @Tags seats
// @Produce json
// @Param id path int true "イベントID"
// @Param seat_id path string true "座席ID"
// @Success 200 {object} AvailabilityResponse
// @Router /events/{id}/seats/{seat_id} [get]
func (h *SeatHandler) GetAvailability(c echo.Context) error {
	eventID, err := intParam(c, "id")
	if err != nil {
		return err
	}
	seatID := c.Param("seat_id")
	a, err := h.eventService.SeatAvailability(c.Request().Context(), eventID, seatID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, AvailabilityResponse{EventID: eventID, SeatID: seatID, Availability: string(a)})
}

// Toggle godoc
// @Summary 座席の選択を切り替える
// @Description 予約済み・不正な座席は rejected を 409 で返し、選択は変更しません
// @Tags seats
// @Produce json
// @Param id path int true "イベントID"
// @Param seat_id path string true "座席ID"
// @Success 200 {object} ToggleResponse
// @Failure 409 {object} ToggleResponse
// @Router /events/{id}/seats/{seat_id}/toggle [post]
func (h *SeatHandler) Toggle(c echo.Context) error {
	eventID, err := intParam(c, "id")
	if err != nil {
		return err
	}
	seatID := c.Param("seat_id")
	result, err := h.bookingService.ToggleSeat(c.Request().Context(), eventID, seatID)
	if err != nil {
		return err
	}

	status := http.StatusOK
	if result == seat.Rejected {
		status = http.StatusConflict
	}
	return c.JSON(status, ToggleResponse{EventID: eventID, SeatID: seatID, Result: string(result)})
}

// GetSelection godoc
// @Summary 選択中の座席を取得
// @Tags seats
// @Produce json
// @Success 200 {object} SelectionResponse
// @Router /selection [get]
func (h *SeatHandler) GetSelection(c echo.Context) error {
	v, err := h.bookingService.Selection(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSelectionResponse(v))
}
