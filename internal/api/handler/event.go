package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/carnival-corner/internal/application"
	"github.com/sanosuguru/carnival-corner/internal/domain/event"
)

type EventHandler struct {
	eventService EventServiceInterface
}

func NewEventHandler(eventService EventServiceInterface) *EventHandler {
	return &EventHandler{eventService: eventService}
}

type CreateEventRequest struct {
	Name        string `json:"name" validate:"required" example:"Lahore Music Night"`
	Description string `json:"description" example:"Live qawwali and folk music"`
	City        string `json:"city" example:"Lahore"`
	Area        string `json:"area" example:"Gulberg"`
	Venue       string `json:"venue" example:"Alhamra Arts Council"`
	Date        string `json:"date" validate:"omitempty,datetime=2006-01-02" example:"2026-12-01"`
	Time        string `json:"time" validate:"omitempty,datetime=15:04" example:"19:30"`
	Category    string `json:"category" example:"music"`
	Price       int    `json:"price" validate:"gte=0" example:"1500"`
	Image       string `json:"image" example:"https://example.com/poster.jpg"`
	Rows        int    `json:"rows" validate:"omitempty,min=1,max=26" example:"10"`
	SeatsPerRow int    `json:"seats_per_row" validate:"omitempty,min=1" example:"10"`
}

// UpdateEventRequest は部分更新のリクエスト（省略したフィールドは変更しない）
type UpdateEventRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	City        *string `json:"city"`
	Area        *string `json:"area"`
	Venue       *string `json:"venue"`
	Date        *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time        *string `json:"time" validate:"omitempty,datetime=15:04"`
	Category    *string `json:"category"`
	Price       *int    `json:"price" validate:"omitempty,gte=0"`
	Image       *string `json:"image"`
	Rows        *int    `json:"rows" validate:"omitempty,min=1,max=26"`
	SeatsPerRow *int    `json:"seats_per_row" validate:"omitempty,min=1"`
}

type SeatingResponse struct {
	Rows        int      `json:"rows" example:"10"`
	SeatsPerRow int      `json:"seats_per_row" example:"10"`
	BookedSeats []string `json:"booked_seats" example:"A1,A2"`
}

type EventResponse struct {
	ID             int             `json:"id" example:"1"`
	Name           string          `json:"name" example:"Lahore Music Night"`
	Description    string          `json:"description"`
	City           string          `json:"city" example:"Lahore"`
	Area           string          `json:"area" example:"Gulberg"`
	Venue          string          `json:"venue" example:"Alhamra Arts Council"`
	Date           string          `json:"date" example:"2026-12-01"`
	Time           string          `json:"time" example:"19:30"`
	Category       string          `json:"category" example:"music"`
	Price          int             `json:"price" example:"1500"`
	Image          string          `json:"image,omitempty"`
	Seating        SeatingResponse `json:"seating"`
	AvailableSeats int             `json:"available_seats" example:"98"`
}

func toEventResponse(e *event.Event) *EventResponse {
	booked := e.Seating.BookedSeats
	if booked == nil {
		booked = []string{}
	}
	return &EventResponse{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		City:        e.City,
		Area:        e.Area,
		Venue:       e.Venue,
		Date:        e.Date,
		Time:        e.Time,
		Category:    e.Category,
		Price:       e.Price,
		Image:       e.Image,
		Seating: SeatingResponse{
			Rows:        e.Seating.Rows,
			SeatsPerRow: e.Seating.SeatsPerRow,
			BookedSeats: booked,
		},
		AvailableSeats: e.AvailableSeats(),
	}
}

// Create godoc
// @Summary イベントを作成
// @Description 新しいイベントを作成します（行数・1行あたりの座席数の省略時は10）
// @Tags events
// @Accept json
// @Produce json
// @Param request body CreateEventRequest true "イベント情報"
// @Success 201 {object} EventResponse
// @Failure 400 {object} api.ErrorResponse
// @Router /events [post]
func (h *EventHandler) Create(c echo.Context) error {
	var req CreateEventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	e, err := h.eventService.CreateEvent(c.Request().Context(), application.CreateEventInput{
		Name:        req.Name,
		Description: req.Description,
		City:        req.City,
		Area:        req.Area,
		Venue:       req.Venue,
		Date:        req.Date,
		Time:        req.Time,
		Category:    req.Category,
		Price:       req.Price,
		Image:       req.Image,
		Rows:        req.Rows,
		SeatsPerRow: req.SeatsPerRow,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toEventResponse(e))
}

// GetByID godoc
// @Summary イベントを取得
// @Tags events
// @Produce json
// @Param id path int true "イベントID"
// @Success 200 {object} EventResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /events/{id} [get]
func (h *EventHandler) GetByID(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	e, err := h.eventService.GetEvent(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponse(e))
}

// List godoc
// @Summary イベント一覧を取得
// @Description 都市・エリア・カテゴリで絞り込めます
// @Tags events
// @Produce json
// @Param city query string false "都市"
// @Param area query string false "エリア"
// @Param category query string false "カテゴリ"
// @Success 200 {array} EventResponse
// @Router /events [get]
func (h *EventHandler) List(c echo.Context) error {
	events, err := h.eventService.ListEvents(c.Request().Context(), event.Filter{
		City:     c.QueryParam("city"),
		Area:     c.QueryParam("area"),
		Category: c.QueryParam("category"),
	})
	if err != nil {
		return err
	}

	responses := make([]*EventResponse, len(events))
	for i, e := range events {
		responses[i] = toEventResponse(e)
	}
	return c.JSON(http.StatusOK, responses)
}

// Update godoc
// @Summary イベントを部分更新
// @Tags events
// @Accept json
// @Produce json
// @Param id path int true "イベントID"
// @Param request body UpdateEventRequest true "変更するフィールド"
// @Success 200 {object} EventResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse "予約済み座席がグリッド外になる"
// @Router /events/{id} [patch]
func (h *EventHandler) Update(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	var req UpdateEventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	e, err := h.eventService.UpdateEvent(c.Request().Context(), id, event.Patch{
		Name:        req.Name,
		Description: req.Description,
		City:        req.City,
		Area:        req.Area,
		Venue:       req.Venue,
		Date:        req.Date,
		Time:        req.Time,
		Category:    req.Category,
		Price:       req.Price,
		Image:       req.Image,
		Rows:        req.Rows,
		SeatsPerRow: req.SeatsPerRow,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponse(e))
}

// Delete godoc
// @Summary イベントを削除
// @Tags events
// @Param id path int true "イベントID"
// @Success 204
// @Failure 404 {object} api.ErrorResponse
// @Router /events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.eventService.DeleteEvent(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
