package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	dashboardService DashboardServiceInterface
}

func NewAdminHandler(ds DashboardServiceInterface) *AdminHandler {
	return &AdminHandler{dashboardService: ds}
}

type StatsResponse struct {
	TotalEvents    int `json:"total_events" example:"12"`
	TotalBookings  int `json:"total_bookings" example:"40"`
	TotalVendors   int `json:"total_vendors" example:"8"`
	PendingVendors int `json:"pending_vendors" example:"3"`
	TotalRevenue   int `json:"total_revenue" example:"52000"`
	BookedSeats    int `json:"booked_seats" example:"96"`
	TotalSeats     int `json:"total_seats" example:"1200"`
}

// Stats godoc
// @Summary 管理画面の集計値を取得
// @Tags admin
// @Produce json
// @Success 200 {object} StatsResponse
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	st, err := h.dashboardService.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, StatsResponse{
		TotalEvents:    st.TotalEvents,
		TotalBookings:  st.TotalBookings,
		TotalVendors:   st.TotalVendors,
		PendingVendors: st.PendingVendors,
		TotalRevenue:   st.TotalRevenue,
		BookedSeats:    st.BookedSeats,
		TotalSeats:     st.TotalSeats,
	})
}
