package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type LocationHandler struct {
	locationService LocationServiceInterface
}

func NewLocationHandler(ls LocationServiceInterface) *LocationHandler {
	return &LocationHandler{locationService: ls}
}

type LocationResponse struct {
	City  string   `json:"city" example:"Lahore"`
	Areas []string `json:"areas" example:"Gulberg,DHA"`
}

// List godoc
// @Summary 都市とエリアの一覧を取得
// @Tags locations
// @Produce json
// @Success 200 {array} LocationResponse
// @Router /locations [get]
func (h *LocationHandler) List(c echo.Context) error {
	locations, err := h.locationService.ListLocations(c.Request().Context())
	if err != nil {
		return err
	}
	responses := make([]LocationResponse, len(locations))
	for i, l := range locations {
		responses[i] = LocationResponse{City: l.City, Areas: l.Areas}
	}
	return c.JSON(http.StatusOK, responses)
}

// Areas godoc
// @Summary 都市のエリア一覧を取得
// @Tags locations
// @Produce json
// @Param city path string true "都市"
// @Success 200 {object} LocationResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /locations/{city}/areas [get]
func (h *LocationHandler) Areas(c echo.Context) error {
	city := c.Param("city")
	areas, err := h.locationService.AreasOf(c.Request().Context(), city)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, LocationResponse{City: city, Areas: areas})
}
