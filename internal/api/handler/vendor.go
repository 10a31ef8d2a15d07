package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/carnival-corner/internal/application"
	"github.com/sanosuguru/carnival-corner/internal/domain/vendor"
)

type VendorHandler struct {
	vendorService VendorServiceInterface
	eventService  EventServiceInterface
}

func NewVendorHandler(vs VendorServiceInterface, es EventServiceInterface) *VendorHandler {
	return &VendorHandler{vendorService: vs, eventService: es}
}

type RegisterVendorRequest struct {
	EventID        int    `json:"event_id" validate:"required,gt=0" example:"1"`
	VendorName     string `json:"vendor_name" validate:"required" example:"Chai Corner"`
	ContactPerson  string `json:"contact_person" example:"Sana"`
	Email          string `json:"email" validate:"required" example:"chai@example.com"`
	Phone          string `json:"phone" example:"0300-1234567"`
	StallType      string `json:"stall_type" validate:"required" example:"food"`
	AdditionalInfo string `json:"additional_info"`
}

type VendorResponse struct {
	ID               int       `json:"id" example:"1"`
	EventID          int       `json:"event_id" example:"1"`
	EventName        string    `json:"event_name" example:"Lahore Music Night"`
	VendorName       string    `json:"vendor_name" example:"Chai Corner"`
	ContactPerson    string    `json:"contact_person" example:"Sana"`
	Email            string    `json:"email" example:"chai@example.com"`
	Phone            string    `json:"phone" example:"0300-1234567"`
	StallType        string    `json:"stall_type" example:"food"`
	AdditionalInfo   string    `json:"additional_info"`
	Status           string    `json:"status" example:"pending"`
	RegistrationDate time.Time `json:"registration_date"`
}

type ApproveResponse struct {
	ID       int  `json:"id" example:"1"`
	Approved bool `json:"approved" example:"true"`
}

func (h *VendorHandler) toVendorResponse(ctx context.Context, a *vendor.Application) VendorResponse {
	return VendorResponse{
		ID:               a.ID,
		EventID:          a.EventID,
		EventName:        h.eventService.EventName(ctx, a.EventID),
		VendorName:       a.VendorName,
		ContactPerson:    a.ContactPerson,
		Email:            a.Email,
		Phone:            a.Phone,
		StallType:        a.StallType,
		AdditionalInfo:   a.AdditionalInfo,
		Status:           string(a.Status),
		RegistrationDate: a.RegistrationDate,
	}
}

// Register godoc
// @Summary 出店申請を登録
// @Tags vendors
// @Accept json
// @Produce json
// @Param request body RegisterVendorRequest true "申請情報"
// @Success 201 {object} VendorResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse "イベントが存在しない"
// @Router /vendors [post]
func (h *VendorHandler) Register(c echo.Context) error {
	var req RegisterVendorRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	a, err := h.vendorService.RegisterVendor(ctx, application.RegisterVendorInput{
		EventID:        req.EventID,
		VendorName:     req.VendorName,
		ContactPerson:  req.ContactPerson,
		Email:          req.Email,
		Phone:          req.Phone,
		StallType:      req.StallType,
		AdditionalInfo: req.AdditionalInfo,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, h.toVendorResponse(ctx, a))
}

// GetByID godoc
// @Summary 出店申請を取得
// @Tags vendors
// @Produce json
// @Param id path int true "申請ID"
// @Success 200 {object} VendorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /vendors/{id} [get]
func (h *VendorHandler) GetByID(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	a, err := h.vendorService.GetVendor(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.toVendorResponse(ctx, a))
}

// List godoc
// @Summary 出店申請一覧を取得
// @Tags vendors
// @Produce json
// @Success 200 {array} VendorResponse
// @Router /vendors [get]
func (h *VendorHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	applications, err := h.vendorService.ListVendors(ctx)
	if err != nil {
		return err
	}
	responses := make([]VendorResponse, len(applications))
	for i, a := range applications {
		responses[i] = h.toVendorResponse(ctx, a)
	}
	return c.JSON(http.StatusOK, responses)
}

// Approve godoc
// @Summary 出店申請を承認
// @Description 承認済みの申請を再承認しても成功します
// @Tags vendors
// @Produce json
// @Param id path int true "申請ID"
// @Success 200 {object} ApproveResponse
// @Failure 404 {object} ApproveResponse
// @Router /vendors/{id}/approve [post]
func (h *VendorHandler) Approve(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	ok, err := h.vendorService.ApproveVendor(c.Request().Context(), id)
	if err != nil {
		return err
	}
	status := http.StatusOK
	if !ok {
		status = http.StatusNotFound
	}
	return c.JSON(status, ApproveResponse{ID: id, Approved: ok})
}
