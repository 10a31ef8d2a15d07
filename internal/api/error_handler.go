package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sanosuguru/carnival-corner/internal/application"
	"github.com/sanosuguru/carnival-corner/internal/domain/booking"
	"github.com/sanosuguru/carnival-corner/internal/domain/event"
	"github.com/sanosuguru/carnival-corner/internal/domain/location"
	"github.com/sanosuguru/carnival-corner/internal/domain/seat"
	"github.com/sanosuguru/carnival-corner/internal/domain/vendor"
	"github.com/sanosuguru/carnival-corner/internal/pkg/logger"
)

// ErrorResponse はエラーレスポンスの統一フォーマット
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

var (
	notFoundErrors = []error{
		event.ErrEventNotFound,
		booking.ErrBookingNotFound,
		vendor.ErrApplicationNotFound,
		location.ErrCityNotFound,
	}
	conflictErrors = []error{
		event.ErrSeatAlreadyBooked,
		event.ErrGridExcludesBookedSeats,
		application.ErrBookingInProgress,
	}
	validationErrors = []error{
		event.ErrEventNameRequired,
		event.ErrInvalidPrice,
		event.ErrInvalidRows,
		event.ErrInvalidSeatsPerRow,
		event.ErrInvalidDate,
		event.ErrInvalidTime,
		event.ErrInvalidBookedSeats,
		event.ErrNoSeats,
		seat.ErrInvalidSeat,
		seat.ErrDuplicateSeat,
		booking.ErrUserNameRequired,
		booking.ErrUserEmailRequired,
		booking.ErrSeatsRequired,
		booking.ErrInvalidTotalAmount,
		vendor.ErrVendorNameRequired,
		vendor.ErrEmailRequired,
		vendor.ErrStallTypeRequired,
	}
)

// StatusFor はドメインエラーをHTTPステータスに対応付ける
func StatusFor(err error) int {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he.Code
	case isAny(err, notFoundErrors):
		return http.StatusNotFound
	case isAny(err, conflictErrors):
		return http.StatusConflict
	case isAny(err, validationErrors):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// CustomHTTPErrorHandler はカスタムエラーハンドラー
// ハンドラーが返したドメインエラーはここでステータスに変換する
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := StatusFor(err)
	message := err.Error()

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	}

	// 5xx は内部の詳細を返さずログにだけ残す
	if code >= 500 {
		logger.FromContext(c.Request().Context()).Error("サーバーエラー",
			zap.Int("status", code),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err),
		)
		message = "内部サーバーエラー"
	}

	if err := c.JSON(code, ErrorResponse{
		Error: message,
		Code:  code,
	}); err != nil {
		logger.Error("エラーレスポンス送信失敗", zap.Error(err))
	}
}
