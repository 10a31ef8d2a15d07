package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/carnival-corner/internal/application"
	"github.com/sanosuguru/carnival-corner/internal/domain/booking"
	"github.com/sanosuguru/carnival-corner/internal/domain/event"
	"github.com/sanosuguru/carnival-corner/internal/domain/location"
	"github.com/sanosuguru/carnival-corner/internal/domain/seat"
	"github.com/sanosuguru/carnival-corner/internal/domain/vendor"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{event.ErrEventNotFound, http.StatusNotFound},
		{fmt.Errorf("取得に失敗: %w", vendor.ErrApplicationNotFound), http.StatusNotFound},
		{location.ErrCityNotFound, http.StatusNotFound},
		{event.ErrSeatAlreadyBooked, http.StatusConflict},
		{application.ErrBookingInProgress, http.StatusConflict},
		{fmt.Errorf("バリデーションエラー: %w", event.ErrInvalidRows), http.StatusBadRequest},
		{booking.ErrSeatsRequired, http.StatusBadRequest},
		{seat.ErrInvalidSeat, http.StatusBadRequest},
		{echo.NewHTTPError(http.StatusUnauthorized, "x"), http.StatusUnauthorized},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestCustomHTTPErrorHandler(t *testing.T) {
	e := echo.New()

	t.Run("ドメインエラーはメッセージを返す", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		CustomHTTPErrorHandler(event.ErrEventNotFound, c)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, event.ErrEventNotFound.Error(), body.Error)
		assert.Equal(t, http.StatusNotFound, body.Code)
	})

	t.Run("5xxは詳細を隠す", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		CustomHTTPErrorHandler(errors.New("connection reset by peer"), c)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection reset")
	})

	t.Run("HTTPErrorのメッセージを使う", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		CustomHTTPErrorHandler(echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト"), c)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "無効なリクエスト")
	})
}

func TestValidator(t *testing.T) {
	type request struct {
		Name string `validate:"required"`
	}
	v := NewValidator()

	assert.NoError(t, v.Validate(&request{Name: "x"}))

	err := v.Validate(&request{})
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestValidator_FieldMessages(t *testing.T) {
	type request struct {
		EventID int    `json:"event_id" validate:"required,gt=0"`
		Date    string `json:"date" validate:"omitempty,datetime=2006-01-02"`
		Rows    int    `json:"rows" validate:"omitempty,min=1,max=26"`
	}
	v := NewValidator()

	err := v.Validate(&request{Date: "01/12/2026", Rows: 30})
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)

	msg, ok := he.Message.(string)
	require.True(t, ok)
	assert.Contains(t, msg, "event_id は必須です")
	assert.Contains(t, msg, "date は 2006-01-02 形式で指定してください")
	assert.Contains(t, msg, "rows は 26 以下で指定してください")
}
