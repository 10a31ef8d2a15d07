package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/carnival-corner/internal/application"
	"github.com/sanosuguru/carnival-corner/internal/domain/event"
)

func newTestEvent() *event.Event {
	e := event.NewEvent(event.Details{
		Name:        "Lahore Music Night",
		City:        "Lahore",
		Area:        "Gulberg",
		Venue:       "Alhamra Hall",
		Date:        "2026-12-01",
		Time:        "19:30",
		Category:    "music",
		Price:       500,
		Rows:        2,
		SeatsPerRow: 3,
	})
	e.ID = 1
	e.Seating.BookedSeats = []string{"A1"}
	return e
}

func newJSONContext(e *echo.Echo, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestEventHandler_Create(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常にイベントを作成できる", func(t *testing.T) {
		mockService := new(MockEventService)
		mockService.On("CreateEvent", mock.Anything, application.CreateEventInput{
			Name:        "Lahore Music Night",
			City:        "Lahore",
			Date:        "2026-12-01",
			Price:       500,
			Rows:        2,
			SeatsPerRow: 3,
		}).Return(newTestEvent(), nil)

		handler := NewEventHandler(mockService)
		c, rec := newJSONContext(e, http.MethodPost, "/api/v1/events", `{
			"name": "Lahore Music Night",
			"city": "Lahore",
			"date": "2026-12-01",
			"price": 500,
			"rows": 2,
			"seats_per_row": 3
		}`)

		require.NoError(t, handler.Create(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp EventResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.ID)
		assert.Equal(t, []string{"A1"}, resp.Seating.BookedSeats)
		assert.Equal(t, 5, resp.AvailableSeats)
		mockService.AssertExpectations(t)
	})

	t.Run("不正なリクエスト形式でエラー", func(t *testing.T) {
		handler := NewEventHandler(new(MockEventService))
		c, _ := newJSONContext(e, http.MethodPost, "/api/v1/events", "invalid json")

		err := handler.Create(c)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})

	t.Run("バリデーションエラー", func(t *testing.T) {
		bodies := []string{
			`{"price": 100}`,
			`{"name": "x", "date": "2026/12/01"}`,
			`{"name": "x", "time": "7pm"}`,
			`{"name": "x", "rows": 27}`,
			`{"name": "x", "price": -1}`,
		}
		for _, body := range bodies {
			mockService := new(MockEventService)
			handler := NewEventHandler(mockService)
			c, _ := newJSONContext(e, http.MethodPost, "/api/v1/events", body)

			err := handler.Create(c)
			var he *echo.HTTPError
			require.ErrorAs(t, err, &he, body)
			assert.Equal(t, http.StatusBadRequest, he.Code)
			mockService.AssertNotCalled(t, "CreateEvent", mock.Anything, mock.Anything)
		}
	})
}

func TestEventHandler_GetByID(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常にイベントを取得できる", func(t *testing.T) {
		mockService := new(MockEventService)
		mockService.On("GetEvent", mock.Anything, 1).Return(newTestEvent(), nil)
		handler := NewEventHandler(mockService)

		c, rec := newJSONContext(e, http.MethodGet, "/api/v1/events/1", "")
		c.SetParamNames("id")
		c.SetParamValues("1")

		require.NoError(t, handler.GetByID(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"seats_per_row":3`)
	})

	t.Run("存在しないイベントは404", func(t *testing.T) {
		mockService := new(MockEventService)
		mockService.On("GetEvent", mock.Anything, 99).Return(nil, event.ErrEventNotFound)
		handler := NewEventHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/events/99", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("99")

		err := handler.GetByID(c)
		assert.ErrorIs(t, err, event.ErrEventNotFound)

		e.HTTPErrorHandler(err, c)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("数値でないIDは400", func(t *testing.T) {
		handler := NewEventHandler(new(MockEventService))
		c, _ := newJSONContext(e, http.MethodGet, "/api/v1/events/abc", "")
		c.SetParamNames("id")
		c.SetParamValues("abc")

		var he *echo.HTTPError
		require.ErrorAs(t, handler.GetByID(c), &he)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})
}

func TestEventHandler_List(t *testing.T) {
	e := NewTestEcho()
	mockService := new(MockEventService)
	mockService.On("ListEvents", mock.Anything, event.Filter{City: "Lahore", Category: "music"}).
		Return([]*event.Event{newTestEvent()}, nil)
	handler := NewEventHandler(mockService)

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/events?city=Lahore&category=music", "")

	require.NoError(t, handler.List(c))
	var resp []EventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
	mockService.AssertExpectations(t)
}

func TestEventHandler_Update(t *testing.T) {
	e := NewTestEcho()

	t.Run("指定したフィールドだけをパッチに含める", func(t *testing.T) {
		mockService := new(MockEventService)
		updated := newTestEvent()
		updated.Price = 800
		mockService.On("UpdateEvent", mock.Anything, 1, mock.MatchedBy(func(p event.Patch) bool {
			return p.Price != nil && *p.Price == 800 && p.Name == nil && p.Rows == nil
		})).Return(updated, nil)
		handler := NewEventHandler(mockService)

		c, rec := newJSONContext(e, http.MethodPatch, "/api/v1/events/1", `{"price": 800}`)
		c.SetParamNames("id")
		c.SetParamValues("1")

		require.NoError(t, handler.Update(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"price":800`)
		mockService.AssertExpectations(t)
	})

	t.Run("グリッド縮小の競合は409", func(t *testing.T) {
		mockService := new(MockEventService)
		mockService.On("UpdateEvent", mock.Anything, 1, mock.Anything).Return(nil, event.ErrGridExcludesBookedSeats)
		handler := NewEventHandler(mockService)

		c, rec := newJSONContext(e, http.MethodPatch, "/api/v1/events/1", `{"rows": 1}`)
		c.SetParamNames("id")
		c.SetParamValues("1")

		err := handler.Update(c)
		require.ErrorIs(t, err, event.ErrGridExcludesBookedSeats)
		e.HTTPErrorHandler(err, c)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestEventHandler_Delete(t *testing.T) {
	e := NewTestEcho()
	mockService := new(MockEventService)
	mockService.On("DeleteEvent", mock.Anything, 1).Return(nil)
	handler := NewEventHandler(mockService)

	c, rec := newJSONContext(e, http.MethodDelete, "/api/v1/events/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, handler.Delete(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
