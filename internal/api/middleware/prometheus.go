package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/carnival-corner/internal/api"
	"github.com/sanosuguru/carnival-corner/internal/pkg/metrics"
)

// unmatchedRoute は未登録パスのラベル（実パスを使うとラベルが無制限に増える）
const unmatchedRoute = "unmatched"

// PrometheusMiddleware はHTTPメトリクスを収集するミドルウェア
// ラベルはルートパターン（/api/v1/events/:id など）で付け、イベントIDごとには分けない
func PrometheusMiddleware(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			m.HTTPRequestsInFlight.Inc()
			defer m.HTTPRequestsInFlight.Dec()

			start := time.Now()
			err := next(c)
			elapsed := time.Since(start).Seconds()

			route := c.Path()
			if route == "" {
				route = unmatchedRoute
			}
			method := c.Request().Method
			m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(responseStatus(c, err))).Inc()
			m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed)

			return err
		}
	}
}

// responseStatus はエラーハンドラーが最終的に返すステータスを求める
func responseStatus(c echo.Context, err error) int {
	if err != nil {
		return api.StatusFor(err)
	}
	return c.Response().Status
}
