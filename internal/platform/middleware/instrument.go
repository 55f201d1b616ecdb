package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/filad/filad/internal/platform/metrics"
)

// Instrument records request count and latency metrics. The route path
// (not the raw URL) is used as the label to keep cardinality bounded.
func Instrument() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			metrics.RecordHTTPRequest(c.Request().Method, path, c.Response().Status, time.Since(start))

			return err
		}
	}
}
