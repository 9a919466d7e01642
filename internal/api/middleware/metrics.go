package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/workboard/taskboard/internal/api/metrics"
)

// Metrics records request count and latency per registered route. Errors are
// rendered here through the echo error handler so the final status is known.
// Requests that matched no route are grouped under "unmatched".
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.ObserveRequest(c.Request().Method, route, c.Response().Status, time.Since(start))
			return nil
		}
	}
}
