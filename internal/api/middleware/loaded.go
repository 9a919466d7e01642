package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireLoaded answers 503 until the initial data load has finished.
func RequireLoaded(loading func() bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if loading() {
				c.Response().Header().Set("Retry-After", "1")
				return echo.NewHTTPError(http.StatusServiceUnavailable, "data is still loading")
			}
			return next(c)
		}
	}
}
