package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/workboard/taskboard/internal/api/middleware"
	"github.com/workboard/taskboard/internal/core/domain"
)

// ctxUser returns the session user injected by the Auth middleware. Its absence
// means the route was registered without Auth.
func ctxUser(c echo.Context) (*domain.CurrentUser, error) {
	u, _ := c.Get(middleware.ContextUser).(*domain.CurrentUser)
	if u == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return u, nil
}

// bindValid binds the request into req and validates it.
func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
