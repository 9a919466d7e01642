package middleware

import (
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/workboard/taskboard/internal/core/domain"
)

// RBAC lets through only session users holding one of roles. It reads the user
// stored by Auth, so it must run after it. Rejections surface as
// domain.ErrForbidden for the error handler to render.
func RBAC(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(ContextUser).(*domain.CurrentUser)
			if user == nil || !slices.Contains(roles, user.Role) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
