package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/workboard/taskboard/internal/core/domain"
	"github.com/workboard/taskboard/internal/core/session"
)

// Context keys set by Auth.
const (
	ContextUser = "user"
	ContextRole = "role"
)

// TokenVerifier validates a raw bearer token.
type TokenVerifier interface {
	Verify(raw string) (*session.Claims, error)
}

// SessionReader exposes the live session user.
type SessionReader interface {
	Current() *domain.CurrentUser
}

// Auth validates the bearer token and requires it to belong to the live
// session. Tokens issued before a logout or a login as someone else stop
// working. The session user and role are stored in the echo context.
func Auth(tokens TokenVerifier, sessions SessionReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user := sessions.Current()
			if !claims.Matches(user) {
				return echo.NewHTTPError(http.StatusUnauthorized, "session ended")
			}

			c.Set(ContextUser, user)
			c.Set(ContextRole, string(user.Role))
			return next(c)
		}
	}
}
