package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/workboard/taskboard/internal/api/metrics"
	"github.com/workboard/taskboard/internal/core/domain"
	"github.com/workboard/taskboard/internal/core/ports"
	"github.com/workboard/taskboard/internal/core/store"
)

// SessionGate is the single-session login gate.
type SessionGate interface {
	Login(ctx context.Context, creds ports.Credentials) (*domain.CurrentUser, error)
	Logout(ctx context.Context)
	Current() *domain.CurrentUser
}

// TokenIssuer signs bearer tokens for a session user.
type TokenIssuer interface {
	Issue(u *domain.CurrentUser) (string, time.Time, error)
}

type AuthHandler struct {
	gate      SessionGate
	tokens    TokenIssuer
	store     *store.Store
	registrar ports.Registrar
	log       zerolog.Logger
}

// NewAuthHandler wires the auth endpoints. registrar may be nil when the active
// strategy keeps no secrets of its own.
func NewAuthHandler(gate SessionGate, tokens TokenIssuer, st *store.Store, registrar ports.Registrar, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{gate: gate, tokens: tokens, store: st, registrar: registrar, log: log}
}

// Login opens the session and returns a bearer token bound to it.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	role := domain.Role(req.Role)
	if role == "" {
		role = domain.RoleEmployee
	}

	user, err := h.gate.Login(c.Request().Context(), ports.Credentials{
		Email:    strings.TrimSpace(req.Email),
		Role:     role,
		Password: req.Password,
	})
	metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
	if err != nil {
		return err
	}

	return h.respond(c, http.StatusOK, user)
}

// Register adds an employee for the caller and signs them in.
//
// @Summary      Register a new employee
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	email := strings.TrimSpace(req.Email)

	emp, ok := h.store.AddEmployeeIfEmailFree(store.EmployeeInput{
		Name:  strings.TrimSpace(req.Name),
		Role:  string(domain.RoleEmployee),
		Email: email,
	})
	if !ok {
		return domain.ErrUserExists
	}
	if h.registrar != nil {
		if err := h.registrar.Register(ctx, emp, req.Password); err != nil {
			h.store.DeleteEmployee(emp.ID)
			return err
		}
	}

	user, err := h.gate.Login(ctx, ports.Credentials{
		Email:    emp.Email,
		Role:     domain.RoleEmployee,
		Password: req.Password,
	})
	metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
	if err != nil {
		return err
	}

	h.log.Info().Str("employee_id", emp.ID).Msg("employee registered")
	return h.respond(c, http.StatusCreated, user)
}

// Logout ends the session. It always succeeds.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.gate.Logout(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

// Me returns the session user.
//
// @Summary      Current session user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.CurrentUser
// @Failure      401  {object}  errorResponse
// @Router       /v1/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) respond(c echo.Context, code int, user *domain.CurrentUser) error {
	token, exp, err := h.tokens.Issue(user)
	if err != nil {
		return err
	}
	return c.JSON(code, authResponse{Token: token, ExpiresAt: exp, User: user})
}

func loginResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrInvalidRole):
		return "invalid_role"
	default:
		return "error"
	}
}
