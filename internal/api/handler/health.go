package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Checker pings one dependency.
type Checker func(ctx context.Context) error

// HealthHandler serves GET /health, the liveness probe.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Liveness returns 200 while the process is up.
//
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// ReadinessHandler serves GET /health/ready. The service is ready once the
// initial load has finished and every configured dependency answers.
type ReadinessHandler struct {
	loading  func() bool
	checkers map[string]Checker
	timeout  time.Duration
}

func NewReadinessHandler(loading func() bool, checkers map[string]Checker) *ReadinessHandler {
	return &ReadinessHandler{loading: loading, checkers: checkers, timeout: 3 * time.Second}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Loading      bool                        `json:"loading"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Readiness reports the load state and dependency health.
//
// @Summary      Readiness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  readinessResponse
// @Failure      503  {object}  readinessResponse
// @Router       /health/ready [get]
func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.checkers))
	healthy := true
	for name, check := range h.checkers {
		if err := check(ctx); err != nil {
			deps[name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
			continue
		}
		deps[name] = dependencyStatus{Status: "ok"}
	}

	loading := h.loading()
	status := "ok"
	httpStatus := http.StatusOK
	switch {
	case !healthy:
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	case loading:
		status = "loading"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Loading:      loading,
		Dependencies: deps,
	})
}
