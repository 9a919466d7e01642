package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/workboard/taskboard/internal/api/docs"
	"github.com/workboard/taskboard/internal/api/handler"
	"github.com/workboard/taskboard/internal/api/middleware"
	"github.com/workboard/taskboard/internal/core/domain"
	"github.com/workboard/taskboard/internal/core/ports"
	"github.com/workboard/taskboard/internal/core/query"
	"github.com/workboard/taskboard/internal/core/session"
	"github.com/workboard/taskboard/internal/core/store"
)

// RouterDeps carries everything the HTTP layer needs.
type RouterDeps struct {
	Store   *store.Store
	Queries *query.Service
	Gate    *session.Gate
	Tokens  *session.Tokens
	// Registrar is nil unless the auth strategy keeps its own credentials.
	Registrar ports.Registrar
	// Checkers are pinged by the readiness probe, keyed by dependency name.
	Checkers map[string]handler.Checker
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(middleware.Metrics())
	e.Use(echomiddleware.Recover())

	loading := func() bool { return deps.Store.State().IsLoading }
	requireLoaded := middleware.RequireLoaded(loading)
	authMiddleware := middleware.Auth(deps.Tokens, deps.Gate)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Gate, deps.Tokens, deps.Store, deps.Registrar, deps.Log)
	taskHandler := handler.NewTaskHandler(deps.Store, deps.Queries)
	projectHandler := handler.NewProjectHandler(deps.Store, deps.Queries)
	employeeHandler := handler.NewEmployeeHandler(deps.Store, deps.Queries)
	queryHandler := handler.NewQueryHandler(deps.Queries)

	// --- Health probes and tooling (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(loading, deps.Checkers)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – loaded and dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/login", authHandler.Login, requireLoaded)
	auth.POST("/register", authHandler.Register, requireLoaded)
	auth.POST("/logout", authHandler.Logout)

	// --- Protected routes ---
	v1 := e.Group("/v1", requireLoaded, authMiddleware)
	v1.GET("/me", authHandler.Me)
	v1.GET("/dashboard", queryHandler.Dashboard)
	v1.GET("/search", queryHandler.Search)

	tasks := v1.Group("/tasks")
	tasks.GET("", taskHandler.List)
	tasks.GET("/due-soon", taskHandler.DueSoon)
	tasks.GET("/:id", taskHandler.Get)
	tasks.POST("", taskHandler.Create, adminOnly)
	tasks.PUT("/:id", taskHandler.Update, adminOnly)
	tasks.DELETE("/:id", taskHandler.Delete, adminOnly)

	projects := v1.Group("/projects")
	projects.GET("", projectHandler.List)
	projects.GET("/:id", projectHandler.Get)
	projects.GET("/:id/tasks", projectHandler.Tasks)
	projects.POST("", projectHandler.Create, adminOnly)
	projects.PUT("/:id", projectHandler.Update, adminOnly)
	projects.DELETE("/:id", projectHandler.Delete, adminOnly)
	projects.PUT("/:id/team/:employee_id", projectHandler.AddMember, adminOnly)
	projects.DELETE("/:id/team/:employee_id", projectHandler.RemoveMember, adminOnly)

	employees := v1.Group("/employees")
	employees.GET("", employeeHandler.List)
	employees.GET("/:id", employeeHandler.Get)
	employees.GET("/:id/tasks", employeeHandler.Tasks)
	employees.GET("/:id/projects", employeeHandler.Projects)
	employees.POST("", employeeHandler.Create, adminOnly)
	employees.PUT("/:id", employeeHandler.Update, adminOnly)
	employees.DELETE("/:id", employeeHandler.Delete, adminOnly)

	return e
}

// requestLogger writes one zerolog line per request after the response is
// rendered.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error()
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
