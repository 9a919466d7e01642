package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/workboard/taskboard/internal/core/query"
)

// QueryHandler serves the cross-collection views.
type QueryHandler struct {
	queries *query.Service
	now     func() time.Time
}

func NewQueryHandler(queries *query.Service) *QueryHandler {
	return &QueryHandler{queries: queries, now: time.Now}
}

// Dashboard handles GET /v1/dashboard.
//
// @Summary      Dashboard counters for the session user
// @Tags         views
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  query.Dashboard
// @Router       /v1/dashboard [get]
func (h *QueryHandler) Dashboard(c echo.Context) error {
	return c.JSON(http.StatusOK, h.queries.Dashboard(h.now()))
}

// Search handles GET /v1/search.
//
// @Summary      Search visible tasks and projects
// @Tags         views
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  true  "Search text"
// @Success      200  {object}  query.SearchResult
// @Failure      400  {object}  errorResponse
// @Router       /v1/search [get]
func (h *QueryHandler) Search(c echo.Context) error {
	var q searchQuery
	if err := bindValid(c, &q); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.queries.Search(q.Q))
}
