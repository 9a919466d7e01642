package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/workboard/taskboard/internal/core/domain"
	"github.com/workboard/taskboard/internal/core/query"
	"github.com/workboard/taskboard/internal/core/store"
)

// ProjectHandler handles HTTP requests for projects and their teams.
type ProjectHandler struct {
	store   *store.Store
	queries *query.Service
}

func NewProjectHandler(st *store.Store, queries *query.Service) *ProjectHandler {
	return &ProjectHandler{store: st, queries: queries}
}

// List handles GET /v1/projects.
//
// @Summary      List visible projects, newest start date first
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        q       query     string  false  "Name or description contains"
// @Param        status  query     string  false  "todo, in-progress, review or done"
// @Param        page    query     int     false  "Page number, from 1"
// @Success      200     {object}  query.Page[domain.Project]
// @Router       /v1/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	var q projectListQuery
	if err := bindValid(c, &q); err != nil {
		return err
	}
	p := h.queries.ListProjects(query.ProjectFilter{Search: q.Q, Status: domain.Status(q.Status)}, q.Page)
	return c.JSON(http.StatusOK, p)
}

// Get handles GET /v1/projects/:id.
//
// @Summary      Get a project with tasks, team and progress
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  query.ProjectDetail
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	detail, err := h.queries.ProjectDetail(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// Tasks handles GET /v1/projects/:id/tasks.
//
// @Summary      Visible tasks of a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {array}   domain.Task
// @Router       /v1/projects/{id}/tasks [get]
func (h *ProjectHandler) Tasks(c echo.Context) error {
	return c.JSON(http.StatusOK, h.queries.TasksByProject(c.Param("id")))
}

// Create handles POST /v1/projects.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      projectRequest  true  "Project"
// @Success      201   {object}  domain.Project
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	var req projectRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, h.store.AddProject(req.toInput()))
}

// Update handles PUT /v1/projects/:id.
//
// @Summary      Replace a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Project id"
// @Param        body  body      projectRequest  true  "Project"
// @Success      200   {object}  domain.Project
// @Failure      404   {object}  errorResponse
// @Router       /v1/projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	var req projectRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	next, ok := h.store.EditProject(c.Param("id"), req.applyTo)
	if !ok {
		return domain.ErrProjectNotFound
	}
	return c.JSON(http.StatusOK, next)
}

// Delete handles DELETE /v1/projects/:id. The project's tasks are kept.
//
// @Summary      Delete a project
// @Tags         projects
// @Security     BearerAuth
// @Param        id   path  string  true  "Project id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	if !h.store.DeleteProject(c.Param("id")) {
		return domain.ErrProjectNotFound
	}
	return c.NoContent(http.StatusNoContent)
}

// AddMember handles PUT /v1/projects/:id/team/:employee_id.
//
// @Summary      Add an employee to the project team
// @Tags         projects
// @Security     BearerAuth
// @Param        id           path  string  true  "Project id"
// @Param        employee_id  path  string  true  "Employee id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/projects/{id}/team/{employee_id} [put]
func (h *ProjectHandler) AddMember(c echo.Context) error {
	if !h.store.AddTeamMember(c.Param("id"), c.Param("employee_id")) {
		return domain.ErrProjectNotFound
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveMember handles DELETE /v1/projects/:id/team/:employee_id.
//
// @Summary      Remove an employee from the project team
// @Tags         projects
// @Security     BearerAuth
// @Param        id           path  string  true  "Project id"
// @Param        employee_id  path  string  true  "Employee id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/projects/{id}/team/{employee_id} [delete]
func (h *ProjectHandler) RemoveMember(c echo.Context) error {
	if !h.store.RemoveTeamMember(c.Param("id"), c.Param("employee_id")) {
		return domain.ErrProjectNotFound
	}
	return c.NoContent(http.StatusNoContent)
}
