package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/workboard/taskboard/internal/core/domain"
	"github.com/workboard/taskboard/internal/core/query"
	"github.com/workboard/taskboard/internal/core/store"
)

// EmployeeHandler handles HTTP requests for employees.
type EmployeeHandler struct {
	store   *store.Store
	queries *query.Service
}

func NewEmployeeHandler(st *store.Store, queries *query.Service) *EmployeeHandler {
	return &EmployeeHandler{store: st, queries: queries}
}

// List handles GET /v1/employees.
//
// @Summary      List employees by name
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        q     query     string  false  "Name, email or job title contains"
// @Param        page  query     int     false  "Page number, from 1"
// @Success      200   {object}  query.Page[domain.Employee]
// @Router       /v1/employees [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	var q employeeListQuery
	if err := bindValid(c, &q); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.queries.ListEmployees(q.Q, q.Page))
}

// Get handles GET /v1/employees/:id.
//
// @Summary      Employee profile
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Employee id"
// @Success      200  {object}  query.EmployeeDetail
// @Failure      404  {object}  errorResponse
// @Router       /v1/employees/{id} [get]
func (h *EmployeeHandler) Get(c echo.Context) error {
	detail, err := h.queries.EmployeeDetail(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// Tasks handles GET /v1/employees/:id/tasks.
//
// @Summary      Tasks assigned to an employee
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Employee id"
// @Success      200  {array}   domain.Task
// @Router       /v1/employees/{id}/tasks [get]
func (h *EmployeeHandler) Tasks(c echo.Context) error {
	return c.JSON(http.StatusOK, h.queries.TasksByEmployee(c.Param("id")))
}

// Projects handles GET /v1/employees/:id/projects.
//
// @Summary      Projects an employee belongs to
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Employee id"
// @Success      200  {array}   domain.Project
// @Router       /v1/employees/{id}/projects [get]
func (h *EmployeeHandler) Projects(c echo.Context) error {
	return c.JSON(http.StatusOK, h.queries.ProjectsByEmployee(c.Param("id")))
}

// Create handles POST /v1/employees.
//
// @Summary      Create an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      employeeRequest  true  "Employee"
// @Success      201   {object}  domain.Employee
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/employees [post]
func (h *EmployeeHandler) Create(c echo.Context) error {
	var req employeeRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	emp, ok := h.store.AddEmployeeIfEmailFree(req.toInput())
	if !ok {
		return domain.ErrUserExists
	}
	return c.JSON(http.StatusCreated, emp)
}

// Update handles PUT /v1/employees/:id.
//
// @Summary      Replace an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Employee id"
// @Param        body  body      employeeRequest  true  "Employee"
// @Success      200   {object}  domain.Employee
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/employees/{id} [put]
func (h *EmployeeHandler) Update(c echo.Context) error {
	var req employeeRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	next, err := h.store.EditEmployee(c.Param("id"), req.applyTo)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, next)
}

// Delete handles DELETE /v1/employees/:id. References from tasks and teams are
// left in place and resolve as unassigned.
//
// @Summary      Delete an employee
// @Tags         employees
// @Security     BearerAuth
// @Param        id   path  string  true  "Employee id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c echo.Context) error {
	if !h.store.DeleteEmployee(c.Param("id")) {
		return domain.ErrEmployeeNotFound
	}
	return c.NoContent(http.StatusNoContent)
}
