package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/workboard/taskboard/internal/core/domain"
	"github.com/workboard/taskboard/internal/core/query"
	"github.com/workboard/taskboard/internal/core/store"
)

// TaskHandler handles HTTP requests for tasks.
type TaskHandler struct {
	store   *store.Store
	queries *query.Service
	now     func() time.Time
}

func NewTaskHandler(st *store.Store, queries *query.Service) *TaskHandler {
	return &TaskHandler{store: st, queries: queries, now: time.Now}
}

type taskPage struct {
	Items      []taskResponse `json:"items"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PerPage    int            `json:"per_page"`
	TotalPages int            `json:"total_pages"`
}

func (h *TaskHandler) page(p query.Page[domain.Task]) taskPage {
	return taskPage{
		Items:      toTaskResponses(p.Items, h.now()),
		Total:      p.Total,
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalPages: p.TotalPages,
	}
}

// List handles GET /v1/tasks.
//
// @Summary      List visible tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        q            query     string  false  "Title or description contains"
// @Param        status       query     string  false  "todo, in-progress, review or done"
// @Param        priority     query     string  false  "low, medium or high"
// @Param        project_id   query     string  false  "Project id"
// @Param        assignee_id  query     string  false  "Assignee id"
// @Param        page         query     int     false  "Page number, from 1"
// @Success      200          {object}  taskPage
// @Failure      400          {object}  errorResponse
// @Router       /v1/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	var q taskListQuery
	if err := bindValid(c, &q); err != nil {
		return err
	}
	p := h.queries.ListTasks(query.TaskFilter{
		Search:     q.Q,
		Status:     domain.Status(q.Status),
		Priority:   domain.Priority(q.Priority),
		ProjectID:  q.ProjectID,
		AssigneeID: q.AssigneeID,
	}, q.Page)
	return c.JSON(http.StatusOK, h.page(p))
}

// DueSoon handles GET /v1/tasks/due-soon.
//
// @Summary      Tasks due within the next seven days
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page number, from 1"
// @Success      200   {object}  taskPage
// @Router       /v1/tasks/due-soon [get]
func (h *TaskHandler) DueSoon(c echo.Context) error {
	var q pageQuery
	if err := bindValid(c, &q); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.page(h.queries.DueSoon(h.now(), q.Page)))
}

// Get handles GET /v1/tasks/:id.
//
// @Summary      Get a task with its project and assignee
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  query.TaskDetail
// @Failure      404  {object}  errorResponse
// @Router       /v1/tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	detail, err := h.queries.TaskDetail(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// Create handles POST /v1/tasks.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      taskRequest  true  "Task"
// @Success      201   {object}  taskResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req taskRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	now := h.now()
	in := req.toInput()
	if in.Status == domain.StatusDone {
		in.CompletedAt = &now
	}
	task := h.store.AddTask(in)
	return c.JSON(http.StatusCreated, toTaskResponse(task, now))
}

// Update handles PUT /v1/tasks/:id. Moving a task into done stamps its
// completion time.
//
// @Summary      Replace a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Task id"
// @Param        body  body      taskRequest  true  "Task"
// @Success      200   {object}  taskResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	var req taskRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	now := h.now()
	next, ok := h.store.EditTask(c.Param("id"), func(prev domain.Task) domain.Task {
		return domain.StampCompletion(prev, req.applyTo(prev), now)
	})
	if !ok {
		return domain.ErrTaskNotFound
	}
	return c.JSON(http.StatusOK, toTaskResponse(next, now))
}

// Delete handles DELETE /v1/tasks/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Security     BearerAuth
// @Param        id   path  string  true  "Task id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	if !h.store.DeleteTask(c.Param("id")) {
		return domain.ErrTaskNotFound
	}
	return c.NoContent(http.StatusNoContent)
}
