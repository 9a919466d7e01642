package handler

import (
	"time"

	"github.com/workboard/taskboard/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin employee"`
	Password string `json:"password" validate:"max=256"`
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required,max=120"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"max=256"`
}

type authResponse struct {
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expires_at"`
	User      *domain.CurrentUser `json:"user"`
}

// --- Tasks ---

type taskRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Status      string `json:"status"      validate:"required,oneof=todo in-progress review done"`
	Priority    string `json:"priority"    validate:"required,oneof=low medium high"`
	ProjectID   string `json:"project_id"  validate:"max=64"`
	AssigneeID  string `json:"assignee_id" validate:"max=64"`
	DueDate     string `json:"due_date"    validate:"omitempty,datetime=2006-01-02"`
}

type taskListQuery struct {
	Q          string `query:"q"`
	Status     string `query:"status"      validate:"omitempty,oneof=todo in-progress review done"`
	Priority   string `query:"priority"    validate:"omitempty,oneof=low medium high"`
	ProjectID  string `query:"project_id"`
	AssigneeID string `query:"assignee_id"`
	Page       int    `query:"page"        validate:"min=0,max=100000"`
}

// taskResponse adds the derived labels shown next to a task.
type taskResponse struct {
	domain.Task
	StatusLabel   string `json:"status_label"`
	PriorityLabel string `json:"priority_label"`
	Overdue       bool   `json:"overdue"`
}

// --- Projects ---

type projectRequest struct {
	Name        string   `json:"name"        validate:"required,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	StartDate   string   `json:"start_date"  validate:"omitempty,datetime=2006-01-02"`
	EndDate     string   `json:"end_date"    validate:"omitempty,datetime=2006-01-02"`
	Status      string   `json:"status"      validate:"required,oneof=todo in-progress review done"`
	TeamIDs     []string `json:"team_ids"    validate:"dive,required"`
}

type projectListQuery struct {
	Q      string `query:"q"`
	Status string `query:"status" validate:"omitempty,oneof=todo in-progress review done"`
	Page   int    `query:"page"   validate:"min=0,max=100000"`
}

// --- Employees ---

type employeeRequest struct {
	Name   string `json:"name"   validate:"required,max=120"`
	Role   string `json:"role"   validate:"max=120"`
	Avatar string `json:"avatar" validate:"omitempty,url"`
	Email  string `json:"email"  validate:"required,email"`
}

type employeeListQuery struct {
	Q    string `query:"q"`
	Page int    `query:"page" validate:"min=0,max=100000"`
}

// --- Misc ---

type pageQuery struct {
	Page int `query:"page" validate:"min=0,max=100000"`
}

type searchQuery struct {
	Q string `query:"q" validate:"max=200"`
}
