package handler

import (
	"strings"
	"time"

	"github.com/workboard/taskboard/internal/core/domain"
	"github.com/workboard/taskboard/internal/core/store"
)

func (r taskRequest) toInput() store.TaskInput {
	return store.TaskInput{
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,
		Status:      domain.Status(r.Status),
		Priority:    domain.Priority(r.Priority),
		ProjectID:   r.ProjectID,
		AssigneeID:  r.AssigneeID,
		DueDate:     domain.Date(r.DueDate),
	}
}

// applyTo overwrites the editable fields of t.
func (r taskRequest) applyTo(t domain.Task) domain.Task {
	in := r.toInput()
	t.Title = in.Title
	t.Description = in.Description
	t.Status = in.Status
	t.Priority = in.Priority
	t.ProjectID = in.ProjectID
	t.AssigneeID = in.AssigneeID
	t.DueDate = in.DueDate
	return t
}

func (r projectRequest) toInput() store.ProjectInput {
	return store.ProjectInput{
		Name:        strings.TrimSpace(r.Name),
		Description: r.Description,
		StartDate:   domain.Date(r.StartDate),
		EndDate:     domain.Date(r.EndDate),
		Status:      domain.Status(r.Status),
		TeamIDs:     r.TeamIDs,
	}
}

func (r projectRequest) applyTo(p domain.Project) domain.Project {
	in := r.toInput()
	p.Name = in.Name
	p.Description = in.Description
	p.StartDate = in.StartDate
	p.EndDate = in.EndDate
	p.Status = in.Status
	p.TeamIDs = in.TeamIDs
	return p
}

func (r employeeRequest) toInput() store.EmployeeInput {
	return store.EmployeeInput{
		Name:   strings.TrimSpace(r.Name),
		Role:   strings.TrimSpace(r.Role),
		Avatar: r.Avatar,
		Email:  strings.TrimSpace(r.Email),
	}
}

func (r employeeRequest) applyTo(e domain.Employee) domain.Employee {
	in := r.toInput()
	e.Name = in.Name
	e.Role = in.Role
	e.Avatar = in.Avatar
	e.Email = in.Email
	return e
}

func toTaskResponse(t domain.Task, now time.Time) taskResponse {
	return taskResponse{
		Task:          t,
		StatusLabel:   t.Status.Label(),
		PriorityLabel: t.Priority.Label(),
		Overdue:       t.IsOverdue(now),
	}
}

func toTaskResponses(tasks []domain.Task, now time.Time) []taskResponse {
	out := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = toTaskResponse(t, now)
	}
	return out
}
