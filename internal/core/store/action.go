package store

import "github.com/workboard/taskboard/internal/core/domain"

// State is the full application state. Slices are never modified in place once
// published, so a State returned by Store.State stays valid after later writes.
type State struct {
	Tasks       []domain.Task
	Projects    []domain.Project
	Employees   []domain.Employee
	CurrentUser *domain.CurrentUser
	IsLoading   bool
	Error       string
}

// Action is a state transition understood by Reduce.
type Action interface {
	// Kind is a stable name used for logs and metrics.
	Kind() string
}

type (
	SetTasks struct{ Tasks []domain.Task }
	AddTask  struct{ Task domain.Task }
	// UpdateTask replaces the task with the same ID.
	UpdateTask struct{ Task domain.Task }
	DeleteTask struct{ ID string }

	SetProjects   struct{ Projects []domain.Project }
	AddProject    struct{ Project domain.Project }
	UpdateProject struct{ Project domain.Project }
	DeleteProject struct{ ID string }

	SetEmployees   struct{ Employees []domain.Employee }
	AddEmployee    struct{ Employee domain.Employee }
	UpdateEmployee struct{ Employee domain.Employee }
	DeleteEmployee struct{ ID string }

	// SetCurrentUser with a nil User ends the session.
	SetCurrentUser struct{ User *domain.CurrentUser }
	SetLoading     struct{ Loading bool }
	// SetError with an empty Message clears the error slot.
	SetError struct{ Message string }
)

func (SetTasks) Kind() string       { return "set_tasks" }
func (AddTask) Kind() string        { return "add_task" }
func (UpdateTask) Kind() string     { return "update_task" }
func (DeleteTask) Kind() string     { return "delete_task" }
func (SetProjects) Kind() string    { return "set_projects" }
func (AddProject) Kind() string     { return "add_project" }
func (UpdateProject) Kind() string  { return "update_project" }
func (DeleteProject) Kind() string  { return "delete_project" }
func (SetEmployees) Kind() string   { return "set_employees" }
func (AddEmployee) Kind() string    { return "add_employee" }
func (UpdateEmployee) Kind() string { return "update_employee" }
func (DeleteEmployee) Kind() string { return "delete_employee" }
func (SetCurrentUser) Kind() string { return "set_current_user" }
func (SetLoading) Kind() string     { return "set_loading" }
func (SetError) Kind() string       { return "set_error" }
