package store

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/workboard/taskboard/internal/core/domain"
)

// TaskInput carries the caller supplied fields of a new task. ID and CreatedAt
// are assigned by the store.
type TaskInput struct {
	Title       string
	Description string
	Status      domain.Status
	Priority    domain.Priority
	ProjectID   string
	AssigneeID  string
	DueDate     domain.Date
	CompletedAt *time.Time
}

// ProjectInput carries the fields of a new project.
type ProjectInput struct {
	Name        string
	Description string
	StartDate   domain.Date
	EndDate     domain.Date
	Status      domain.Status
	TeamIDs     []string
}

// EmployeeInput carries the fields of a new employee.
type EmployeeInput struct {
	Name   string
	Role   string
	Avatar string
	Email  string
}

// Observer is notified after every applied action.
type Observer func(Action)

// Store owns the collections and the session user. All mutation goes through
// Dispatch, which applies Reduce under a single lock.
type Store struct {
	mu       sync.RWMutex
	state    State
	now      func() time.Time
	newID    func() string
	observer Observer
	log      zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc overrides id generation.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithObserver registers a callback run after each applied action.
func WithObserver(o Observer) Option {
	return func(s *Store) { s.observer = o }
}

// New returns an empty store in the loading state.
func New(log zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		state: State{IsLoading: true},
		now:   func() time.Time { return time.Now().UTC() },
		newID: generateID,
		log:   log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// generateID returns a UUIDv7: a millisecond timestamp followed by random bits.
func generateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies a single action.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	s.mu.Unlock()
	s.notify(a)
}

// DispatchBatch applies actions atomically. Nothing is applied when ctx is
// already done, so a torn-down caller can never write late.
func (s *Store) DispatchBatch(ctx context.Context, actions ...Action) error {
	s.mu.Lock()
	if err := ctx.Err(); err != nil {
		s.mu.Unlock()
		return err
	}
	next := s.state
	for _, a := range actions {
		next = Reduce(next, a)
	}
	s.state = next
	s.mu.Unlock()

	for _, a := range actions {
		s.notify(a)
	}
	return nil
}

func (s *Store) notify(a Action) {
	s.log.Debug().Str("action", a.Kind()).Msg("action applied")
	if s.observer != nil {
		s.observer(a)
	}
}

// --- Tasks ---

// AddTask assigns a fresh id and creation time and appends the task.
func (s *Store) AddTask(in TaskInput) domain.Task {
	t := domain.Task{
		ID:          s.newID(),
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		ProjectID:   in.ProjectID,
		AssigneeID:  in.AssigneeID,
		DueDate:     in.DueDate,
		CreatedAt:   s.now(),
		CompletedAt: in.CompletedAt,
	}
	s.Dispatch(AddTask{Task: t})
	s.log.Info().Str("task_id", t.ID).Str("project_id", t.ProjectID).Msg("task created")
	return t
}

// UpdateTask replaces the stored task verbatim. Completion bookkeeping is the
// caller's job. It reports whether a task with that id existed.
func (s *Store) UpdateTask(t domain.Task) bool {
	return s.apply(UpdateTask{Task: t}, func(st State) bool {
		return slices.ContainsFunc(st.Tasks, func(x domain.Task) bool { return x.ID == t.ID })
	})
}

// EditTask runs edit over the stored task and saves the result under one lock,
// so concurrent edits of the same task never overwrite each other.
func (s *Store) EditTask(id string, edit func(domain.Task) domain.Task) (domain.Task, bool) {
	s.mu.Lock()
	i := slices.IndexFunc(s.state.Tasks, func(t domain.Task) bool { return t.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return domain.Task{}, false
	}
	next := edit(s.state.Tasks[i])
	next.ID = id
	a := UpdateTask{Task: next}
	s.state = Reduce(s.state, a)
	s.mu.Unlock()
	s.notify(a)
	return next, true
}

// DeleteTask removes the task and reports whether it existed.
func (s *Store) DeleteTask(id string) bool {
	return s.apply(DeleteTask{ID: id}, func(st State) bool {
		return slices.ContainsFunc(st.Tasks, func(x domain.Task) bool { return x.ID == id })
	})
}

// --- Projects ---

// AddProject assigns a fresh id and appends the project. Repeated team ids are
// dropped.
func (s *Store) AddProject(in ProjectInput) domain.Project {
	p := domain.Project{
		ID:          s.newID(),
		Name:        in.Name,
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Status:      in.Status,
		TeamIDs:     domain.UniqueTeam(in.TeamIDs),
	}
	s.Dispatch(AddProject{Project: p})
	s.log.Info().Str("project_id", p.ID).Int("team_size", len(p.TeamIDs)).Msg("project created")
	return p
}

// UpdateProject replaces the stored project, dropping repeated team ids.
func (s *Store) UpdateProject(p domain.Project) bool {
	p.TeamIDs = domain.UniqueTeam(p.TeamIDs)
	return s.apply(UpdateProject{Project: p}, func(st State) bool {
		return slices.ContainsFunc(st.Projects, func(x domain.Project) bool { return x.ID == p.ID })
	})
}

// DeleteProject removes the project. Its tasks are kept.
func (s *Store) DeleteProject(id string) bool {
	return s.apply(DeleteProject{ID: id}, func(st State) bool {
		return slices.ContainsFunc(st.Projects, func(x domain.Project) bool { return x.ID == id })
	})
}

// AddTeamMember appends employeeID to the project's team unless present. It
// reports whether the project exists.
func (s *Store) AddTeamMember(projectID, employeeID string) bool {
	_, ok := s.EditProject(projectID, func(p domain.Project) domain.Project {
		return p.WithMember(employeeID)
	})
	return ok
}

// RemoveTeamMember drops employeeID from the project's team.
func (s *Store) RemoveTeamMember(projectID, employeeID string) bool {
	_, ok := s.EditProject(projectID, func(p domain.Project) domain.Project {
		return p.WithoutMember(employeeID)
	})
	return ok
}

// EditProject is the read-modify-write form of UpdateProject: edit sees the
// current project and its result is stored before the lock is released.
func (s *Store) EditProject(id string, edit func(domain.Project) domain.Project) (domain.Project, bool) {
	s.mu.Lock()
	i := slices.IndexFunc(s.state.Projects, func(p domain.Project) bool { return p.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return domain.Project{}, false
	}
	next := edit(s.state.Projects[i])
	next.ID = id
	next.TeamIDs = domain.UniqueTeam(next.TeamIDs)
	a := UpdateProject{Project: next}
	s.state = Reduce(s.state, a)
	s.mu.Unlock()
	s.notify(a)
	return next, true
}

// --- Employees ---

// AddEmployee assigns a fresh id and appends the employee.
func (s *Store) AddEmployee(in EmployeeInput) domain.Employee {
	e := s.newEmployee(in)
	s.Dispatch(AddEmployee{Employee: e})
	s.log.Info().Str("employee_id", e.ID).Msg("employee created")
	return e
}

// AddEmployeeIfEmailFree appends the employee unless another one already uses
// the address, ignoring case. The check and the append share one lock.
func (s *Store) AddEmployeeIfEmailFree(in EmployeeInput) (domain.Employee, bool) {
	s.mu.Lock()
	if emailTakenBy(s.state.Employees, in.Email, "") {
		s.mu.Unlock()
		return domain.Employee{}, false
	}
	e := s.newEmployee(in)
	a := AddEmployee{Employee: e}
	s.state = Reduce(s.state, a)
	s.mu.Unlock()
	s.notify(a)
	s.log.Info().Str("employee_id", e.ID).Msg("employee created")
	return e, true
}

func (s *Store) newEmployee(in EmployeeInput) domain.Employee {
	return domain.Employee{
		ID:     s.newID(),
		Name:   in.Name,
		Role:   in.Role,
		Avatar: in.Avatar,
		Email:  in.Email,
	}
}

func (s *Store) UpdateEmployee(e domain.Employee) bool {
	return s.apply(UpdateEmployee{Employee: e}, func(st State) bool {
		return slices.ContainsFunc(st.Employees, func(x domain.Employee) bool { return x.ID == e.ID })
	})
}

// EditEmployee runs edit over the stored employee and saves the result. It
// fails with ErrEmployeeNotFound for an unknown id and with ErrUserExists when
// the edited address belongs to someone else.
func (s *Store) EditEmployee(id string, edit func(domain.Employee) domain.Employee) (domain.Employee, error) {
	s.mu.Lock()
	i := slices.IndexFunc(s.state.Employees, func(e domain.Employee) bool { return e.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return domain.Employee{}, domain.ErrEmployeeNotFound
	}
	next := edit(s.state.Employees[i])
	next.ID = id
	if emailTakenBy(s.state.Employees, next.Email, id) {
		s.mu.Unlock()
		return domain.Employee{}, domain.ErrUserExists
	}
	a := UpdateEmployee{Employee: next}
	s.state = Reduce(s.state, a)
	s.mu.Unlock()
	s.notify(a)
	return next, nil
}

// DeleteEmployee removes the employee. Tasks and projects keep their
// references, which then resolve as unassigned.
func (s *Store) DeleteEmployee(id string) bool {
	return s.apply(DeleteEmployee{ID: id}, func(st State) bool {
		return slices.ContainsFunc(st.Employees, func(x domain.Employee) bool { return x.ID == id })
	})
}

// apply dispatches a when exists holds for the current state. The check and
// the write happen under the same lock.
func (s *Store) apply(a Action, exists func(State) bool) bool {
	s.mu.Lock()
	if !exists(s.state) {
		s.mu.Unlock()
		return false
	}
	s.state = Reduce(s.state, a)
	s.mu.Unlock()
	s.notify(a)
	return true
}

// --- Lookups ---

func (s *Store) Task(id string) (domain.Task, bool) {
	return find(s.State().Tasks, func(t domain.Task) bool { return t.ID == id })
}

func (s *Store) Project(id string) (domain.Project, bool) {
	return find(s.State().Projects, func(p domain.Project) bool { return p.ID == id })
}

func (s *Store) Employee(id string) (domain.Employee, bool) {
	return find(s.State().Employees, func(e domain.Employee) bool { return e.ID == id })
}

// EmployeeByEmail matches the address exactly.
func (s *Store) EmployeeByEmail(email string) (domain.Employee, bool) {
	return find(s.State().Employees, func(e domain.Employee) bool { return e.Email == email })
}

// EmailTaken reports whether any employee uses email, ignoring case and
// surrounding space.
func (s *Store) EmailTaken(email string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return emailTakenBy(s.state.Employees, email, "")
}

// emailTakenBy reports whether an employee other than exceptID uses email.
func emailTakenBy(employees []domain.Employee, email, exceptID string) bool {
	email = strings.TrimSpace(email)
	return slices.ContainsFunc(employees, func(e domain.Employee) bool {
		return e.ID != exceptID && strings.EqualFold(e.Email, email)
	})
}

func find[T any](items []T, match func(T) bool) (T, bool) {
	i := slices.IndexFunc(items, match)
	if i < 0 {
		var zero T
		return zero, false
	}
	return items[i], true
}
