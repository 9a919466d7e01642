// Package query derives role-filtered views from a store snapshot. Every call
// reads exactly one snapshot, so results are consistent even while writers run.
//
// Visibility: an admin sees everything, an authenticated employee sees the
// tasks assigned to them and the projects whose team includes them, and an
// anonymous caller sees nothing.
package query

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/workboard/taskboard/internal/core/domain"
	"github.com/workboard/taskboard/internal/core/store"
)

// Snapshotter supplies the state to read from.
type Snapshotter interface {
	State() store.State
}

// Service answers read queries. It holds no state of its own.
type Service struct {
	src Snapshotter
}

func New(src Snapshotter) *Service {
	return &Service{src: src}
}

// SearchResult groups the matches of Search.
type SearchResult struct {
	Tasks    []domain.Task    `json:"tasks"`
	Projects []domain.Project `json:"projects"`
}

// TasksByProject returns the project's tasks the viewer may see.
func (s *Service) TasksByProject(projectID string) []domain.Task {
	st := s.src.State()
	return filter(visibleTasks(st), func(t domain.Task) bool { return t.ProjectID == projectID })
}

// TasksByEmployee returns tasks assigned to employeeID when the viewer is an
// admin or that employee.
func (s *Service) TasksByEmployee(employeeID string) []domain.Task {
	st := s.src.State()
	if !canViewEmployeeWork(st.CurrentUser, employeeID) {
		return []domain.Task{}
	}
	return filter(st.Tasks, func(t domain.Task) bool { return t.AssigneeID == employeeID })
}

// ProjectsByEmployee returns projects whose team includes employeeID, with the
// same access rule as TasksByEmployee.
func (s *Service) ProjectsByEmployee(employeeID string) []domain.Project {
	st := s.src.State()
	if !canViewEmployeeWork(st.CurrentUser, employeeID) {
		return []domain.Project{}
	}
	return filter(st.Projects, func(p domain.Project) bool { return p.HasMember(employeeID) })
}

// Search matches q against task titles and descriptions and project names and
// descriptions, ignoring case. Store order is kept. An empty q matches
// everything visible.
func (s *Service) Search(q string) SearchResult {
	st := s.src.State()
	m := newMatcher(q)
	return SearchResult{
		Tasks: filter(visibleTasks(st), func(t domain.Task) bool {
			return m.match(t.Title, t.Description)
		}),
		Projects: filter(visibleProjects(st), func(p domain.Project) bool {
			return m.match(p.Name, p.Description)
		}),
	}
}

func visibleTasks(st store.State) []domain.Task {
	u := st.CurrentUser
	switch {
	case u == nil:
		return []domain.Task{}
	case u.IsAdmin():
		return st.Tasks
	default:
		return filter(st.Tasks, func(t domain.Task) bool { return t.AssigneeID == u.ID })
	}
}

func visibleProjects(st store.State) []domain.Project {
	u := st.CurrentUser
	switch {
	case u == nil:
		return []domain.Project{}
	case u.IsAdmin():
		return st.Projects
	default:
		return filter(st.Projects, func(p domain.Project) bool { return p.HasMember(u.ID) })
	}
}

func canViewEmployeeWork(u *domain.CurrentUser, employeeID string) bool {
	return u.IsAdmin() || (u != nil && u.ID == employeeID)
}

// filter always returns a fresh, non-nil slice.
func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// matcher does case-insensitive substring matching using Unicode case folding.
// A cases.Caser is not safe for concurrent use, so each call builds its own.
type matcher struct {
	fold   cases.Caser
	needle string
}

func newMatcher(q string) *matcher {
	m := &matcher{fold: cases.Fold()}
	m.needle = m.fold.String(strings.TrimSpace(q))
	return m
}

func (m *matcher) match(fields ...string) bool {
	if m.needle == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(m.fold.String(f), m.needle) {
			return true
		}
	}
	return false
}
