package query

import (
	"slices"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/workboard/taskboard/internal/core/domain"
)

// Page sizes of the list views.
const (
	TasksPerPage     = 12
	ProjectsPerPage  = 9
	EmployeesPerPage = 12
)

// Page is one slice of a sorted list.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
}

func paginate[T any](items []T, page, perPage int) Page[T] {
	if page < 1 {
		page = 1
	}
	total := len(items)
	totalPages := (total + perPage - 1) / perPage

	p := Page[T]{
		Items:      []T{},
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}
	// Pages past the end are empty; checking first keeps the offset from overflowing.
	if page > totalPages {
		return p
	}
	start := (page - 1) * perPage
	end := min(start+perPage, total)
	p.Items = slices.Clone(items[start:end])
	return p
}

// TaskFilter narrows ListTasks. Empty fields match everything.
type TaskFilter struct {
	Search     string
	Status     domain.Status
	Priority   domain.Priority
	ProjectID  string
	AssigneeID string
}

// ProjectFilter narrows ListProjects.
type ProjectFilter struct {
	Search string
	Status domain.Status
}

// ListTasks returns visible tasks matching f, earliest due date first.
func (s *Service) ListTasks(f TaskFilter, page int) Page[domain.Task] {
	st := s.src.State()
	m := newMatcher(f.Search)
	tasks := filter(visibleTasks(st), func(t domain.Task) bool {
		return m.match(t.Title, t.Description) &&
			(f.Status == "" || t.Status == f.Status) &&
			(f.Priority == "" || t.Priority == f.Priority) &&
			(f.ProjectID == "" || t.ProjectID == f.ProjectID) &&
			(f.AssigneeID == "" || t.AssigneeID == f.AssigneeID)
	})
	sortByDueDate(tasks)
	return paginate(tasks, page, TasksPerPage)
}

// ListProjects returns visible projects matching f, most recent start first.
func (s *Service) ListProjects(f ProjectFilter, page int) Page[domain.Project] {
	st := s.src.State()
	m := newMatcher(f.Search)
	projects := filter(visibleProjects(st), func(p domain.Project) bool {
		return m.match(p.Name, p.Description) && (f.Status == "" || p.Status == f.Status)
	})
	sortByStartDesc(projects)
	return paginate(projects, page, ProjectsPerPage)
}

// ListEmployees returns the team directory ordered by name. Any signed-in
// viewer may list it.
func (s *Service) ListEmployees(search string, page int) Page[domain.Employee] {
	st := s.src.State()
	if st.CurrentUser == nil {
		return paginate([]domain.Employee{}, page, EmployeesPerPage)
	}
	m := newMatcher(search)
	employees := filter(st.Employees, func(e domain.Employee) bool {
		return m.match(e.Name, e.Role, e.Email)
	})

	col := collate.New(language.English, collate.Loose)
	slices.SortStableFunc(employees, func(a, b domain.Employee) int {
		return col.CompareString(a.Name, b.Name)
	})
	return paginate(employees, page, EmployeesPerPage)
}

// DueSoon lists visible open tasks due within the next week.
func (s *Service) DueSoon(now time.Time, page int) Page[domain.Task] {
	st := s.src.State()
	tasks := filter(visibleTasks(st), func(t domain.Task) bool {
		return t.IsDueSoon(now, domain.DueSoonWindow)
	})
	sortByDueDate(tasks)
	return paginate(tasks, page, TasksPerPage)
}

func sortByDueDate(tasks []domain.Task) {
	slices.SortStableFunc(tasks, func(a, b domain.Task) int {
		return compareDates(a.DueDate, b.DueDate)
	})
}

func sortByStartDesc(projects []domain.Project) {
	slices.SortStableFunc(projects, func(a, b domain.Project) int {
		ta, okA := a.StartDate.Time()
		tb, okB := b.StartDate.Time()
		switch {
		case okA && okB:
			return tb.Compare(ta)
		case okA:
			return -1
		case okB:
			return 1
		}
		return 0
	})
}

func compareDates(a, b domain.Date) int {
	switch {
	case a.Before(b):
		return -1
	case b.Before(a):
		return 1
	}
	return 0
}
