package query

import (
	"slices"

	"github.com/workboard/taskboard/internal/core/domain"
	"github.com/workboard/taskboard/internal/core/store"
)

// TaskDetail is a task with its weak references resolved. Project and Assignee
// are nil when the referenced entity no longer exists.
type TaskDetail struct {
	Task     domain.Task      `json:"task"`
	Project  *domain.Project  `json:"project"`
	Assignee *domain.Employee `json:"assignee"`
}

// ProjectDetail is a project with its visible tasks and resolved team. Team
// ids that no longer resolve are skipped.
type ProjectDetail struct {
	Project  domain.Project    `json:"project"`
	Tasks    []domain.Task     `json:"tasks"`
	Team     []domain.Employee `json:"team"`
	Progress int               `json:"progress"`
}

// EmployeeDetail is an employee profile. Tasks and Projects stay empty unless
// the viewer is an admin or the employee.
type EmployeeDetail struct {
	Employee       domain.Employee  `json:"employee"`
	ActiveTasks    []domain.Task    `json:"active_tasks"`
	CompletedTasks []domain.Task    `json:"completed_tasks"`
	Projects       []domain.Project `json:"projects"`
}

// TaskDetail returns the task when the viewer may see it.
func (s *Service) TaskDetail(id string) (TaskDetail, error) {
	st := s.src.State()
	i := slices.IndexFunc(st.Tasks, func(t domain.Task) bool { return t.ID == id })
	if i < 0 {
		return TaskDetail{}, domain.ErrTaskNotFound
	}
	t := st.Tasks[i]
	if !canViewTask(st.CurrentUser, t) {
		return TaskDetail{}, domain.ErrForbidden
	}

	d := TaskDetail{Task: t}
	if p, ok := lookup(st.Projects, func(p domain.Project) bool { return p.ID == t.ProjectID }); ok {
		d.Project = &p
	}
	if e, ok := lookup(st.Employees, func(e domain.Employee) bool { return e.ID == t.AssigneeID }); ok {
		d.Assignee = &e
	}
	return d, nil
}

// ProjectDetail returns the project when the viewer is an admin or a team
// member.
func (s *Service) ProjectDetail(id string) (ProjectDetail, error) {
	st := s.src.State()
	p, ok := lookup(st.Projects, func(p domain.Project) bool { return p.ID == id })
	if !ok {
		return ProjectDetail{}, domain.ErrProjectNotFound
	}
	u := st.CurrentUser
	if u == nil || (!u.IsAdmin() && !p.HasMember(u.ID)) {
		return ProjectDetail{}, domain.ErrForbidden
	}

	tasks := visibleTasks(st)
	d := ProjectDetail{
		Project:  p,
		Tasks:    filter(tasks, func(t domain.Task) bool { return t.ProjectID == id }),
		Team:     resolveTeam(st, p.TeamIDs),
		Progress: progress(tasks, id),
	}
	return d, nil
}

// EmployeeDetail returns the employee profile to any signed-in viewer.
func (s *Service) EmployeeDetail(id string) (EmployeeDetail, error) {
	st := s.src.State()
	if st.CurrentUser == nil {
		return EmployeeDetail{}, domain.ErrForbidden
	}
	e, ok := lookup(st.Employees, func(e domain.Employee) bool { return e.ID == id })
	if !ok {
		return EmployeeDetail{}, domain.ErrEmployeeNotFound
	}

	d := EmployeeDetail{
		Employee:       e,
		ActiveTasks:    []domain.Task{},
		CompletedTasks: []domain.Task{},
		Projects:       []domain.Project{},
	}
	if !canViewEmployeeWork(st.CurrentUser, id) {
		return d, nil
	}
	for _, t := range st.Tasks {
		if t.AssigneeID != id {
			continue
		}
		if t.Status == domain.StatusDone {
			d.CompletedTasks = append(d.CompletedTasks, t)
		} else {
			d.ActiveTasks = append(d.ActiveTasks, t)
		}
	}
	d.Projects = filter(st.Projects, func(p domain.Project) bool { return p.HasMember(id) })
	return d, nil
}

func canViewTask(u *domain.CurrentUser, t domain.Task) bool {
	return u.IsAdmin() || (u != nil && t.AssigneeID == u.ID)
}

func resolveTeam(st store.State, ids []string) []domain.Employee {
	team := make([]domain.Employee, 0, len(ids))
	for _, id := range ids {
		if e, ok := lookup(st.Employees, func(e domain.Employee) bool { return e.ID == id }); ok {
			team = append(team, e)
		}
	}
	return team
}

func lookup[T any](items []T, match func(T) bool) (T, bool) {
	i := slices.IndexFunc(items, match)
	if i < 0 {
		var zero T
		return zero, false
	}
	return items[i], true
}
