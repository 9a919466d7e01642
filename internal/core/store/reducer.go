package store

import (
	"slices"

	"github.com/workboard/taskboard/internal/core/domain"
)

// Reduce returns the state that results from applying a to s. It is pure: s is
// not modified and every changed collection is a fresh slice. Updates and
// deletes for an unknown id return s unchanged. Nothing cascades; deleting an
// employee leaves tasks and projects that reference it untouched.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetTasks:
		s.Tasks = slices.Clone(a.Tasks)
	case AddTask:
		s.Tasks = appendCopy(s.Tasks, a.Task)
	case UpdateTask:
		s.Tasks = replaceByID(s.Tasks, a.Task, func(t domain.Task) string { return t.ID })
	case DeleteTask:
		s.Tasks = removeByID(s.Tasks, a.ID, func(t domain.Task) string { return t.ID })

	case SetProjects:
		s.Projects = slices.Clone(a.Projects)
	case AddProject:
		s.Projects = appendCopy(s.Projects, a.Project)
	case UpdateProject:
		s.Projects = replaceByID(s.Projects, a.Project, func(p domain.Project) string { return p.ID })
	case DeleteProject:
		s.Projects = removeByID(s.Projects, a.ID, func(p domain.Project) string { return p.ID })

	case SetEmployees:
		s.Employees = slices.Clone(a.Employees)
	case AddEmployee:
		s.Employees = appendCopy(s.Employees, a.Employee)
	case UpdateEmployee:
		s.Employees = replaceByID(s.Employees, a.Employee, func(e domain.Employee) string { return e.ID })
	case DeleteEmployee:
		s.Employees = removeByID(s.Employees, a.ID, func(e domain.Employee) string { return e.ID })

	case SetCurrentUser:
		if a.User == nil {
			s.CurrentUser = nil
		} else {
			u := *a.User
			s.CurrentUser = &u
		}
	case SetLoading:
		s.IsLoading = a.Loading
	case SetError:
		s.Error = a.Message
	}
	return s
}

func appendCopy[T any](items []T, item T) []T {
	out := make([]T, len(items), len(items)+1)
	copy(out, items)
	return append(out, item)
}

// replaceByID returns items unchanged when no element matches.
func replaceByID[T any](items []T, item T, id func(T) string) []T {
	target := id(item)
	i := slices.IndexFunc(items, func(x T) bool { return id(x) == target })
	if i < 0 {
		return items
	}
	out := slices.Clone(items)
	out[i] = item
	return out
}

func removeByID[T any](items []T, target string, id func(T) string) []T {
	if !slices.ContainsFunc(items, func(x T) bool { return id(x) == target }) {
		return items
	}
	out := make([]T, 0, len(items)-1)
	for _, x := range items {
		if id(x) != target {
			out = append(out, x)
		}
	}
	return out
}
