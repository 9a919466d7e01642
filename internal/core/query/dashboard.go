package query

import (
	"math"
	"slices"
	"time"

	"github.com/workboard/taskboard/internal/core/domain"
)

const (
	dashboardActiveProjects = 3
	dashboardOpenTasks      = 8
)

// ProjectSummary is a project with its completion percentage.
type ProjectSummary struct {
	domain.Project
	Progress int `json:"progress"`
}

// Dashboard is the overview shown after sign-in.
type Dashboard struct {
	TotalProjects      int                   `json:"total_projects"`
	CompletedProjects  int                   `json:"completed_projects"`
	InProgressProjects int                   `json:"in_progress_projects"`
	TotalTasks         int                   `json:"total_tasks"`
	TasksByStatus      map[domain.Status]int `json:"tasks_by_status"`
	CompletionRate     int                   `json:"completion_rate"`
	DueSoon            int                   `json:"due_soon"`
	Employees          int                   `json:"employees"`
	ActiveProjects     []ProjectSummary      `json:"active_projects"`
	OpenTasks          []domain.Task         `json:"open_tasks"`
}

// Dashboard summarises what the viewer can see at time now.
func (s *Service) Dashboard(now time.Time) Dashboard {
	st := s.src.State()
	tasks := visibleTasks(st)
	projects := visibleProjects(st)

	d := Dashboard{
		TotalProjects:  len(projects),
		TotalTasks:     len(tasks),
		TasksByStatus:  make(map[domain.Status]int, len(domain.Statuses)),
		ActiveProjects: []ProjectSummary{},
		OpenTasks:      []domain.Task{},
	}
	if st.CurrentUser == nil {
		return d
	}
	d.Employees = len(st.Employees)

	for _, status := range domain.Statuses {
		d.TasksByStatus[status] = 0
	}
	for _, t := range tasks {
		d.TasksByStatus[t.Status]++
		if t.IsDueSoon(now, domain.DueSoonWindow) {
			d.DueSoon++
		}
	}
	d.CompletionRate = percent(d.TasksByStatus[domain.StatusDone], len(tasks))

	for _, p := range projects {
		switch p.Status {
		case domain.StatusDone:
			d.CompletedProjects++
		case domain.StatusInProgress:
			d.InProgressProjects++
		}
	}

	active := filter(projects, func(p domain.Project) bool { return p.Status != domain.StatusDone })
	sortByStartDesc(active)
	for _, p := range active[:min(len(active), dashboardActiveProjects)] {
		d.ActiveProjects = append(d.ActiveProjects, ProjectSummary{Project: p, Progress: progress(tasks, p.ID)})
	}

	open := filter(tasks, func(t domain.Task) bool { return t.Status != domain.StatusDone })
	slices.SortStableFunc(open, func(a, b domain.Task) int { return b.CreatedAt.Compare(a.CreatedAt) })
	d.OpenTasks = append(d.OpenTasks, open[:min(len(open), dashboardOpenTasks)]...)

	return d
}

// ProjectProgress is the rounded share of done tasks among the project's
// visible tasks, 0 when there are none.
func (s *Service) ProjectProgress(projectID string) int {
	return progress(visibleTasks(s.src.State()), projectID)
}

func progress(tasks []domain.Task, projectID string) int {
	total, done := 0, 0
	for _, t := range tasks {
		if t.ProjectID != projectID {
			continue
		}
		total++
		if t.Status == domain.StatusDone {
			done++
		}
	}
	return percent(done, total)
}

func percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
