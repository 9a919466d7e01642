// Package seed provides the built-in demo dataset.
package seed

import (
	"context"
	"time"

	"github.com/workboard/taskboard/internal/core/domain"
)

// Source serves the demo dataset. Every Load returns fresh slices.
type Source struct{}

func NewSource() *Source {
	return &Source{}
}

func (s *Source) Load(ctx context.Context) (*domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Dataset(), nil
}

// Dataset returns a new copy of the demo data.
func Dataset() *domain.Dataset {
	return &domain.Dataset{
		Employees: employees(),
		Projects:  projects(),
		Tasks:     tasks(),
	}
}

func employees() []domain.Employee {
	return []domain.Employee{
		{ID: "emp1", Name: "Alex Johnson", Role: "Frontend Developer", Avatar: "https://i.pravatar.cc/150?img=1", Email: "alex.johnson@example.com"},
		{ID: "emp2", Name: "Samantha Lee", Role: "UX Designer", Avatar: "https://i.pravatar.cc/150?img=5", Email: "samantha.lee@example.com"},
		{ID: "emp3", Name: "Michael Chen", Role: "Backend Developer", Avatar: "https://i.pravatar.cc/150?img=3", Email: "michael.chen@example.com"},
		{ID: "emp4", Name: "Emily Rodriguez", Role: "Project Manager", Avatar: "https://i.pravatar.cc/150?img=4", Email: "emily.rodriguez@example.com"},
		{ID: "emp5", Name: "David Kim", Role: "DevOps Engineer", Avatar: "https://i.pravatar.cc/150?img=8", Email: "david.kim@example.com"},
		{ID: "emp6", Name: "Sophie Taylor", Role: "QA Engineer", Avatar: "https://i.pravatar.cc/150?img=9", Email: "sophie.taylor@example.com"},
	}
}

func projects() []domain.Project {
	return []domain.Project{
		{
			ID: "proj1", Name: "Website Redesign",
			Description: "Redesign the company website with modern UI/UX principles",
			StartDate:   "2023-10-01", EndDate: "2023-12-15", Status: domain.StatusInProgress,
			TeamIDs: []string{"emp1", "emp2", "emp4"},
		},
		{
			ID: "proj2", Name: "Mobile App Development",
			Description: "Create a new mobile app for client inventory management",
			StartDate:   "2023-09-15", EndDate: "2024-01-30", Status: domain.StatusInProgress,
			TeamIDs: []string{"emp1", "emp3", "emp4", "emp6"},
		},
		{
			ID: "proj3", Name: "API Optimization",
			Description: "Improve API performance and add new endpoints",
			StartDate:   "2023-11-01", EndDate: "2024-02-15", Status: domain.StatusTodo,
			TeamIDs: []string{"emp3", "emp5"},
		},
		{
			ID: "proj4", Name: "DevOps Infrastructure",
			Description: "Set up CI/CD pipeline and cloud infrastructure",
			StartDate:   "2023-08-01", EndDate: "2023-11-30", Status: domain.StatusDone,
			TeamIDs: []string{"emp5", "emp3"},
		},
		{
			ID: "proj5", Name: "Analytics Dashboard",
			Description: "Create a new analytics dashboard with data visualization",
			StartDate:   "2023-12-01", EndDate: "2024-03-15", Status: domain.StatusTodo,
			TeamIDs: []string{"emp1", "emp2", "emp4"},
		},
	}
}

func tasks() []domain.Task {
	type row struct {
		id, title, description string
		status                 domain.Status
		priority               domain.Priority
		project, assignee      string
		due, created, done     string
	}
	rows := []row{
		{"task1", "Design Homepage Mockup", "Create wireframes and mockups for the new homepage design", domain.StatusDone, domain.PriorityHigh, "proj1", "emp2", "2023-10-15", "2023-10-01", "2023-10-14"},
		{"task2", "Implement Homepage Frontend", "Develop HTML/CSS/JS for the approved homepage design", domain.StatusInProgress, domain.PriorityMedium, "proj1", "emp1", "2023-11-01", "2023-10-16", ""},
		{"task3", "Setup React Project Structure", "Initialize the React project and setup basic routing", domain.StatusDone, domain.PriorityHigh, "proj1", "emp1", "2023-10-10", "2023-10-01", "2023-10-08"},
		{"task4", "Design User Authentication Flows", "Create wireframes for login, signup, and password recovery", domain.StatusReview, domain.PriorityMedium, "proj2", "emp2", "2023-10-20", "2023-09-20", ""},
		{"task5", "Implement User Authentication", "Develop backend API endpoints for user authentication", domain.StatusInProgress, domain.PriorityHigh, "proj2", "emp3", "2023-11-05", "2023-10-01", ""},
		{"task6", "Setup CI/CD Pipeline", "Configure Jenkins for continuous integration and deployment", domain.StatusDone, domain.PriorityHigh, "proj4", "emp5", "2023-09-15", "2023-08-10", "2023-09-12"},
		{"task7", "API Performance Testing", "Conduct load testing and identify performance bottlenecks", domain.StatusTodo, domain.PriorityMedium, "proj3", "emp3", "2023-11-20", "2023-11-01", ""},
		{"task8", "Database Optimization", "Optimize database queries and indexes for better performance", domain.StatusTodo, domain.PriorityMedium, "proj3", "emp3", "2023-12-05", "2023-11-01", ""},
		{"task9", "QA Testing for Mobile App", "Conduct thorough testing of the mobile app features", domain.StatusTodo, domain.PriorityHigh, "proj2", "emp6", "2024-01-10", "2023-10-15", ""},
		{"task10", "Create Analytics Dashboard Wireframes", "Design wireframes for data visualization dashboard", domain.StatusTodo, domain.PriorityMedium, "proj5", "emp2", "2023-12-20", "2023-12-01", ""},
		{"task11", "Implement Product Page", "Create the product page with filtering and sorting features", domain.StatusReview, domain.PriorityMedium, "proj1", "emp1", "2023-11-25", "2023-10-25", ""},
		{"task12", "Setup AWS Infrastructure", "Configure AWS services for the application deployment", domain.StatusDone, domain.PriorityHigh, "proj4", "emp5", "2023-10-20", "2023-09-20", "2023-10-18"},
	}

	out := make([]domain.Task, 0, len(rows))
	for _, r := range rows {
		t := domain.Task{
			ID:          r.id,
			Title:       r.title,
			Description: r.description,
			Status:      r.status,
			Priority:    r.priority,
			ProjectID:   r.project,
			AssigneeID:  r.assignee,
			DueDate:     domain.Date(r.due),
			CreatedAt:   day(r.created),
		}
		if r.done != "" {
			completed := day(r.done)
			t.CompletedAt = &completed
		}
		out = append(out, t)
	}
	return out
}

func day(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic("seed: bad date " + s)
	}
	return t
}
