package domain

import "time"

// Status is the workflow state shared by tasks and projects.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
)

// Priority ranks a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Statuses lists every status in board order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusReview, StatusDone}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

// Label returns the human readable name of the status.
func (s Status) Label() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusReview:
		return "In Review"
	case StatusDone:
		return "Completed"
	default:
		return string(s)
	}
}

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func (p Priority) Label() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return string(p)
	}
}

// DueSoonWindow is how far ahead a task counts as due soon.
const DueSoonWindow = 7 * 24 * time.Hour

// Task is a unit of work inside a project. ProjectID and AssigneeID are weak
// references: they may point at entities that no longer exist.
type Task struct {
	ID          string     `json:"id" bson:"_id"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	Status      Status     `json:"status" bson:"status"`
	Priority    Priority   `json:"priority" bson:"priority"`
	ProjectID   string     `json:"project_id" bson:"project_id"`
	AssigneeID  string     `json:"assignee_id" bson:"assignee_id"`
	DueDate     Date       `json:"due_date" bson:"due_date"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
}

// IsOverdue reports whether the task is past its due date and not done.
func (t Task) IsOverdue(now time.Time) bool {
	due, ok := t.DueDate.Time()
	return ok && t.Status != StatusDone && due.Before(now)
}

// IsDueSoon reports whether the task is not done and due in (now, now+window].
func (t Task) IsDueSoon(now time.Time, window time.Duration) bool {
	due, ok := t.DueDate.Time()
	if !ok || t.Status == StatusDone {
		return false
	}
	return due.After(now) && !due.After(now.Add(window))
}

// StampCompletion carries completion bookkeeping from prev into next: CompletedAt
// is set to now exactly when next enters done from another status, otherwise the
// stored value is kept. A task leaving done keeps its old CompletedAt.
func StampCompletion(prev, next Task, now time.Time) Task {
	if next.Status == StatusDone && prev.Status != StatusDone {
		ts := now
		next.CompletedAt = &ts
		return next
	}
	next.CompletedAt = prev.CompletedAt
	return next
}
