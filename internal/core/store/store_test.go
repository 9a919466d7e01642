package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workboard/taskboard/internal/core/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func seqIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

func loadedStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s := New(zerolog.Nop(), opts...)
	err := s.DispatchBatch(context.Background(),
		SetEmployees{Employees: []domain.Employee{
			{ID: "e1", Name: "Ana", Email: "a@x.com"},
			{ID: "e2", Name: "Ben", Email: "b@x.com"},
		}},
		SetProjects{Projects: []domain.Project{
			{ID: "p1", Name: "Website", TeamIDs: []string{"e1"}},
		}},
		SetTasks{Tasks: []domain.Task{
			{ID: "t1", Title: "Mockup", Status: domain.StatusTodo, ProjectID: "p1", AssigneeID: "e1"},
			{ID: "t2", Title: "Backend", Status: domain.StatusReview, ProjectID: "p1", AssigneeID: "e2"},
		}},
		SetLoading{Loading: false},
	)
	require.NoError(t, err)
	return s
}

func TestNew_StartsLoading(t *testing.T) {
	s := New(zerolog.Nop())
	st := s.State()
	assert.True(t, st.IsLoading)
	assert.Empty(t, st.Tasks)
	assert.Nil(t, st.CurrentUser)
}

func TestAddTask_AssignsIDAndCreatedAt(t *testing.T) {
	s := loadedStore(t)
	before := time.Now().UTC()

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		task := s.AddTask(TaskInput{Title: "new", Status: domain.StatusTodo, Priority: domain.PriorityLow})
		require.NotEmpty(t, task.ID)
		assert.False(t, seen[task.ID], "duplicate id %s", task.ID)
		seen[task.ID] = true
		assert.False(t, task.CreatedAt.After(time.Now().UTC()))
		assert.False(t, task.CreatedAt.Before(before.Add(-time.Second)))
	}

	st := s.State()
	require.Len(t, st.Tasks, 52)
	assert.Equal(t, "t1", st.Tasks[0].ID, "insertion order must be preserved")
}

func TestAddTask_UsesInjectedClockAndIDs(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	s := loadedStore(t, WithClock(fixedClock(at)), WithIDFunc(seqIDs("id-")))

	task := s.AddTask(TaskInput{Title: "x"})
	assert.Equal(t, "id-1", task.ID)
	assert.Equal(t, at, task.CreatedAt)
	assert.Nil(t, task.CompletedAt)

	stored, ok := s.Task("id-1")
	require.True(t, ok)
	assert.Equal(t, task, stored)
}

func TestUpdateAndDelete_UnknownIDIsNoop(t *testing.T) {
	s := loadedStore(t)
	before := s.State()

	assert.False(t, s.UpdateTask(domain.Task{ID: "missing", Title: "ghost"}))
	assert.False(t, s.DeleteTask("missing"))
	assert.False(t, s.UpdateProject(domain.Project{ID: "missing"}))
	assert.False(t, s.DeleteProject("missing"))
	assert.False(t, s.UpdateEmployee(domain.Employee{ID: "missing"}))
	assert.False(t, s.DeleteEmployee("missing"))
	assert.False(t, s.AddTeamMember("missing", "e1"))

	after := s.State()
	assert.Equal(t, before.Tasks, after.Tasks)
	assert.Equal(t, before.Projects, after.Projects)
	assert.Equal(t, before.Employees, after.Employees)
}

func TestUpdateTask_ReplacesVerbatim(t *testing.T) {
	s := loadedStore(t)

	updated := domain.Task{ID: "t1", Title: "Mockup v2", Status: domain.StatusDone}
	require.True(t, s.UpdateTask(updated))

	got, ok := s.Task("t1")
	require.True(t, ok)
	assert.Equal(t, updated, got)
	assert.Nil(t, got.CompletedAt, "store does not stamp completion itself")
}

func TestDeleteEmployee_DoesNotCascade(t *testing.T) {
	s := loadedStore(t)

	require.True(t, s.DeleteEmployee("e1"))

	st := s.State()
	assert.Len(t, st.Employees, 1)
	task, _ := s.Task("t1")
	assert.Equal(t, "e1", task.AssigneeID)
	p, _ := s.Project("p1")
	assert.Equal(t, []string{"e1"}, p.TeamIDs)
}

func TestDeleteProject_KeepsTasks(t *testing.T) {
	s := loadedStore(t)

	require.True(t, s.DeleteProject("p1"))
	assert.Empty(t, s.State().Projects)
	assert.Len(t, s.State().Tasks, 2)
}

func TestSnapshotsAreNotMutatedByLaterWrites(t *testing.T) {
	s := loadedStore(t)
	snap := s.State()

	s.UpdateTask(domain.Task{ID: "t1", Title: "changed"})
	s.DeleteTask("t2")
	s.AddTask(TaskInput{Title: "extra"})

	require.Len(t, snap.Tasks, 2)
	assert.Equal(t, "Mockup", snap.Tasks[0].Title)
	assert.Equal(t, "t2", snap.Tasks[1].ID)
}

func TestProjectWrites_DropDuplicateTeamIDs(t *testing.T) {
	s := loadedStore(t, WithIDFunc(seqIDs("p-")))

	p := s.AddProject(ProjectInput{Name: "Mobile", TeamIDs: []string{"e1", "e2", "e1"}})
	assert.Equal(t, []string{"e1", "e2"}, p.TeamIDs)

	p.TeamIDs = []string{"e2", "e2", "e1"}
	require.True(t, s.UpdateProject(p))
	got, _ := s.Project(p.ID)
	assert.Equal(t, []string{"e2", "e1"}, got.TeamIDs)

	require.True(t, s.AddTeamMember(p.ID, "e1"))
	got, _ = s.Project(p.ID)
	assert.Equal(t, []string{"e2", "e1"}, got.TeamIDs)

	require.True(t, s.AddTeamMember(p.ID, "e3"))
	require.True(t, s.RemoveTeamMember(p.ID, "e2"))
	got, _ = s.Project(p.ID)
	assert.Equal(t, []string{"e1", "e3"}, got.TeamIDs)
}

func TestEmployeeLookups(t *testing.T) {
	s := loadedStore(t)

	e, ok := s.EmployeeByEmail("a@x.com")
	require.True(t, ok)
	assert.Equal(t, "e1", e.ID)

	_, ok = s.EmployeeByEmail("A@X.COM")
	assert.False(t, ok, "login lookup is an exact match")
	assert.True(t, s.EmailTaken(" A@X.COM "))

	added := s.AddEmployee(EmployeeInput{Name: "Cy", Email: "c@x.com", Role: "QA"})
	got, ok := s.Employee(added.ID)
	require.True(t, ok)
	assert.Equal(t, "QA", got.Role)
}

func TestDispatchBatch_SkippedWhenContextDone(t *testing.T) {
	s := New(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.DispatchBatch(ctx, SetTasks{Tasks: []domain.Task{{ID: "t1"}}}, SetLoading{Loading: false})
	require.ErrorIs(t, err, context.Canceled)

	st := s.State()
	assert.Empty(t, st.Tasks)
	assert.True(t, st.IsLoading)
}

func TestObserver_SeesEveryAppliedAction(t *testing.T) {
	var kinds []string
	s := New(zerolog.Nop(), WithObserver(func(a Action) { kinds = append(kinds, a.Kind()) }))

	s.Dispatch(SetLoading{Loading: false})
	s.AddEmployee(EmployeeInput{Name: "x"})
	s.DeleteTask("nope")

	assert.Equal(t, []string{"set_loading", "add_employee"}, kinds)
}

func TestConcurrentWrites(t *testing.T) {
	s := loadedStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddTask(TaskInput{Title: "parallel"})
			_ = s.State()
		}()
	}
	wg.Wait()

	assert.Len(t, s.State().Tasks, 22)
}

func TestAddEmployeeIfEmailFree(t *testing.T) {
	s := loadedStore(t, WithIDFunc(seqIDs("e-")))

	_, ok := s.AddEmployeeIfEmailFree(EmployeeInput{Name: "Dup", Email: " A@x.COM "})
	assert.False(t, ok)

	e, ok := s.AddEmployeeIfEmailFree(EmployeeInput{Name: "Cy", Email: "c@x.com"})
	require.True(t, ok)
	assert.Equal(t, "e-1", e.ID)
	assert.Len(t, s.State().Employees, 3)
}

func TestAddEmployeeIfEmailFree_ConcurrentSameEmail(t *testing.T) {
	s := loadedStore(t)

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		added int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := s.AddEmployeeIfEmailFree(EmployeeInput{Name: "Cy", Email: "cy@x.com"}); ok {
				mu.Lock()
				added++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, added)
	assert.Len(t, s.State().Employees, 3)
}

func TestEditEmployee(t *testing.T) {
	s := loadedStore(t)

	_, err := s.EditEmployee("missing", func(e domain.Employee) domain.Employee { return e })
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)

	_, err = s.EditEmployee("e1", func(e domain.Employee) domain.Employee {
		e.Email = "B@X.com"
		return e
	})
	assert.ErrorIs(t, err, domain.ErrUserExists)

	got, err := s.EditEmployee("e1", func(e domain.Employee) domain.Employee {
		e.Email = "A@X.com"
		e.ID = "ignored"
		return e
	})
	require.NoError(t, err)
	assert.Equal(t, "e1", got.ID)
	stored, _ := s.Employee("e1")
	assert.Equal(t, "A@X.com", stored.Email)
}

func TestEditTask_ConcurrentEditsAllLand(t *testing.T) {
	s := loadedStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := s.EditTask("t1", func(task domain.Task) domain.Task {
				task.Description += "x"
				return task
			})
			assert.True(t, ok)
		}()
	}
	wg.Wait()

	got, _ := s.Task("t1")
	assert.Len(t, got.Description, 40)
	assert.Equal(t, "Mockup", got.Title)

	_, ok := s.EditTask("missing", func(task domain.Task) domain.Task { return task })
	assert.False(t, ok)
}

func TestEditProject_ConcurrentEditsAllLand(t *testing.T) {
	s := loadedStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.AddTeamMember("p1", fmt.Sprintf("m%d", i))
		}(i)
	}
	wg.Wait()

	got, _ := s.Project("p1")
	assert.Len(t, got.TeamIDs, 31)

	edited, ok := s.EditProject("p1", func(p domain.Project) domain.Project {
		p.Name = "Site"
		p.TeamIDs = []string{"e1", "e1"}
		return p
	})
	require.True(t, ok)
	assert.Equal(t, []string{"e1"}, edited.TeamIDs)

	_, ok = s.EditProject("missing", func(p domain.Project) domain.Project { return p })
	assert.False(t, ok)
}
