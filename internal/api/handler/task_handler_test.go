package handler

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/workboard/taskboard/internal/core/domain"
)

func newTaskHandler(f *fixture) *TaskHandler {
	h := NewTaskHandler(f.store, f.queries)
	h.now = func() time.Time { return testNow }
	return h
}

func TestTaskHandler_List_RespectsVisibility(t *testing.T) {
	f := newFixture(t)
	h := newTaskHandler(f)

	f.login(t, "ben@x.com", domain.RoleEmployee)
	c, rec := f.newContext(http.MethodGet, "/v1/tasks", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	page := decode[taskPage](t, rec)
	if page.Total != 1 || page.Items[0].ID != "t1" {
		t.Fatalf("employee should only see t1, got %+v", page)
	}
	if page.Items[0].PriorityLabel != "High" || page.Items[0].Overdue {
		t.Fatalf("unexpected derived fields: %+v", page.Items[0])
	}

	f.login(t, "ana@x.com", domain.RoleAdmin)
	c, rec = f.newContext(http.MethodGet, "/v1/tasks?status=done", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if page := decode[taskPage](t, rec); page.Total != 1 || page.Items[0].ID != "t2" {
		t.Fatalf("expected only t2, got %+v", page)
	}

	c, _ = f.newContext(http.MethodGet, "/v1/tasks?status=blocked", "")
	expectHTTPError(t, h.List(c), http.StatusBadRequest)
}

func TestTaskHandler_DueSoon(t *testing.T) {
	f := newFixture(t)
	h := newTaskHandler(f)
	f.login(t, "ana@x.com", domain.RoleAdmin)

	c, rec := f.newContext(http.MethodGet, "/v1/tasks/due-soon", "")
	if err := h.DueSoon(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if page := decode[taskPage](t, rec); page.Total != 1 || page.Items[0].ID != "t1" {
		t.Fatalf("expected t1 due soon, got %+v", page)
	}
}

func TestTaskHandler_Get(t *testing.T) {
	f := newFixture(t)
	h := newTaskHandler(f)
	f.login(t, "ben@x.com", domain.RoleEmployee)

	c, rec := f.newContext(http.MethodGet, "/v1/tasks/t1", "")
	c.SetParamNames("id")
	c.SetParamValues("t1")
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectCode(t, rec, http.StatusOK)

	c, _ = f.newContext(http.MethodGet, "/v1/tasks/t2", "")
	c.SetParamNames("id")
	c.SetParamValues("t2")
	if err := h.Get(c); err == nil {
		t.Fatalf("expected t2 to be hidden from ben")
	}
}

func TestTaskHandler_CreateDone_StampsCompletion(t *testing.T) {
	f := newFixture(t)
	h := newTaskHandler(f)

	c, rec := f.newContext(http.MethodPost, "/v1/tasks",
		`{"title":"Ship","status":"done","priority":"medium","project_id":"p1","due_date":"2024-03-20"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectCode(t, rec, http.StatusCreated)

	got := decode[taskResponse](t, rec)
	if got.ID == "" || got.CompletedAt == nil || !got.CompletedAt.Equal(testNow) {
		t.Fatalf("expected completion stamp, got %+v", got)
	}
	if !got.CreatedAt.Equal(testNow) {
		t.Fatalf("expected created_at from store clock, got %v", got.CreatedAt)
	}
}

func TestTaskHandler_Create_Invalid(t *testing.T) {
	f := newFixture(t)
	h := newTaskHandler(f)

	for name, body := range map[string]string{
		"missing title": `{"status":"todo","priority":"low"}`,
		"bad status":    `{"title":"x","status":"blocked","priority":"low"}`,
		"bad date":      `{"title":"x","status":"todo","priority":"low","due_date":"03/20/2024"}`,
	} {
		t.Run(name, func(t *testing.T) {
			c, _ := f.newContext(http.MethodPost, "/v1/tasks", body)
			expectHTTPError(t, h.Create(c), http.StatusBadRequest)
		})
	}
}

func TestTaskHandler_Update(t *testing.T) {
	f := newFixture(t)
	h := newTaskHandler(f)

	c, rec := f.newContext(http.MethodPut, "/v1/tasks/t1",
		`{"title":"Header v2","status":"done","priority":"high","project_id":"p1","assignee_id":"e2"}`)
	c.SetParamNames("id")
	c.SetParamValues("t1")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectCode(t, rec, http.StatusOK)

	stored, _ := f.store.Task("t1")
	if stored.Title != "Header v2" || stored.CompletedAt == nil || stored.DueDate != "" {
		t.Fatalf("unexpected stored task: %+v", stored)
	}

	c, _ = f.newContext(http.MethodPut, "/v1/tasks/missing",
		`{"title":"x","status":"todo","priority":"low"}`)
	c.SetParamNames("id")
	c.SetParamValues("missing")
	expectErr(t, h.Update(c), domain.ErrTaskNotFound)
}

func TestTaskHandler_Update_KeepsCompletionWhenReopened(t *testing.T) {
	f := newFixture(t)
	h := newTaskHandler(f)

	c, _ := f.newContext(http.MethodPut, "/v1/tasks/t1", `{"title":"Header","status":"done","priority":"high"}`)
	c.SetParamNames("id")
	c.SetParamValues("t1")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	done, _ := f.store.Task("t1")

	c, _ = f.newContext(http.MethodPut, "/v1/tasks/t1", `{"title":"Header","status":"review","priority":"high"}`)
	c.SetParamNames("id")
	c.SetParamValues("t1")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	reopened, _ := f.store.Task("t1")
	if reopened.CompletedAt == nil || !reopened.CompletedAt.Equal(*done.CompletedAt) {
		t.Fatalf("completed_at should be kept, got %v", reopened.CompletedAt)
	}
}

func TestTaskHandler_Delete(t *testing.T) {
	f := newFixture(t)
	h := newTaskHandler(f)

	c, rec := f.newContext(http.MethodDelete, "/v1/tasks/t1", "")
	c.SetParamNames("id")
	c.SetParamValues("t1")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectCode(t, rec, http.StatusNoContent)

	c, _ = f.newContext(http.MethodDelete, "/v1/tasks/t1", "")
	c.SetParamNames("id")
	c.SetParamValues("t1")
	if err := h.Delete(c); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTaskHandler_List_PageBounds(t *testing.T) {
	f := newFixture(t)
	h := newTaskHandler(f)
	f.login(t, "ana@x.com", domain.RoleAdmin)

	c, _ := f.newContext(http.MethodGet, "/v1/tasks?page=9223372036854775807", "")
	expectHTTPError(t, h.List(c), http.StatusBadRequest)

	c, _ = f.newContext(http.MethodGet, "/v1/tasks/due-soon?page=9223372036854775807", "")
	expectHTTPError(t, h.DueSoon(c), http.StatusBadRequest)

	c, rec := f.newContext(http.MethodGet, "/v1/tasks?page=100000", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	page := decode[taskPage](t, rec)
	if len(page.Items) != 0 || page.Total != 2 {
		t.Fatalf("expected an empty page past the end, got %+v", page)
	}
}
