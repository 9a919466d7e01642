package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/workboard/taskboard/internal/core/domain"
	"github.com/workboard/taskboard/internal/core/query"
)

func TestQueryHandler_Dashboard(t *testing.T) {
	f := newFixture(t)
	h := NewQueryHandler(f.queries)
	h.now = func() time.Time { return testNow }
	f.login(t, "ana@x.com", domain.RoleAdmin)

	c, rec := f.newContext(http.MethodGet, "/v1/dashboard", "")
	if err := h.Dashboard(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	d := decode[query.Dashboard](t, rec)
	if d.TotalProjects != 2 || d.TotalTasks != 2 || d.CompletionRate != 50 || d.DueSoon != 1 {
		t.Fatalf("unexpected dashboard: %+v", d)
	}
}

func TestQueryHandler_Search(t *testing.T) {
	f := newFixture(t)
	h := NewQueryHandler(f.queries)
	f.login(t, "ana@x.com", domain.RoleAdmin)

	c, rec := f.newContext(http.MethodGet, "/v1/search?q=WEB", "")
	if err := h.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	res := decode[query.SearchResult](t, rec)
	if len(res.Projects) != 1 || res.Projects[0].ID != "p1" || len(res.Tasks) != 0 {
		t.Fatalf("unexpected search result: %+v", res)
	}
}

func TestReadinessHandler(t *testing.T) {
	f := newFixture(t)
	loading := true
	failing := errors.New("connection refused")

	h := NewReadinessHandler(func() bool { return loading }, map[string]Checker{
		"sqlite": func(context.Context) error { return nil },
	})
	c, rec := f.newContext(http.MethodGet, "/health/ready", "")
	if err := h.Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectCode(t, rec, http.StatusServiceUnavailable)
	if resp := decode[readinessResponse](t, rec); resp.Status != "loading" || !resp.Loading {
		t.Fatalf("unexpected response: %+v", resp)
	}

	loading = false
	c, rec = f.newContext(http.MethodGet, "/health/ready", "")
	if err := h.Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectCode(t, rec, http.StatusOK)

	h.checkers["redis"] = func(context.Context) error { return failing }
	c, rec = f.newContext(http.MethodGet, "/health/ready", "")
	if err := h.Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectCode(t, rec, http.StatusServiceUnavailable)
	resp := decode[readinessResponse](t, rec)
	if resp.Status != "degraded" || resp.Dependencies["redis"].Error != failing.Error() {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestHealthHandler_Liveness(t *testing.T) {
	f := newFixture(t)
	c, rec := f.newContext(http.MethodGet, "/health", "")
	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectCode(t, rec, http.StatusOK)
}
