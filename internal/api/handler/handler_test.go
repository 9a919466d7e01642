package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/workboard/taskboard/internal/api/middleware"
	"github.com/workboard/taskboard/internal/core/domain"
	"github.com/workboard/taskboard/internal/core/ports"
	"github.com/workboard/taskboard/internal/core/query"
	"github.com/workboard/taskboard/internal/core/session"
	"github.com/workboard/taskboard/internal/core/store"
	"github.com/workboard/taskboard/internal/infrastructure/db/memory"
)

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	e       *echo.Echo
	store   *store.Store
	queries *query.Service
	gate    *session.Gate
	tokens  *session.Tokens
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := store.New(zerolog.Nop(), store.WithClock(func() time.Time { return testNow }))
	err := st.DispatchBatch(context.Background(),
		store.SetEmployees{Employees: []domain.Employee{
			{ID: "e1", Name: "Ana", Email: "ana@x.com", Role: "Lead"},
			{ID: "e2", Name: "Ben", Email: "ben@x.com", Role: "Dev"},
		}},
		store.SetProjects{Projects: []domain.Project{
			{ID: "p1", Name: "Website", Status: domain.StatusInProgress, StartDate: "2024-01-01", TeamIDs: []string{"e2"}},
			{ID: "p2", Name: "Mobile", Status: domain.StatusTodo, StartDate: "2024-02-01", TeamIDs: []string{"e1"}},
		}},
		store.SetTasks{Tasks: []domain.Task{
			{ID: "t1", Title: "Header", Status: domain.StatusTodo, Priority: domain.PriorityHigh, ProjectID: "p1", AssigneeID: "e2", DueDate: "2024-03-12"},
			{ID: "t2", Title: "Footer", Status: domain.StatusDone, Priority: domain.PriorityLow, ProjectID: "p1", AssigneeID: "e1", DueDate: "2024-03-01"},
		}},
		store.SetLoading{Loading: false},
	)
	if err != nil {
		t.Fatalf("seed store: %v", err)
	}

	gate, _ := session.NewGate(context.Background(), st, session.NewDemoAuthenticator(st), memory.NewSessionStore(), zerolog.Nop())

	e := echo.New()
	e.Validator = NewValidator()
	return &fixture{e: e, store: st, queries: query.New(st), gate: gate, tokens: session.NewTokens("secret", time.Hour)}
}

func (f *fixture) login(t *testing.T, email string, role domain.Role) *domain.CurrentUser {
	t.Helper()
	u, err := f.gate.Login(context.Background(), ports.Credentials{Email: email, Role: role})
	if err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
	return u
}

// newContext builds a request context. body may be empty.
func (f *fixture) newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := f.e.NewContext(req, rec)
	if u := f.gate.Current(); u != nil {
		c.Set(middleware.ContextUser, u)
	}
	return c, rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return v
}

func expectHTTPError(t *testing.T, err error, want int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != want {
		t.Fatalf("expected HTTP %d error, got %v", want, err)
	}
}

func expectCode(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func expectErr(t *testing.T, err, want error) {
	t.Helper()
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}
