package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/workboard/taskboard/internal/core/domain"
	"github.com/workboard/taskboard/internal/core/session"
)

type stubVerifier struct {
	claims *session.Claims
	err    error
}

func (s stubVerifier) Verify(string) (*session.Claims, error) {
	return s.claims, s.err
}

type stubSession struct {
	user *domain.CurrentUser
}

func (s stubSession) Current() *domain.CurrentUser { return s.user }

func adminClaims() *session.Claims {
	c := &session.Claims{Role: domain.RoleAdmin}
	c.Subject = "emp1"
	return c
}

func runAuth(t *testing.T, header string, mw echo.MiddlewareFunc) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	user := &domain.CurrentUser{ID: "emp1", Role: domain.RoleAdmin}
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(stubVerifier{claims: adminClaims()}, stubSession{user: user})
	handler := mw(func(c echo.Context) error {
		if c.Get(ContextUser) != user {
			t.Fatalf("user not set")
		}
		if c.Get(ContextRole) != "admin" {
			t.Fatalf("role not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	live := stubSession{user: &domain.CurrentUser{ID: "emp1", Role: domain.RoleAdmin}}

	tests := []struct {
		name   string
		header string
		mw     echo.MiddlewareFunc
	}{
		{name: "missing header", header: "", mw: Auth(stubVerifier{claims: adminClaims()}, live)},
		{name: "wrong scheme", header: "Token abc", mw: Auth(stubVerifier{claims: adminClaims()}, live)},
		{name: "invalid token", header: "Bearer abc", mw: Auth(stubVerifier{err: errors.New("bad")}, live)},
		{name: "after logout", header: "Bearer abc", mw: Auth(stubVerifier{claims: adminClaims()}, stubSession{})},
		{
			name:   "session switched user",
			header: "Bearer abc",
			mw:     Auth(stubVerifier{claims: adminClaims()}, stubSession{user: &domain.CurrentUser{ID: "emp2", Role: domain.RoleAdmin}}),
		},
		{
			name:   "role downgraded",
			header: "Bearer abc",
			mw:     Auth(stubVerifier{claims: adminClaims()}, stubSession{user: &domain.CurrentUser{ID: "emp1", Role: domain.RoleEmployee}}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, called := runAuth(t, tt.header, tt.mw)
			if called {
				t.Fatalf("should not reach next")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestRequireLoaded(t *testing.T) {
	loading := true
	mw := RequireLoaded(func() bool { return loading })

	rec, called := runAuth(t, "", mw)
	if called || rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 while loading, got %d (called=%v)", rec.Code, called)
	}

	loading = false
	rec, called = runAuth(t, "", mw)
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through after load, got %d", rec.Code)
	}
}
