package session

import (
	"context"

	"github.com/workboard/taskboard/internal/core/domain"
	"github.com/workboard/taskboard/internal/core/ports"
)

// EmployeeDirectory finds employees by exact email.
type EmployeeDirectory interface {
	EmployeeByEmail(email string) (domain.Employee, bool)
}

// DemoAuthenticator is the development strategy: it trusts the caller. Any
// known email logs in, with whatever role the caller declares. Do not use it
// where the role matters.
type DemoAuthenticator struct {
	directory EmployeeDirectory
}

func NewDemoAuthenticator(directory EmployeeDirectory) *DemoAuthenticator {
	return &DemoAuthenticator{directory: directory}
}

func (a *DemoAuthenticator) Authenticate(_ context.Context, creds ports.Credentials) (*domain.CurrentUser, error) {
	if !creds.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	emp, ok := a.directory.EmployeeByEmail(creds.Email)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return domain.NewCurrentUser(emp, creds.Role), nil
}
