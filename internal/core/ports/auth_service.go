package ports

import (
	"context"

	"github.com/workboard/taskboard/internal/core/domain"
)

// Credentials is what a caller presents at login. Password is ignored by the
// demo strategy; Role is ignored by the password strategy.
type Credentials struct {
	Email    string
	Role     domain.Role
	Password string
}

// Authenticator turns credentials into a session user. A lookup miss returns
// domain.ErrUserNotFound.
type Authenticator interface {
	Authenticate(ctx context.Context, creds Credentials) (*domain.CurrentUser, error)
}

// Registrar is implemented by strategies that keep their own secrets and must be
// told about newly registered employees.
type Registrar interface {
	Register(ctx context.Context, employee domain.Employee, password string) error
}
