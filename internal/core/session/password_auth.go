package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/workboard/taskboard/internal/core/domain"
	"github.com/workboard/taskboard/internal/core/ports"
)

// EmployeeResolver finds employees by id or exact email.
type EmployeeResolver interface {
	EmployeeDirectory
	Employee(id string) (domain.Employee, bool)
}

// PasswordAuthenticator checks a bcrypt hash kept in a CredentialRepository.
// The session role comes from the stored credential, never from the caller.
type PasswordAuthenticator struct {
	repo      ports.CredentialRepository
	directory EmployeeResolver
	cost      int
	now       func() time.Time
}

func NewPasswordAuthenticator(repo ports.CredentialRepository, directory EmployeeResolver) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		repo:      repo,
		directory: directory,
		cost:      bcrypt.DefaultCost,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (a *PasswordAuthenticator) Authenticate(ctx context.Context, creds ports.Credentials) (*domain.CurrentUser, error) {
	if creds.Email == "" || creds.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	cred, err := a.repo.FindByEmail(ctx, creds.Email)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(creds.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	emp, ok := a.resolve(cred, creds.Email)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return domain.NewCurrentUser(emp, cred.Role), nil
}

// resolve prefers the linked employee id. Credentials enrolled by email only
// fall back to an email lookup.
func (a *PasswordAuthenticator) resolve(cred *domain.Credential, email string) (domain.Employee, bool) {
	if cred.EmployeeID != "" {
		return a.directory.Employee(cred.EmployeeID)
	}
	if emp, ok := a.directory.EmployeeByEmail(email); ok {
		return emp, true
	}
	return a.directory.EmployeeByEmail(cred.Email)
}

// Register stores an employee-role credential for a newly added employee. A
// credential left behind by a deleted employee is taken over; one whose
// employee still exists, or that was enrolled by email only, is not.
func (a *PasswordAuthenticator) Register(ctx context.Context, employee domain.Employee, password string) error {
	cred, err := a.credential(employee.ID, employee.Email, password, domain.RoleEmployee)
	if err != nil {
		return err
	}
	_, err = a.repo.Create(ctx, cred)
	if !errors.Is(err, domain.ErrUserExists) {
		return err
	}

	prev, findErr := a.repo.FindByEmail(ctx, cred.Email)
	if findErr != nil {
		return err
	}
	if prev.EmployeeID == "" || prev.EmployeeID == employee.ID {
		return err
	}
	if _, ok := a.directory.Employee(prev.EmployeeID); ok {
		return err
	}
	cred.CreatedAt = prev.CreatedAt
	_, err = a.repo.Replace(ctx, cred, prev.EmployeeID)
	return err
}

// Enroll stores a credential with an explicit role. The employee id may be empty
// when the employee is only known by email, as for a bootstrap admin.
func (a *PasswordAuthenticator) Enroll(ctx context.Context, employeeID, email, password string, role domain.Role) error {
	cred, err := a.credential(employeeID, email, password, role)
	if err != nil {
		return err
	}
	_, err = a.repo.Create(ctx, cred)
	return err
}

func (a *PasswordAuthenticator) credential(employeeID, email, password string, role domain.Role) (*domain.Credential, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return nil, err
	}

	now := a.now()
	return &domain.Credential{
		EmployeeID:   employeeID,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
