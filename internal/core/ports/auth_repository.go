package ports

import (
	"context"

	"github.com/workboard/taskboard/internal/core/domain"
)

// CredentialRepository defines persistence of password credentials.
type CredentialRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Credential, error)
	Create(ctx context.Context, cred *domain.Credential) (*domain.Credential, error)
	// Replace overwrites the credential for cred.Email only while it is still
	// linked to prevEmployeeID. Otherwise it returns domain.ErrUserExists.
	Replace(ctx context.Context, cred *domain.Credential, prevEmployeeID string) (*domain.Credential, error)
}
