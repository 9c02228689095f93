package ports

import (
	"context"

	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/domain"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// IdentityService registers platform accounts and verifies credentials
// against the persistent identity store.
type IdentityService interface {
	Register(ctx context.Context, username, password, email, role, associationID string) (*domain.User, error)
	CredentialVerifier
}
