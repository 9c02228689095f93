package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/domain"
	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/ports"
)

// IdentityService implements registration and credential verification
// against the persistent identity store.
type IdentityService struct {
	repo ports.UserRepository
}

func NewIdentityService(repo ports.UserRepository) *IdentityService {
	return &IdentityService{repo: repo}
}

// Register creates a platform account. The association ID is stored in
// the ownership field matching the role, so rule conditions can use it.
func (s *IdentityService) Register(ctx context.Context, username, password, email, role, associationID string) (*domain.User, error) {
	if username == "" || password == "" || role == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !domain.IsValidRole(role) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	switch role {
	case domain.RoleEmployer:
		user.EmployerID = associationID
	case domain.RoleUniversityAdmin:
		user.UniversityID = associationID
	case domain.RoleMentor:
		user.MentorID = associationID
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Verify checks the password against the stored bcrypt hash and returns
// the role set the session should carry: the user's role plus the
// baseline "user" role.
func (s *IdentityService) Verify(ctx context.Context, username, password string) ([]string, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return []string{BaselineRole, user.Role}, nil
}
