package service

import (
	"context"
	"strings"

	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/domain"
)

// BaselineRole is granted to every authenticated session regardless of
// how the credentials were verified.
const BaselineRole = "user"

// MockCredentialVerifier is the demo credential adapter: any non-empty
// username/password pair is accepted and the role set is inferred from
// substrings of the username. It exists so the surrounding session state
// machine can be exercised without an identity store; a real deployment
// swaps in IdentityService and must not reproduce the accept-anything
// rule.
type MockCredentialVerifier struct{}

func NewMockCredentialVerifier() *MockCredentialVerifier {
	return &MockCredentialVerifier{}
}

// Verify accepts any non-empty credential pair. The inferred role set
// always contains BaselineRole; "admin" anywhere in the username adds the
// admin role, and student/employer/university substrings add theirs.
func (v *MockCredentialVerifier) Verify(_ context.Context, username, password string) ([]string, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	roles := []string{BaselineRole}
	name := strings.ToLower(username)
	if strings.Contains(name, "admin") {
		roles = append(roles, domain.RoleAdmin)
	}
	if strings.Contains(name, "student") {
		roles = append(roles, domain.RoleStudent)
	}
	if strings.Contains(name, "employer") {
		roles = append(roles, domain.RoleEmployer)
	}
	if strings.Contains(name, "university") {
		roles = append(roles, domain.RoleUniversityAdmin)
	}
	return roles, nil
}
