package service

import (
	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/domain"
	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/ports"
)

// PermissionService evaluates authorization requests against the static
// role permission table. It is a total function over its inputs: unknown
// roles, resources, and actions all evaluate to deny, never to an error.
type PermissionService struct {
	rules map[string][]domain.AccessRule
}

// NewPermissionService returns a PermissionService backed by the shipped
// role permission table.
func NewPermissionService() *PermissionService {
	return &PermissionService{rules: domain.RolePermissions}
}

// NewPermissionServiceWithRules returns a PermissionService backed by a
// custom rule table. Intended for tests.
func NewPermissionServiceWithRules(rules map[string][]domain.AccessRule) *PermissionService {
	return &PermissionService{rules: rules}
}

// HasPermission reports whether the user may perform action on resource.
// resourceID is only consulted by ownership conditions and may be empty.
func (s *PermissionService) HasPermission(user *domain.User, resource domain.Resource, action domain.Action, resourceID string) bool {
	if user == nil || user.Role == "" {
		return false
	}

	rules, ok := s.rules[user.Role]
	if !ok {
		return false
	}

	// First match wins; the shipped table carries at most one rule per
	// resource per role.
	for _, rule := range rules {
		if rule.Resource != resource {
			continue
		}
		if !rule.Allows(action) {
			return false
		}
		return rule.Condition.Evaluate(user, resourceID)
	}
	return false
}

// AccessibleResources returns every resource/action pair the user can
// reach without naming a specific resource. Conditions are evaluated with
// an empty resource ID, so ownership-gated rules only appear when their
// association field alone satisfies them.
func (s *PermissionService) AccessibleResources(user *domain.User) map[domain.Resource][]domain.Action {
	result := make(map[domain.Resource][]domain.Action)
	if user == nil || user.Role == "" {
		return result
	}

	consulted := make(map[domain.Resource]struct{})
	for _, rule := range s.rules[user.Role] {
		if _, seen := consulted[rule.Resource]; seen {
			continue
		}
		consulted[rule.Resource] = struct{}{}
		if !rule.Condition.Evaluate(user, "") {
			continue
		}
		actions := make([]domain.Action, len(rule.Actions))
		copy(actions, rule.Actions)
		result[rule.Resource] = actions
	}
	return result
}

// FilterAccessible returns the items the user may perform action on,
// preserving input order.
func (s *PermissionService) FilterAccessible(user *domain.User, items []ports.SecuredItem, action domain.Action) []ports.SecuredItem {
	accessible := make([]ports.SecuredItem, 0, len(items))
	for _, item := range items {
		if s.HasPermission(user, item.Resource, action, item.ID) {
			accessible = append(accessible, item)
		}
	}
	return accessible
}
