package ports

import "github.com/ElazAzel/Navyk-Saas-sub000/internal/core/domain"

// SecuredItem is the shape FilterAccessible expects: an opaque ID plus the
// resource class the item belongs to.
type SecuredItem struct {
	ID       string
	Resource domain.Resource
}

// PermissionService answers authorization questions against the static
// role permission table. Denials are ordinary false results, never errors.
type PermissionService interface {
	HasPermission(user *domain.User, resource domain.Resource, action domain.Action, resourceID string) bool
	AccessibleResources(user *domain.User) map[domain.Resource][]domain.Action
	FilterAccessible(user *domain.User, items []SecuredItem, action domain.Action) []SecuredItem
}
