package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/domain"
	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/ports"
)

// Permission enforces resource/action authorization against the
// permission engine. The requesting user is reconstructed from the auth
// claims; any role in the token that grants the action passes. A denial
// is a 403, never an error.
func Permission(perm ports.PermissionService, resource domain.Resource, action domain.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, _ := c.Get("roles").([]string)
			username, _ := c.Get("username").(string)
			resourceID := c.Param("id")

			for _, role := range roles {
				user := &domain.User{Username: username, Role: role}
				if perm.HasPermission(user, resource, action, resourceID) {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}
