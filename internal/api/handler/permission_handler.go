package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/domain"
	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/ports"
)

// PermissionHandler answers authorization questions for the caller's
// identity. When a user repository is available the user's ownership
// fields are loaded from it, so condition-gated rules evaluate against
// real associations; otherwise the check runs on claims alone.
type PermissionHandler struct {
	perm  ports.PermissionService
	users ports.UserRepository
}

// NewPermissionHandler creates a PermissionHandler. users may be nil.
func NewPermissionHandler(perm ports.PermissionService, users ports.UserRepository) *PermissionHandler {
	return &PermissionHandler{perm: perm, users: users}
}

type checkRequest struct {
	Resource   string `json:"resource"    validate:"required"`
	Action     string `json:"action"      validate:"required"`
	ResourceID string `json:"resource_id,omitempty"`
}

type checkResponse struct {
	Allowed bool `json:"allowed"`
}

type resourcesResponse struct {
	Resources map[domain.Resource][]domain.Action `json:"resources"`
}

// Check reports whether the caller may perform an action on a resource.
// A denial is a normal 200 with allowed=false.
//
// @Summary      Check a permission
// @Tags         permissions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      checkRequest  true  "Permission query"
// @Success      200   {object}  checkResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/permissions/check [post]
func (h *PermissionHandler) Check(c echo.Context) error {
	username, roles, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req checkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	allowed := false
	for _, user := range h.resolveUsers(c.Request().Context(), username, roles) {
		if h.perm.HasPermission(user, domain.Resource(req.Resource), domain.Action(req.Action), req.ResourceID) {
			allowed = true
			break
		}
	}
	return c.JSON(http.StatusOK, checkResponse{Allowed: allowed})
}

// Resources lists every resource/action pair reachable by the caller.
//
// @Summary      List accessible resources
// @Tags         permissions
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  resourcesResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/permissions/resources [get]
func (h *PermissionHandler) Resources(c echo.Context) error {
	username, roles, err := ctxClaims(c)
	if err != nil {
		return err
	}

	merged := make(map[domain.Resource][]domain.Action)
	for _, user := range h.resolveUsers(c.Request().Context(), username, roles) {
		for resource, actions := range h.perm.AccessibleResources(user) {
			if _, ok := merged[resource]; !ok {
				merged[resource] = actions
			}
		}
	}
	return c.JSON(http.StatusOK, resourcesResponse{Resources: merged})
}

// resolveUsers builds one candidate user per claimed role. The stored
// user, when available, contributes the ownership fields.
func (h *PermissionHandler) resolveUsers(ctx context.Context, username string, roles []string) []*domain.User {
	var stored *domain.User
	if h.users != nil && username != "" {
		if u, err := h.users.FindByUsername(ctx, username); err == nil {
			stored = u
		}
	}

	users := make([]*domain.User, 0, len(roles))
	for _, role := range roles {
		user := &domain.User{Username: username, Role: role}
		if stored != nil {
			user.ID = stored.ID
			user.EmployerID = stored.EmployerID
			user.UniversityID = stored.UniversityID
			user.MentorID = stored.MentorID
		}
		users = append(users, user)
	}
	return users
}
