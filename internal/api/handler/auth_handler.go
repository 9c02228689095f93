package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/domain"
	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/ports"
	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/service"
	"github.com/ElazAzel/Navyk-Saas-sub000/internal/pkg/sanitize"
)

// AuthHandler owns the session lifecycle endpoints.
type AuthHandler struct {
	sessions *service.SessionRegistry
	identity ports.IdentityService
}

// NewAuthHandler creates an AuthHandler. identity may be nil when the
// service runs in mock credential mode; Register then responds 501.
func NewAuthHandler(sessions *service.SessionRegistry, identity ports.IdentityService) *AuthHandler {
	return &AuthHandler{sessions: sessions, identity: identity}
}

// Login authenticates the caller's session and returns the minted token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        X-Client-ID  header    string        true  "Client session identity"
// @Param        body         body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	id, err := clientID(c)
	if err != nil {
		return err
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	session := h.sessions.GetOrCreate(id)
	if !session.Login(c.Request().Context(), req.Username, req.Password) {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	return c.JSON(http.StatusOK, loginResponse{
		Token:         session.Token(),
		Roles:         session.Roles(),
		SessionExpiry: session.SessionExpiry(),
		CSRFToken:     session.CSRFToken(),
	})
}

// Logout ends the caller's authenticated session. Idempotent: an
// anonymous session logs out to the same place.
//
// @Summary      Logout
// @Tags         auth
// @Param        X-Client-ID  header  string  true  "Client session identity"
// @Success      204
// @Failure      400   {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	id, err := clientID(c)
	if err != nil {
		return err
	}

	if session := h.sessions.Get(id); session != nil {
		session.Logout(c.Request().Context())
	}
	return c.NoContent(http.StatusNoContent)
}

// Refresh exchanges the session's token for a fresh one.
//
// @Summary      Refresh the session token
// @Tags         auth
// @Produce      json
// @Param        X-Client-ID  header  string  true  "Client session identity"
// @Success      200   {object}  refreshResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	id, err := clientID(c)
	if err != nil {
		return err
	}

	session := h.sessions.Get(id)
	if session == nil || !session.RefreshToken(c.Request().Context()) {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	return c.JSON(http.StatusOK, refreshResponse{
		Token:         session.Token(),
		SessionExpiry: session.SessionExpiry(),
	})
}

// CSRF returns the session's CSRF token.
//
// @Summary      Get the session CSRF token
// @Tags         auth
// @Produce      json
// @Param        X-Client-ID  header  string  true  "Client session identity"
// @Success      200   {object}  csrfResponse
// @Failure      400   {object}  errorResponse
// @Router       /auth/csrf [get]
func (h *AuthHandler) CSRF(c echo.Context) error {
	id, err := clientID(c)
	if err != nil {
		return err
	}

	session := h.sessions.GetOrCreate(id)
	return c.JSON(http.StatusOK, csrfResponse{CSRFToken: session.CSRFToken()})
}

// Register creates a platform account in the identity store.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	if h.identity == nil {
		return echo.NewHTTPError(http.StatusNotImplemented, "registration disabled in mock credential mode")
	}

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	if !sanitize.IsValidUsername(req.Username) {
		return echo.NewHTTPError(http.StatusBadRequest, "username must be 3-20 letters, digits, _ or -")
	}
	if !sanitize.IsPasswordStrong(req.Password) {
		return echo.NewHTTPError(http.StatusBadRequest,
			"password needs upper and lower case letters, a digit, a symbol (@$!%*?&), and at least 8 characters")
	}

	user, err := h.identity.Register(c.Request().Context(),
		req.Username, req.Password, req.Email, req.Role, req.AssociationID)
	if err != nil {
		switch err {
		case domain.ErrUserExists:
			return echo.NewHTTPError(http.StatusConflict, "user already exists")
		case domain.ErrInvalidCredentials:
			return echo.NewHTTPError(http.StatusBadRequest, "invalid registration details")
		}
		return err
	}

	return c.JSON(http.StatusCreated, user)
}
