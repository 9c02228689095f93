package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: the role set must
// be non-empty (presence proves the middleware ran).
func ctxClaims(c echo.Context) (username string, roles []string, err error) {
	roles, _ = c.Get("roles").([]string)
	if len(roles) == 0 {
		return "", nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	username, _ = c.Get("username").(string)
	return username, roles, nil
}

// clientID resolves the caller's session identity from the X-Client-ID
// header. Sessions are keyed by it; a missing header is a 400, not a
// security event.
func clientID(c echo.Context) (string, error) {
	id := c.Request().Header.Get("X-Client-ID")
	if id == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "missing X-Client-ID header")
	}
	return id, nil
}
