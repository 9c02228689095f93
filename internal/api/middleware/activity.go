package middleware

import "github.com/labstack/echo/v4"

// ClientHeader carries the caller's session identity. The handlers fall
// back to it as well; the middleware only needs it to route activity.
const ClientHeader = "X-Client-ID"

// ActivityEmitter is the signal sink activity tracking feeds.
type ActivityEmitter interface {
	Emit(clientID string)
}

// Activity emits one activity signal per request for the calling client,
// keeping its session inactivity clock fresh. Coarse on purpose: the
// 1-minute inactivity check granularity makes per-request emission cheap
// enough.
func Activity(emitter ActivityEmitter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if clientID := c.Request().Header.Get(ClientHeader); clientID != "" {
				emitter.Emit(clientID)
			}
			return next(c)
		}
	}
}
