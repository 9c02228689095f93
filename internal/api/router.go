package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/ElazAzel/Navyk-Saas-sub000/internal/api/handler"
	"github.com/ElazAzel/Navyk-Saas-sub000/internal/api/middleware"
	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/domain"
	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/ports"
	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/service"
)

// RouterDeps carries everything the router wires together. Identity,
// Users, and Incidents are optional: endpoints depending on them degrade
// explicitly instead of panicking.
type RouterDeps struct {
	Sessions    *service.SessionRegistry
	Permissions ports.PermissionService
	Identity    ports.IdentityService
	Users       ports.UserRepository
	Incidents   ports.IncidentRepository
	Activity    middleware.ActivityEmitter
	Health      *handler.HealthDependenciesHandler
	JWTSecret   string
	Log         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.Activity(deps.Activity))
	e.Use(echoprometheus.NewMiddleware("navyk_security"))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Sessions, deps.Identity)
	securityHandler := handler.NewSecurityHandler(deps.Sessions, deps.Incidents)
	permissionHandler := handler.NewPermissionHandler(deps.Permissions, deps.Users)
	authMiddleware := middleware.Auth(deps.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.GET("/auth/csrf", authHandler.CSRF)

	// --- Session security surface ---
	sec := e.Group("/v1/security")
	sec.GET("/report", securityHandler.Report)
	sec.GET("/incidents", securityHandler.ListIncidents)
	sec.POST("/incidents", securityHandler.ReportIncident)
	sec.POST("/incidents/:id/resolve", securityHandler.ResolveIncident)
	sec.POST("/scan", securityHandler.Scan)
	sec.POST("/fetch", securityHandler.Fetch)

	// Audit trail is admin territory: system_settings view.
	sec.GET("/audit", securityHandler.Audit, authMiddleware,
		middleware.Permission(deps.Permissions, domain.ResourceSystemSettings, domain.ActionView))

	// --- Permission queries (authenticated) ---
	perms := e.Group("/v1/permissions", authMiddleware)
	perms.POST("/check", permissionHandler.Check)
	perms.GET("/resources", permissionHandler.Resources)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness) // liveness  – is the process alive?
	if deps.Health != nil {
		e.GET("/health/ready", deps.Health.Readiness) // readiness – are dependencies up?
	}
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
