package handler

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/domain"
	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/ports"
	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/service"
)

const maxFetchResponseBytes = 1 << 20

// SecurityHandler exposes the per-session security surface: incident
// reporting and resolution, the security report, vulnerability scanning,
// and the SecureFetch proxy. The audit trail endpoint serves the admin
// dashboard from persistent storage.
type SecurityHandler struct {
	sessions  *service.SessionRegistry
	incidents ports.IncidentRepository
}

// NewSecurityHandler creates a SecurityHandler. incidents may be nil
// when no audit store is configured; the audit endpoint then responds
// 503.
func NewSecurityHandler(sessions *service.SessionRegistry, incidents ports.IncidentRepository) *SecurityHandler {
	return &SecurityHandler{sessions: sessions, incidents: incidents}
}

func (h *SecurityHandler) session(c echo.Context) (*service.SessionManager, error) {
	id, err := clientID(c)
	if err != nil {
		return nil, err
	}
	return h.sessions.GetOrCreate(id), nil
}

// Report returns the session's security report.
//
// @Summary      Get the session security report
// @Tags         security
// @Produce      json
// @Param        X-Client-ID  header  string  true  "Client session identity"
// @Success      200  {object}  domain.SecurityReport
// @Failure      400  {object}  errorResponse
// @Router       /v1/security/report [get]
func (h *SecurityHandler) Report(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, session.Report())
}

// ReportIncident appends an incident to the session log.
//
// @Summary      Report a security incident
// @Tags         security
// @Accept       json
// @Produce      json
// @Param        X-Client-ID  header  string           true  "Client session identity"
// @Param        body         body    incidentRequest  true  "Incident details"
// @Success      201  {object}  domain.SecurityIncident
// @Failure      400  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/security/incidents [post]
func (h *SecurityHandler) ReportIncident(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return err
	}

	var req incidentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	inc := session.ReportIncident(domain.IncidentType(req.Type), req.Source, req.Details)
	return c.JSON(http.StatusCreated, inc)
}

// ListIncidents returns the session's incident log.
//
// @Summary      List the session's incidents
// @Tags         security
// @Produce      json
// @Param        X-Client-ID  header  string  true  "Client session identity"
// @Success      200  {array}  domain.SecurityIncident
// @Failure      400  {object}  errorResponse
// @Router       /v1/security/incidents [get]
func (h *SecurityHandler) ListIncidents(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, session.Report().SuspiciousActivities)
}

// ResolveIncident marks an incident resolved.
//
// @Summary      Resolve an incident
// @Tags         security
// @Param        X-Client-ID  header  string  true  "Client session identity"
// @Param        id           path    string  true  "Incident ID"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/security/incidents/{id}/resolve [post]
func (h *SecurityHandler) ResolveIncident(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return err
	}

	if err := session.ResolveIncident(c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Scan runs the heuristic vulnerability scan against a document snapshot.
//
// @Summary      Scan a document snapshot
// @Tags         security
// @Accept       json
// @Produce      json
// @Param        X-Client-ID  header  string       true  "Client session identity"
// @Param        body         body    scanRequest  true  "Document to scan"
// @Success      200  {object}  domain.SecurityReport
// @Failure      400  {object}  errorResponse
// @Router       /v1/security/scan [post]
func (h *SecurityHandler) Scan(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return err
	}

	var req scanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	report := session.ScanForVulnerabilities(c.Request().Context(), req.Document)
	return c.JSON(http.StatusOK, report)
}

// Fetch proxies an outbound request through the session's SecureFetch.
//
// @Summary      Perform a secured outbound request
// @Tags         security
// @Accept       json
// @Produce      json
// @Param        X-Client-ID  header  string        true  "Client session identity"
// @Param        body         body    fetchRequest  true  "Request to perform"
// @Success      200  {object}  fetchResponse
// @Failure      400  {object}  errorResponse
// @Failure      429  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /v1/security/fetch [post]
func (h *SecurityHandler) Fetch(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return err
	}

	var req fetchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	var body io.Reader
	if req.Body != "" {
		body = strings.NewReader(req.Body)
	}

	resp, err := session.SecureFetch(c.Request().Context(), req.Method, req.URL, body)
	if err != nil {
		if err == domain.ErrRateLimited {
			return err
		}
		return echo.NewHTTPError(http.StatusBadGateway, "upstream request failed")
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchResponseBytes))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "upstream response unreadable")
	}

	return c.JSON(http.StatusOK, fetchResponse{Status: resp.StatusCode, Body: string(payload)})
}

// Audit returns the persisted incident audit trail, newest first.
//
// @Summary      List audited incidents
// @Tags         security
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query  int  false  "Maximum records (default 50)"
// @Success      200  {array}  ports.IncidentRecord
// @Failure      403  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /v1/security/audit [get]
func (h *SecurityHandler) Audit(c echo.Context) error {
	if h.incidents == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "audit store not configured")
	}

	limit := int64(50)
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}

	records, err := h.incidents.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}
