package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ElazAzel/Navyk-Saas-sub000/internal/api/metrics"
	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/domain"
	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/ports"
)

// SessionConfig tunes one session's timers and storage keys.
type SessionConfig struct {
	// AppName prefixes the durable storage keys: "<app>_token" and
	// "<app>_request_count".
	AppName string
	// ClientID identifies the owning client in audit records.
	ClientID string
	// RefreshWindow: a stored token with less remaining life than this
	// is refreshed at startup instead of adopted.
	RefreshWindow time.Duration
	// InactivityLimit forces logout when no activity is seen for this
	// long while authenticated.
	InactivityLimit time.Duration
	// CheckInterval is the cadence of the inactivity watcher.
	CheckInterval time.Duration
	// RateLimitWindow / RateLimitMax bound SecureFetch throughput.
	RateLimitWindow time.Duration
	RateLimitMax    int
}

// DefaultSessionConfig mirrors the platform defaults: 30-minute idle
// limit checked once a minute, 10-minute refresh window, 100 requests per
// 60-second window.
func DefaultSessionConfig(appName string) SessionConfig {
	return SessionConfig{
		AppName:         appName,
		RefreshWindow:   10 * time.Minute,
		InactivityLimit: 30 * time.Minute,
		CheckInterval:   time.Minute,
		RateLimitWindow: time.Minute,
		RateLimitMax:    100,
	}
}

func (c SessionConfig) tokenKey() string        { return c.AppName + "_token" }
func (c SessionConfig) requestCountKey() string { return c.AppName + "_request_count" }

// SessionManager owns the security state of one client session: the
// signed token and its lifecycle, the CSRF token, the activity clock, and
// the incident log with its derived threat level.
//
// State transitions are driven by explicit calls plus the inactivity
// watcher started by Start. A mutex serializes them; the original client
// ran on a single event loop and the mutex preserves those sequential
// semantics under concurrent HTTP handlers.
type SessionManager struct {
	cfg      SessionConfig
	tokens   *TokenManager
	verifier ports.CredentialVerifier
	store    ports.KeyValueStore
	notifier ports.Notifier
	clock    ports.Clock
	audit    ports.AuditSink
	doer     ports.Doer
	log      zerolog.Logger

	// counterMu serializes the request-counter read-modify-write so
	// concurrent SecureFetch calls cannot lose updates and admit more
	// than the window budget.
	counterMu sync.Mutex

	mu            sync.Mutex
	authenticated bool
	currentToken  string
	username      string
	userRoles     []string
	sessionExpiry time.Time
	lastActivity  time.Time
	csrfToken     string
	report        domain.SecurityReport
	// reportedWindow is the start of the last rate-limit window that
	// already produced a multiple_requests incident, so each burst
	// window is reported exactly once.
	reportedWindow int64

	stop chan struct{}
}

// SessionDeps carries the collaborators a SessionManager needs. Audit and
// Doer are optional; the rest are required.
type SessionDeps struct {
	Tokens   *TokenManager
	Verifier ports.CredentialVerifier
	Store    ports.KeyValueStore
	Notifier ports.Notifier
	Clock    ports.Clock
	Audit    ports.AuditSink
	Doer     ports.Doer
	Log      zerolog.Logger
}

// NewSessionManager builds a session in the Anonymous state. Call Start
// to adopt any persisted token and launch the inactivity watcher.
func NewSessionManager(cfg SessionConfig, deps SessionDeps) *SessionManager {
	if cfg.AppName == "" {
		cfg.AppName = "navyk"
	}
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = time.Minute
	}
	return &SessionManager{
		cfg:      cfg,
		tokens:   deps.Tokens,
		verifier: deps.Verifier,
		store:    deps.Store,
		notifier: deps.Notifier,
		clock:    deps.Clock,
		audit:    deps.Audit,
		doer:     deps.Doer,
		log:      deps.Log,
		report:   domain.SecurityReport{ThreatLevel: domain.ThreatLow},
		stop:     make(chan struct{}),
	}
}

// Start generates the session's CSRF token, verifies any token left in
// durable storage, and launches the inactivity watcher. The watcher stops
// when ctx is cancelled or Stop is called.
func (m *SessionManager) Start(ctx context.Context) {
	m.mu.Lock()
	m.csrfToken = newCSRFToken()
	m.lastActivity = m.clock.Now()
	m.mu.Unlock()

	m.verifyAndRefreshToken(ctx)

	go m.watchInactivity(ctx)
}

// Stop halts the inactivity watcher. The in-memory state survives until
// the manager is dropped; Logout clears it explicitly.
func (m *SessionManager) Stop() {
	select {
	case <-m.stop:
	default:
		close(m.stop)
	}
}

// Touch records user activity. Wired to an ActivitySource via Observe.
func (m *SessionManager) Touch() {
	m.mu.Lock()
	m.lastActivity = m.clock.Now()
	m.mu.Unlock()
}

// Observe subscribes the session's activity clock to the given source.
func (m *SessionManager) Observe(src ports.ActivitySource) {
	src.OnActivity(m.Touch)
}

// Login verifies credentials and, on success, mints a fresh token and
// enters the Authenticated state. Failure is a false return plus incident
// bookkeeping, never an error: the caller only learns that the attempt
// was rejected.
func (m *SessionManager) Login(ctx context.Context, username, password string) bool {
	roles, err := m.verifier.Verify(ctx, username, password)
	if err != nil || len(roles) == 0 {
		m.recordFailedLogin(username)
		return false
	}

	now := m.clock.Now()
	token, err := m.tokens.Mint(username, roles, now)
	if err != nil {
		m.log.Error().Err(err).Str("username", username).Msg("token mint failed")
		m.recordFailedLogin(username)
		return false
	}

	if err := m.store.Set(ctx, m.cfg.tokenKey(), token); err != nil {
		m.log.Error().Err(err).Msg("token persist failed")
	}

	m.mu.Lock()
	m.authenticated = true
	m.currentToken = token
	m.username = username
	m.userRoles = roles
	m.sessionExpiry = now.Add(m.tokens.TTL())
	m.lastActivity = now
	m.report.FailedLoginAttempts = 0
	m.mu.Unlock()

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	m.log.Info().Str("username", username).Strs("roles", roles).Msg("login succeeded")
	return true
}

func (m *SessionManager) recordFailedLogin(username string) {
	m.mu.Lock()
	m.report.FailedLoginAttempts++
	failed := m.report.FailedLoginAttempts
	inc := m.appendIncidentLocked(domain.IncidentLoginAttempt, "login",
		fmt.Sprintf("failed login attempt for %q", username))
	m.report.ThreatLevel = domain.ClassifyLoginFailures(failed)
	m.mu.Unlock()

	m.publish(inc)
	metrics.LoginsTotal.WithLabelValues("failure").Inc()
	metrics.ThreatLevel.WithLabelValues(m.cfg.ClientID).Set(threatScore(domain.ClassifyLoginFailures(failed)))
	m.log.Warn().Str("username", username).Int("failed_attempts", failed).Msg("login failed")
}

// Logout removes the persisted token and resets the session to the
// Anonymous state. Idempotent.
func (m *SessionManager) Logout(ctx context.Context) {
	if err := m.store.Delete(ctx, m.cfg.tokenKey()); err != nil {
		m.log.Error().Err(err).Msg("token removal failed")
	}

	m.mu.Lock()
	wasAuthenticated := m.authenticated
	m.authenticated = false
	m.currentToken = ""
	m.username = ""
	m.userRoles = nil
	m.sessionExpiry = time.Time{}
	m.mu.Unlock()

	if wasAuthenticated {
		m.notifier.SessionEnded("logged out")
		m.log.Info().Msg("session ended")
	}
}

// RefreshToken mints a replacement token carrying the current role set.
// Returns false when the session is not authenticated or holds no roles.
func (m *SessionManager) RefreshToken(ctx context.Context) bool {
	m.mu.Lock()
	if !m.authenticated || len(m.userRoles) == 0 {
		m.mu.Unlock()
		return false
	}
	username := m.username
	roles := m.userRoles
	m.mu.Unlock()

	now := m.clock.Now()
	token, err := m.tokens.Mint(username, roles, now)
	if err != nil {
		m.log.Error().Err(err).Msg("token refresh failed")
		return false
	}

	if err := m.store.Set(ctx, m.cfg.tokenKey(), token); err != nil {
		m.log.Error().Err(err).Msg("token persist failed")
	}

	m.mu.Lock()
	m.currentToken = token
	m.sessionExpiry = now.Add(m.tokens.TTL())
	m.lastActivity = now
	m.mu.Unlock()

	metrics.TokenRefreshesTotal.Inc()
	return true
}

// verifyAndRefreshToken adopts a token found in durable storage. Invalid
// or missing tokens leave the session anonymous; a token inside the
// refresh window is exchanged for a fresh one instead of adopted as-is.
func (m *SessionManager) verifyAndRefreshToken(ctx context.Context) {
	raw, ok, err := m.store.Get(ctx, m.cfg.tokenKey())
	if err != nil || !ok || raw == "" {
		return
	}

	claims, err := m.tokens.Verify(raw)
	if err != nil {
		m.log.Warn().Msg("stored token rejected")
		return
	}

	m.mu.Lock()
	m.authenticated = true
	m.currentToken = raw
	m.username = claims.Username
	m.userRoles = claims.Roles
	m.sessionExpiry = claims.Expiry
	m.mu.Unlock()

	if claims.Expiry.Sub(m.clock.Now()) < m.cfg.RefreshWindow {
		m.RefreshToken(ctx)
	}
}

func (m *SessionManager) watchInactivity(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.stop:
			return
		case <-ticker.C:
			m.expireIfIdle(ctx)
		}
	}
}

// expireIfIdle forces logout when the session has been idle past the
// inactivity limit.
func (m *SessionManager) expireIfIdle(ctx context.Context) {
	m.mu.Lock()
	idle := m.authenticated && m.clock.Now().Sub(m.lastActivity) > m.cfg.InactivityLimit
	m.mu.Unlock()

	if !idle {
		return
	}

	m.Logout(ctx)
	m.notifier.Warn("session expired due to inactivity")
	m.log.Info().Msg("session expired due to inactivity")
}

// CSRFToken returns the session's CSRF token: 32 random bytes, hex
// encoded, generated once at Start and never rotated within the session.
func (m *SessionManager) CSRFToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.csrfToken
}

// Token returns the current signed token; empty when anonymous.
func (m *SessionManager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentToken
}

// IsAuthenticated reports the current authentication state.
func (m *SessionManager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authenticated
}

// Evictable reports whether the session is anonymous and has been idle
// past the inactivity limit. The registry sweeper uses it to reclaim
// sessions allocated by clients that never came back.
func (m *SessionManager) Evictable() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.authenticated && m.clock.Now().Sub(m.lastActivity) > m.cfg.InactivityLimit
}

// Roles returns a copy of the session's role set.
func (m *SessionManager) Roles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	roles := make([]string, len(m.userRoles))
	copy(roles, m.userRoles)
	return roles
}

// SessionExpiry returns the current token's expiry; zero when anonymous.
func (m *SessionManager) SessionExpiry() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionExpiry
}

// Report returns a snapshot of the session's security report.
func (m *SessionManager) Report() domain.SecurityReport {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := m.report
	snapshot.SuspiciousActivities = make([]domain.SecurityIncident, len(m.report.SuspiciousActivities))
	copy(snapshot.SuspiciousActivities, m.report.SuspiciousActivities)
	return snapshot
}

// ReportIncident appends an unresolved incident to the log, reclassifies
// the threat level from unresolved incident counts, and raises a
// user-visible warning for xss and csrf attempts.
func (m *SessionManager) ReportIncident(incidentType domain.IncidentType, source, details string) domain.SecurityIncident {
	m.mu.Lock()
	inc := m.appendIncidentLocked(incidentType, source, details)
	m.report.ThreatLevel = domain.ClassifyIncidents(m.report.SuspiciousActivities)
	level := m.report.ThreatLevel
	m.mu.Unlock()

	if incidentType == domain.IncidentXSSAttempt || incidentType == domain.IncidentCSRFAttempt {
		m.notifier.Warn(fmt.Sprintf("security warning: %s detected", incidentType))
	}

	m.publish(inc)
	metrics.IncidentsReportedTotal.WithLabelValues(string(incidentType)).Inc()
	metrics.ThreatLevel.WithLabelValues(m.cfg.ClientID).Set(threatScore(level))
	m.log.Warn().
		Str("incident_id", inc.ID).
		Str("type", string(incidentType)).
		Str("threat_level", string(level)).
		Msg("security incident reported")
	return inc
}

// appendIncidentLocked creates and appends an incident. Caller holds mu.
func (m *SessionManager) appendIncidentLocked(incidentType domain.IncidentType, source, details string) domain.SecurityIncident {
	inc := domain.SecurityIncident{
		ID:        newIncidentID(),
		Timestamp: m.clock.Now(),
		Type:      incidentType,
		Source:    source,
		Details:   details,
	}
	m.report.SuspiciousActivities = append(m.report.SuspiciousActivities, inc)
	return inc
}

// ResolveIncident marks the matching incident resolved. The threat level
// is deliberately left as-is: resolution does not trigger
// reclassification, matching the platform's observed behaviour.
func (m *SessionManager) ResolveIncident(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.report.SuspiciousActivities {
		if m.report.SuspiciousActivities[i].ID == id {
			m.report.SuspiciousActivities[i].Resolved = true
			return nil
		}
	}
	return domain.ErrIncidentNotFound
}

func (m *SessionManager) publish(inc domain.SecurityIncident) {
	if m.audit == nil {
		return
	}
	m.audit.Enqueue(ports.IncidentRecord{ClientID: m.cfg.ClientID, Incident: inc})
}

// threatScore maps a threat level onto the 0/1/2 gauge scale.
func threatScore(level domain.ThreatLevel) float64 {
	switch level {
	case domain.ThreatHigh:
		return 2
	case domain.ThreatMedium:
		return 1
	default:
		return 0
	}
}

func newCSRFToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		// fallback: derive from the clock, still unique per session
		return fmt.Sprintf("%064x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

// newIncidentID returns a unique incident identifier, e.g. INC-1A2B3C4D.
func newIncidentID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("INC-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("INC-%08X", b)
}
