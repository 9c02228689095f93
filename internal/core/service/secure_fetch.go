package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/ElazAzel/Navyk-Saas-sub000/internal/api/metrics"
	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/domain"
)

// Security header hints attached to every SecureFetch request. The exact
// names and values are part of the platform contract.
var securityHeaders = map[string]string{
	"X-Content-Type-Options": "nosniff",
	"X-Frame-Options":        "DENY",
	"X-XSS-Protection":       "1; mode=block",
	"Referrer-Policy":        "strict-origin-when-cross-origin",
	"Content-Security-Policy": "default-src 'self'; script-src 'self' 'unsafe-inline'; " +
		"style-src 'self' 'unsafe-inline'; img-src 'self' data:; font-src 'self' data:;",
}

// SecureFetch performs an outbound HTTP request with the session's CSRF
// token, bearer credentials when authenticated, and the fixed security
// header set. The per-session request counter is checked first: past the
// window budget the call fails with domain.ErrRateLimited before any
// network I/O, and the burst is recorded as a single multiple_requests
// incident for that window.
func (m *SessionManager) SecureFetch(ctx context.Context, method, url string, body io.Reader) (*http.Response, error) {
	if err := m.countRequest(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	req.Header.Set("X-CSRF-Token", m.csrfToken)
	if m.authenticated && m.currentToken != "" {
		req.Header.Set("Authorization", "Bearer "+m.currentToken)
	}
	m.mu.Unlock()

	for name, value := range securityHeaders {
		req.Header.Set(name, value)
	}

	return m.doer.Do(req)
}

// countRequest advances the "<count>:<window-start-ms>" counter in
// durable storage. The window resets every RateLimitWindow; exceeding
// RateLimitMax within one window reports a multiple_requests incident
// once for that window and returns domain.ErrRateLimited.
func (m *SessionManager) countRequest(ctx context.Context) error {
	m.counterMu.Lock()
	defer m.counterMu.Unlock()

	now := m.clock.Now()

	count, windowStart := 1, now.UnixMilli()
	if raw, ok, err := m.store.Get(ctx, m.cfg.requestCountKey()); err == nil && ok {
		if prevCount, prevStart, ok := parseRequestCount(raw); ok {
			if now.UnixMilli()-prevStart < m.cfg.RateLimitWindow.Milliseconds() {
				count, windowStart = prevCount+1, prevStart
			}
		}
	}

	if err := m.store.Set(ctx, m.cfg.requestCountKey(),
		fmt.Sprintf("%d:%d", count, windowStart)); err != nil {
		m.log.Error().Err(err).Msg("request counter update failed")
	}

	if count <= m.cfg.RateLimitMax {
		return nil
	}

	m.mu.Lock()
	alreadyReported := m.reportedWindow == windowStart
	m.reportedWindow = windowStart
	m.mu.Unlock()

	if !alreadyReported {
		m.ReportIncident(domain.IncidentMultipleRequests, "secure_fetch",
			fmt.Sprintf("%d requests within the current %s window", count, m.cfg.RateLimitWindow))
	}
	metrics.RateLimitedTotal.Inc()
	return domain.ErrRateLimited
}

// parseRequestCount decodes a "<count>:<window-start-ms>" counter value.
func parseRequestCount(raw string) (count int, windowStart int64, ok bool) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	count, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	windowStart, err = strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return count, windowStart, true
}
