package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/domain"
)

var scriptTagPattern = regexp.MustCompile(`(?is)<script\b[^>]*>`)
var scriptSrcPattern = regexp.MustCompile(`(?i)\bsrc\s*=\s*["']([^"']*)["']`)

// ScanForVulnerabilities runs the session's heuristic self-check against
// a document snapshot:
//
//   - script tags not sourced from an http(s) or same-origin URL count as
//     suspect and produce one xss_attempt incident;
//   - a request-counter burst past the window budget produces a
//     multiple_requests incident.
//
// lastScan is updated regardless of findings. The check is heuristic and
// advisory; it carries no hard security guarantee.
func (m *SessionManager) ScanForVulnerabilities(ctx context.Context, document string) domain.SecurityReport {
	if suspect := countSuspectScripts(document); suspect > 0 {
		m.ReportIncident(domain.IncidentXSSAttempt, "scanner",
			fmt.Sprintf("%d inline or foreign-sourced script tag(s) found", suspect))
	}

	if raw, ok, err := m.store.Get(ctx, m.cfg.requestCountKey()); err == nil && ok {
		if count, windowStart, ok := parseRequestCount(raw); ok {
			inWindow := m.clock.Now().UnixMilli()-windowStart < m.cfg.RateLimitWindow.Milliseconds()
			if inWindow && count > m.cfg.RateLimitMax {
				m.ReportIncident(domain.IncidentMultipleRequests, "scanner",
					fmt.Sprintf("%d requests within the current %s window", count, m.cfg.RateLimitWindow))
			}
		}
	}

	m.mu.Lock()
	m.report.LastScan = m.clock.Now()
	m.mu.Unlock()

	return m.Report()
}

// countSuspectScripts counts script tags with no src attribute or with a
// src that is neither http(s) nor same-origin relative.
func countSuspectScripts(document string) int {
	suspect := 0
	for _, tag := range scriptTagPattern.FindAllString(document, -1) {
		src := scriptSrcPattern.FindStringSubmatch(tag)
		if src == nil {
			suspect++
			continue
		}
		if !isTrustedScriptSource(src[1]) {
			suspect++
		}
	}
	return suspect
}

func isTrustedScriptSource(src string) bool {
	src = strings.TrimSpace(strings.ToLower(src))
	return strings.HasPrefix(src, "https://") ||
		strings.HasPrefix(src, "http://") ||
		strings.HasPrefix(src, "/")
}
