package domain

import "time"

// IncidentType classifies a security incident.
type IncidentType string

const (
	IncidentLoginAttempt     IncidentType = "login_attempt"
	IncidentCSRFAttempt      IncidentType = "csrf_attempt"
	IncidentXSSAttempt       IncidentType = "xss_attempt"
	IncidentUnusualActivity  IncidentType = "unusual_activity"
	IncidentMultipleRequests IncidentType = "multiple_requests"
)

// ThreatLevel is the derived severity of a session's incident log.
type ThreatLevel string

const (
	ThreatLow    ThreatLevel = "low"
	ThreatMedium ThreatLevel = "medium"
	ThreatHigh   ThreatLevel = "high"
)

// SecurityIncident is one entry in a session's incident log. Incidents are
// append-only; resolution flips the Resolved flag and nothing else.
type SecurityIncident struct {
	ID        string       `json:"id"`
	Timestamp time.Time    `json:"timestamp"`
	Type      IncidentType `json:"type"`
	Source    string       `json:"source"`
	Details   string       `json:"details"`
	Resolved  bool         `json:"resolved"`
}

// SecurityReport is the derived security posture of one session.
type SecurityReport struct {
	FailedLoginAttempts  int                `json:"failed_login_attempts"`
	SuspiciousActivities []SecurityIncident `json:"suspicious_activities"`
	ThreatLevel          ThreatLevel        `json:"threat_level"`
	LastScan             time.Time          `json:"last_scan,omitzero"`
}

// ClassifyIncidents derives a threat level from the unresolved entries of
// an incident log:
//
//	high    ≥10 unresolved, or ≥3 unresolved xss_attempt
//	medium  ≥5 unresolved, or ≥2 unresolved csrf_attempt
//	low     otherwise
func ClassifyIncidents(incidents []SecurityIncident) ThreatLevel {
	var unresolved, xss, csrf int
	for _, inc := range incidents {
		if inc.Resolved {
			continue
		}
		unresolved++
		switch inc.Type {
		case IncidentXSSAttempt:
			xss++
		case IncidentCSRFAttempt:
			csrf++
		}
	}

	switch {
	case unresolved >= 10 || xss >= 3:
		return ThreatHigh
	case unresolved >= 5 || csrf >= 2:
		return ThreatMedium
	default:
		return ThreatLow
	}
}

// ClassifyLoginFailures derives a threat level from consecutive failed
// login attempts: ≥5 is high, ≥3 is medium, otherwise low.
func ClassifyLoginFailures(failed int) ThreatLevel {
	switch {
	case failed >= 5:
		return ThreatHigh
	case failed >= 3:
		return ThreatMedium
	default:
		return ThreatLow
	}
}
