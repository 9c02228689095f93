package domain

import (
	"fmt"
	"testing"
)

func makeIncidents(incidentType IncidentType, n int, resolved bool) []SecurityIncident {
	out := make([]SecurityIncident, n)
	for i := range out {
		out[i] = SecurityIncident{
			ID:       fmt.Sprintf("INC-%d", i),
			Type:     incidentType,
			Resolved: resolved,
		}
	}
	return out
}

func TestClassifyIncidents_Thresholds(t *testing.T) {
	tests := []struct {
		name      string
		incidents []SecurityIncident
		want      ThreatLevel
	}{
		{"empty log", nil, ThreatLow},
		{"four unresolved", makeIncidents(IncidentUnusualActivity, 4, false), ThreatLow},
		{"five unresolved", makeIncidents(IncidentUnusualActivity, 5, false), ThreatMedium},
		{"ten unresolved", makeIncidents(IncidentUnusualActivity, 10, false), ThreatHigh},
		{"two csrf", makeIncidents(IncidentCSRFAttempt, 2, false), ThreatMedium},
		{"three xss", makeIncidents(IncidentXSSAttempt, 3, false), ThreatHigh},
		{"two xss", makeIncidents(IncidentXSSAttempt, 2, false), ThreatLow},
		{"resolved incidents ignored", makeIncidents(IncidentXSSAttempt, 10, true), ThreatLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyIncidents(tt.incidents); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestClassifyLoginFailures(t *testing.T) {
	for failed, want := range map[int]ThreatLevel{
		0: ThreatLow,
		2: ThreatLow,
		3: ThreatMedium,
		4: ThreatMedium,
		5: ThreatHigh,
		9: ThreatHigh,
	} {
		if got := ClassifyLoginFailures(failed); got != want {
			t.Fatalf("failed=%d: expected %s, got %s", failed, want, got)
		}
	}
}
