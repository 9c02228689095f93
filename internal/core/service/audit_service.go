package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ElazAzel/Navyk-Saas-sub000/internal/api/metrics"
	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/ports"
)

// IncidentDedup abstracts the at-most-once store (Redis) guarding
// incident persistence.
type IncidentDedup interface {
	IsDuplicate(ctx context.Context, clientID, incidentID string) (bool, error)
	Mark(ctx context.Context, clientID, incidentID string) error
}

type auditService struct {
	repo  ports.IncidentRepository
	dedup IncidentDedup
	log   zerolog.Logger
}

// NewAuditService returns an AuditService implementation.
func NewAuditService(repo ports.IncidentRepository, dedup IncidentDedup, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, dedup: dedup, log: log}
}

// Process deduplicates and persists a single incident record.
func (s *auditService) Process(ctx context.Context, rec ports.IncidentRecord) error {
	// 1. At-most-once check — silently skip replays.
	isDup, err := s.dedup.IsDuplicate(ctx, rec.ClientID, rec.Incident.ID)
	if err != nil {
		// Dedup store unavailable: persist anyway, a duplicate audit
		// row beats a lost incident.
		s.log.Warn().Err(err).Msg("incident dedup check failed")
	}
	if isDup {
		metrics.IncidentsDedupTotal.WithLabelValues("hit").Inc()
		return nil
	}
	metrics.IncidentsDedupTotal.WithLabelValues("miss").Inc()

	// 2. Persist for the admin dashboard.
	if err := s.repo.Insert(ctx, rec.ClientID, &rec.Incident); err != nil {
		metrics.IncidentsErrorsTotal.WithLabelValues("insert_failed").Inc()
		return err
	}

	if err := s.dedup.Mark(ctx, rec.ClientID, rec.Incident.ID); err != nil {
		s.log.Warn().Err(err).Msg("incident dedup mark failed")
	}

	metrics.IncidentsAuditedTotal.WithLabelValues(string(rec.Incident.Type)).Inc()
	s.log.Info().
		Str("incident_id", rec.Incident.ID).
		Str("client_id", rec.ClientID).
		Str("type", string(rec.Incident.Type)).
		Msg("incident audited")
	return nil
}
