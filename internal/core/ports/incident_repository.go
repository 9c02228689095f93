package ports

import (
	"context"

	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/domain"
)

// IncidentRepository persists the incident audit trail consumed by the
// admin security dashboard.
type IncidentRepository interface {
	Insert(ctx context.Context, clientID string, incident *domain.SecurityIncident) error
	ListRecent(ctx context.Context, limit int64) ([]IncidentRecord, error)
}

// AuditService processes one incident record end to end: deduplication,
// persistence, metrics.
type AuditService interface {
	Process(ctx context.Context, rec IncidentRecord) error
}
