package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/domain"
	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/ports"
)

const incidentsCollection = "security_incidents"

// IncidentRepository implements ports.IncidentRepository using MongoDB.
// It backs the admin security dashboard's audit trail.
type IncidentRepository struct {
	db *mongo.Database
}

// NewIncidentRepository creates a new IncidentRepository.
func NewIncidentRepository(db *mongo.Database) ports.IncidentRepository {
	return &IncidentRepository{db: db}
}

// Insert persists one incident attributed to a client session.
func (r *IncidentRepository) Insert(ctx context.Context, clientID string, incident *domain.SecurityIncident) error {
	doc := bson.M{
		"incident_id":  incident.ID,
		"client_id":    clientID,
		"type":         string(incident.Type),
		"source":       incident.Source,
		"details":      incident.Details,
		"resolved":     incident.Resolved,
		"timestamp":    incident.Timestamp.UTC(),
		"processed_at": time.Now().UTC(),
	}

	_, err := r.db.Collection(incidentsCollection).InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert incident: %w", err)
	}
	return nil
}

// ListRecent returns up to limit incidents, newest first.
func (r *IncidentRepository) ListRecent(ctx context.Context, limit int64) ([]ports.IncidentRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cur, err := r.db.Collection(incidentsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}
	defer cur.Close(ctx)

	var records []ports.IncidentRecord
	for cur.Next(ctx) {
		var doc struct {
			IncidentID string    `bson:"incident_id"`
			ClientID   string    `bson:"client_id"`
			Type       string    `bson:"type"`
			Source     string    `bson:"source"`
			Details    string    `bson:"details"`
			Resolved   bool      `bson:"resolved"`
			Timestamp  time.Time `bson:"timestamp"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode incident: %w", err)
		}
		records = append(records, ports.IncidentRecord{
			ClientID: doc.ClientID,
			Incident: domain.SecurityIncident{
				ID:        doc.IncidentID,
				Timestamp: doc.Timestamp,
				Type:      domain.IncidentType(doc.Type),
				Source:    doc.Source,
				Details:   doc.Details,
				Resolved:  doc.Resolved,
			},
		})
	}
	return records, cur.Err()
}
