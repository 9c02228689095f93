package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = time.Hour

// DedupChecker provides at-most-once guards for incident persistence,
// backed by Redis. Key format: incident:<client_id>:<incident_id>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether this incident has already been persisted.
func (d *DedupChecker) IsDuplicate(ctx context.Context, clientID, incidentID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(clientID, incidentID)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this incident has been persisted (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, clientID, incidentID string) error {
	return d.client.Set(ctx, d.key(clientID, incidentID), "1", dedupTTL).Err()
}

func (d *DedupChecker) key(clientID, incidentID string) string {
	return fmt.Sprintf("incident:%s:%s", clientID, incidentID)
}
