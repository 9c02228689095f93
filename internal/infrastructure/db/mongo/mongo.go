package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// connectTimeout bounds the initial dial plus ping. The server treats
// Mongo as optional, so a slow or absent instance must fail fast rather
// than stall startup.
const connectTimeout = 10 * time.Second

// Config holds the settings for the Mongo database backing the identity
// store and the incident audit trail.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect dials Mongo and verifies it with a ping before handing back
// the client and the configured database. An error here is a signal to
// run without the identity store and audit trail, not to abort.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = connectTimeout
	}
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(dialCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(dialCtx, nil); err != nil {
		_ = client.Disconnect(dialCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}
