package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyTTL = 24 * time.Hour

// KeyValue implements ports.KeyValueStore on Redis. Keys are namespaced
// per client: "session:<client_id>:<key>". Entries expire after
// sessionKeyTTL so abandoned sessions do not accumulate.
type KeyValue struct {
	client   *redis.Client
	clientID string
}

// NewKeyValue returns a KeyValue scoped to one client session.
func NewKeyValue(client *redis.Client, clientID string) *KeyValue {
	return &KeyValue{client: client, clientID: clientID}
}

func (s *KeyValue) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("session get: %w", err)
	}
	return val, true, nil
}

func (s *KeyValue) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, sessionKeyTTL).Err(); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	return nil
}

func (s *KeyValue) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

func (s *KeyValue) key(key string) string {
	return fmt.Sprintf("session:%s:%s", s.clientID, key)
}
