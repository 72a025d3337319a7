package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idempotencyTTL = 24 * time.Hour
	// pendingTTL bounds how long a crashed request can hold a key.
	pendingTTL    = time.Minute
	pendingMarker = "-"
)

// IdempotencyStore maps a client's Idempotency-Key to the item it created.
// Key format: idem:item:<organization_id>:<key>
type IdempotencyStore struct {
	client     *redis.Client
	ttl        time.Duration
	pendingTTL time.Duration
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given Redis client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: idempotencyTTL, pendingTTL: pendingTTL}
}

// Reserve claims the key with SETNX. When another request already holds it,
// the recorded item id is returned, or "" while that request is still running.
func (s *IdempotencyStore) Reserve(ctx context.Context, organizationID, key string) (string, bool, error) {
	k := s.key(organizationID, key)
	ok, err := s.client.SetNX(ctx, k, pendingMarker, s.pendingTTL).Result()
	if err != nil {
		return "", false, fmt.Errorf("idempotency reserve: %w", err)
	}
	if ok {
		return "", true, nil
	}

	itemID, err := s.client.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		// Expired between the two calls; the caller retries.
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	if itemID == pendingMarker {
		return "", false, nil
	}
	return itemID, false, nil
}

// Remember records the created item for the full TTL.
func (s *IdempotencyStore) Remember(ctx context.Context, organizationID, key, itemID string) error {
	if err := s.client.Set(ctx, s.key(organizationID, key), itemID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

// Release drops a reservation whose create failed so the client can retry.
func (s *IdempotencyStore) Release(ctx context.Context, organizationID, key string) error {
	if err := s.client.Del(ctx, s.key(organizationID, key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(organizationID, key string) string {
	return fmt.Sprintf("idem:item:%s:%s", organizationID, key)
}
