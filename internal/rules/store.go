package rules

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Store persists personal typo rules in a Redis hash, typo -> correction.
type Store struct {
	client *redis.Client
	key    string
}

// NewStore creates a Store backed by the provided Redis client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client, key: "typofix:personal"}
}

// Set inserts or overwrites a personal rule. Both sides are lowercased
// before storage so lookups stay case-insensitive.
func (s *Store) Set(ctx context.Context, typo, correction string) error {
	return s.client.HSet(ctx, s.key, strings.ToLower(typo), strings.ToLower(correction)).Err()
}

// Delete removes a personal rule.
func (s *Store) Delete(ctx context.Context, typo string) error {
	return s.client.HDel(ctx, s.key, strings.ToLower(typo)).Err()
}

// All returns every stored personal rule.
func (s *Store) All(ctx context.Context) (map[string]string, error) {
	return s.client.HGetAll(ctx, s.key).Result()
}
