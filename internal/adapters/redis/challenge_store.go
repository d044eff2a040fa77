package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/division-gg/division-api/internal/ports"
	"github.com/redis/go-redis/v9"
)

// ChallengeStore keeps verification challenges in Redis. Challenges are
// single-use: Take removes the key atomically with the read, so a replayed
// answer always misses.
type ChallengeStore struct {
	client redis.UniversalClient
	prefix string
}

// NewChallengeStore creates a Redis-backed challenge store.
func NewChallengeStore(client redis.UniversalClient) *ChallengeStore {
	return &ChallengeStore{
		client: client,
		prefix: "verify-challenge:",
	}
}

func (s *ChallengeStore) Save(ctx context.Context, ch ports.Challenge, ttl time.Duration) error {
	if ch.ID == "" {
		return errors.New("challenge ID cannot be empty")
	}
	if ttl <= 0 {
		return errors.New("challenge TTL must be positive")
	}

	data, err := json.Marshal(ch)
	if err != nil {
		return fmt.Errorf("marshal challenge: %w", err)
	}

	return s.client.Set(ctx, s.prefix+ch.ID, data, ttl).Err()
}

func (s *ChallengeStore) Take(ctx context.Context, id string) (ports.Challenge, error) {
	if id == "" {
		return ports.Challenge{}, ErrNotFound
	}

	data, err := s.client.GetDel(ctx, s.prefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ports.Challenge{}, ErrNotFound
		}
		return ports.Challenge{}, fmt.Errorf("redis getdel: %w", err)
	}

	var ch ports.Challenge
	if unmarshalErr := json.Unmarshal([]byte(data), &ch); unmarshalErr != nil {
		return ports.Challenge{}, fmt.Errorf("unmarshal challenge: %w", unmarshalErr)
	}

	if time.Now().After(ch.ExpiresAt) {
		return ports.Challenge{}, ErrNotFound
	}

	return ch, nil
}
