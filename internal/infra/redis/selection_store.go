package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"quiz-host/internal/domain"
)

const defaultSelectionKey = "quizhost:selection"

// SelectionStore checkpoints the operator's selection in Redis so a restarted
// host resumes where it left off. The key expires after ttl of inactivity.
type SelectionStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewSelectionStore(client *redis.Client, key string, ttl time.Duration) *SelectionStore {
	if key == "" {
		key = defaultSelectionKey
	}
	return &SelectionStore{client: client, key: key, ttl: ttl}
}

func (s *SelectionStore) Load(ctx context.Context) (domain.Selection, bool, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Selection{}, false, nil
	}
	if err != nil {
		return domain.Selection{}, false, fmt.Errorf("get selection: %w", err)
	}
	var sel domain.Selection
	if err := json.Unmarshal(raw, &sel); err != nil {
		return domain.Selection{}, false, fmt.Errorf("unmarshal selection: %w", err)
	}
	return sel, true, nil
}

func (s *SelectionStore) Save(ctx context.Context, sel domain.Selection) error {
	raw, err := json.Marshal(sel)
	if err != nil {
		return fmt.Errorf("marshal selection: %w", err)
	}
	if err := s.client.Set(ctx, s.key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("set selection: %w", err)
	}
	return nil
}

// Clear drops the checkpoint so the next start begins from the first round.
func (s *SelectionStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}
