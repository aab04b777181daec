package runstate

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"fotline/internal/pipeline"
)

const (
	latestRunKey = "fotline:runs:latest"
	runTTL       = 7 * 24 * time.Hour
)

// Store records pipeline run progress in redis. It fails safe by swallowing
// connectivity errors: the pipeline never depends on the store for
// correctness, only the admin API reads it back.
type Store struct {
	client *redis.Client
}

// New creates a new redis-backed run state store.
func New(addr, password string, db int) *Store {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Store{client: redis.NewClient(opts)}
}

// RecordRun stores the run snapshot under the latest-run key, ignoring
// redis and serialization errors.
func (s *Store) RecordRun(ctx context.Context, run *pipeline.Run) {
	if s == nil || s.client == nil {
		return
	}
	data, err := json.Marshal(run)
	if err != nil {
		return
	}
	// fail safe: ignore redis errors
	s.client.Set(ctx, latestRunKey, data, runTTL)
}

// LatestRun returns the most recent recorded run, or nil when none exists
// or redis is unavailable.
func (s *Store) LatestRun(ctx context.Context) *pipeline.Run {
	if s == nil || s.client == nil {
		return nil
	}
	data, err := s.client.Get(ctx, latestRunKey).Bytes()
	if err != nil {
		// redis.Nil and connectivity errors both read as "no run"
		return nil
	}
	var run pipeline.Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil
	}
	return &run
}
