package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/userbase/userbase-server/internal/logger"
	"github.com/userbase/userbase-server/internal/model"
)

// Bulk coordinates batch ingestion of users. The mutex serializes whole-batch
// writes: at most one BulkInsert call is writing at any moment process-wide,
// and concurrent callers block until the holder finishes.
type Bulk struct {
	store  model.UserStore
	logger *logger.Logger
	mu     sync.Mutex
}

func NewBulk(store model.UserStore, logger *logger.Logger) *Bulk {
	return &Bulk{
		store:  store,
		logger: logger,
	}
}

// InsertFailure records one user the loop strategy failed to insert.
type InsertFailure struct {
	User model.User
	Err  error
}

// BulkResult reports the outcome of a batch ingestion.
type BulkResult struct {
	Inserted int
	Failed   int
	Failures []InsertFailure
	Elapsed  time.Duration
}

// DeduplicateUsers drops users whose email, lowercased, was already seen
// earlier in the batch. The first occurrence wins and input order is
// preserved. Dropped duplicates are not an error.
func DeduplicateUsers(users []model.User) []model.User {
	seen := make(map[string]struct{}, len(users))
	unique := make([]model.User, 0, len(users))
	for _, user := range users {
		key := strings.ToLower(user.Email)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, user)
	}
	return unique
}

// BulkInsert deduplicates the batch and writes it with a single unordered
// bulk insert under the batch lock. A store failure fails the whole batch;
// the underlying call exposes no per-record accounting.
func (s *Bulk) BulkInsert(ctx context.Context, users []model.User) (BulkResult, error) {
	start := time.Now()
	batch := DeduplicateUsers(users)
	if len(batch) == 0 {
		return BulkResult{Elapsed: time.Since(start)}, nil
	}

	s.mu.Lock()
	err := s.store.CreateMany(ctx, batch)
	s.mu.Unlock()
	if err != nil {
		return BulkResult{Elapsed: time.Since(start)}, fmt.Errorf("failed to bulk insert users: %w", err)
	}

	s.logger.Info("bulk inserted users", "count", len(batch), "duration_ms", time.Since(start).Milliseconds())

	return BulkResult{Inserted: len(batch), Elapsed: time.Since(start)}, nil
}

// BulkInsertLoop deduplicates the batch and inserts records one at a time.
// A failed insert is logged, counted and kept in Failures, and the loop
// continues; only context cancellation between records aborts the batch.
// Unlike BulkInsert, the loop strategy takes no batch lock, so concurrent
// loop invocations may interleave with each other and with bulk writes.
func (s *Bulk) BulkInsertLoop(ctx context.Context, users []model.User) (BulkResult, error) {
	start := time.Now()
	batch := DeduplicateUsers(users)

	var result BulkResult
	for _, user := range batch {
		if err := ctx.Err(); err != nil {
			result.Elapsed = time.Since(start)
			return result, fmt.Errorf("bulk insert loop aborted: %w", err)
		}

		if _, err := s.store.Create(ctx, user); err != nil {
			result.Failed++
			result.Failures = append(result.Failures, InsertFailure{User: user, Err: err})
			s.logger.Error("failed to insert user", "email", user.Email, "error", err)
			continue
		}
		result.Inserted++
	}
	result.Elapsed = time.Since(start)

	s.logger.Info("bulk insert loop finished",
		"inserted", result.Inserted,
		"failed", result.Failed,
		"duration_ms", result.Elapsed.Milliseconds())

	return result, nil
}
