// Package persistence holds cross-backend store decorators.
package persistence

import (
	"context"
	"time"

	"github.com/hadir-app/hadir/internal/domain/group"
	"github.com/hadir-app/hadir/internal/domain/roster"
	"github.com/hadir-app/hadir/internal/domain/student"
	"github.com/hadir-app/hadir/pkg/logger"
	"github.com/hadir-app/hadir/pkg/retry"
)

// RetryingStore wraps a roster.Store and retries transient backend failures
// with backoff. Load failures at startup and save failures during operation
// are both usually a blip (connection reset, failover) rather than bad data,
// so a couple of quick retries keeps the engine out of its rollback path.
type RetryingStore struct {
	inner   roster.Store
	retrier *retry.Retrier
	log     *logger.Logger
}

var _ roster.Store = (*RetryingStore)(nil)

// WithRetry decorates a store with the standard store retry policy.
func WithRetry(inner roster.Store, log *logger.Logger) *RetryingStore {
	s := &RetryingStore{inner: inner, log: log.With(logger.Component("store"))}
	s.retrier = retry.New(
		retry.WithMaxAttempts(3),
		retry.WithInitialDelay(50*time.Millisecond),
		retry.WithMaxDelay(time.Second),
		retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			s.log.Warn("store operation retrying",
				logger.Int("attempt", attempt),
				logger.Duration("delay", delay),
				logger.Err(err),
			)
		}),
	)
	return s
}

// LoadAll implements roster.Store.
func (s *RetryingStore) LoadAll(ctx context.Context) ([]*group.Group, []*student.Student, error) {
	var groups []*group.Group
	var students []*student.Student
	err := s.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		groups, students, err = s.inner.LoadAll(ctx)
		return err
	})
	return groups, students, err
}

// SaveAll implements roster.Store.
func (s *RetryingStore) SaveAll(ctx context.Context, groups []*group.Group, students []*student.Student) error {
	return s.retrier.Do(ctx, func(ctx context.Context) error {
		return s.inner.SaveAll(ctx, groups, students)
	})
}
