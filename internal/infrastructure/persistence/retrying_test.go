package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadir-app/hadir/internal/domain/group"
	"github.com/hadir-app/hadir/internal/domain/student"
	"github.com/hadir-app/hadir/pkg/logger"
)

// flakyStore fails the first failures calls of each operation.
type flakyStore struct {
	failures  int
	loadCalls int
	saveCalls int
}

func (s *flakyStore) LoadAll(context.Context) ([]*group.Group, []*student.Student, error) {
	s.loadCalls++
	if s.loadCalls <= s.failures {
		return nil, nil, errors.New("connection reset")
	}
	return nil, nil, nil
}

func (s *flakyStore) SaveAll(context.Context, []*group.Group, []*student.Student) error {
	s.saveCalls++
	if s.saveCalls <= s.failures {
		return errors.New("connection reset")
	}
	return nil
}

func TestRetryingStoreRecoversFromTransientFailures(t *testing.T) {
	inner := &flakyStore{failures: 2}
	store := WithRetry(inner, logger.Default())

	_, _, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, inner.loadCalls)

	err = store.SaveAll(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, inner.saveCalls)
}

func TestRetryingStoreGivesUpOnPersistentFailure(t *testing.T) {
	inner := &flakyStore{failures: 100}
	store := WithRetry(inner, logger.Default())

	err := store.SaveAll(context.Background(), nil, nil)
	assert.Error(t, err)
	assert.Equal(t, 3, inner.saveCalls)
}
