package messaging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadir-app/hadir/internal/domain/shared"
)

func TestSyncBusDeliversInOrder(t *testing.T) {
	bus := New(DefaultConfig())
	defer bus.Close()

	var got []string
	require.NoError(t, bus.Subscribe(shared.EventAttendanceRecorded, func(e shared.Event) error {
		got = append(got, e.AggregateID())
		return nil
	}))

	require.NoError(t, bus.Publish(shared.NewAttendanceRecordedEvent(11111, "Omar", "2023-01-02", "")))
	require.NoError(t, bus.Publish(shared.NewAttendanceRecordedEvent(11111, "Omar", "2023-01-04", "")))

	assert.Equal(t, []string{"2023-01-02", "2023-01-04"}, got)
}

func TestSubscribeFiltersByEventType(t *testing.T) {
	bus := New(DefaultConfig())
	defer bus.Close()

	var typed, all int
	require.NoError(t, bus.Subscribe(shared.EventGroupCreated, func(shared.Event) error {
		typed++
		return nil
	}))
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error {
		all++
		return nil
	}))

	require.NoError(t, bus.Publish(shared.NewGroupCreatedEvent("Alpha", "17:00", nil)))
	require.NoError(t, bus.Publish(shared.NewStudentRemovedEvent(11111, "Omar")))

	assert.Equal(t, 1, typed)
	assert.Equal(t, 2, all)
}

func TestHandlerErrorDoesNotFailPublish(t *testing.T) {
	bus := New(DefaultConfig())
	defer bus.Close()

	require.NoError(t, bus.SubscribeAll(func(shared.Event) error {
		return errors.New("subscriber broken")
	}))

	assert.NoError(t, bus.Publish(shared.NewGroupDeletedEvent("Alpha", 0)))
}

func TestClosedBusRejectsOperations(t *testing.T) {
	bus := New(DefaultConfig())
	require.NoError(t, bus.Close())

	assert.ErrorIs(t, bus.Publish(shared.NewGroupCreatedEvent("Alpha", "", nil)), ErrBusClosed)
	assert.ErrorIs(t, bus.Subscribe(shared.EventGroupCreated, func(shared.Event) error { return nil }), ErrBusClosed)
	assert.NoError(t, bus.Close())
}

func TestNilChecks(t *testing.T) {
	bus := New(DefaultConfig())
	defer bus.Close()

	assert.Error(t, bus.Publish(nil))
	assert.Error(t, bus.Subscribe(shared.EventGroupCreated, nil))
	assert.Error(t, bus.SubscribeAll(nil))
}
