package group

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadir-app/hadir/pkg/timeutil"
)

func TestNewValidatesInput(t *testing.T) {
	_, err := New("", "17:00 - 19:00", []string{timeutil.DayMonday})
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = New("  ", "17:00 - 19:00", []string{timeutil.DayMonday})
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = New("Alpha", "17:00 - 19:00", nil)
	assert.ErrorIs(t, err, ErrNoDays)

	_, err = New("Alpha", "17:00 - 19:00", []string{"Monday"})
	assert.ErrorIs(t, err, ErrUnknownDay)
}

func TestNewTrimsName(t *testing.T) {
	g, err := New("  Alpha  ", "17:00 - 19:00", []string{timeutil.DayMonday})
	require.NoError(t, err)
	assert.Equal(t, "Alpha", g.Name)
	assert.Equal(t, "17:00 - 19:00", g.TimeSlot)
}

func TestCloneIsIndependent(t *testing.T) {
	g, err := New("Alpha", "17:00", []string{timeutil.DayMonday})
	require.NoError(t, err)

	c := g.Clone()
	require.NoError(t, c.Rename("Beta"))

	assert.Equal(t, "Alpha", g.Name)
	assert.Equal(t, "Beta", c.Name)
}
