package qr

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	dir := t.TempDir()
	enc, err := NewEncoder(dir)
	require.NoError(t, err)

	path, err := enc.Encode(context.Background(), 12345, "Omar")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Omar_QR.png"), path)

	frame, err := os.ReadFile(path)
	require.NoError(t, err)

	id, ok, err := NewDecoder().Decode(context.Background(), frame)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 12345, id)
}

func TestDecodeRejectsNonImage(t *testing.T) {
	_, ok, err := NewDecoder().Decode(context.Background(), []byte("not an image"))
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestEncoderCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "students")
	_, err := NewEncoder(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
