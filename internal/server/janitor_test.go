package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/upscaler/internal/logging"
)

func writeAged(t *testing.T, path string, age time.Duration) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))
	mtime := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestJanitor_Sweep(t *testing.T) {
	uploads := t.TempDir()
	processed := t.TempDir()

	writeAged(t, filepath.Join(uploads, "old.png"), 11*time.Minute)
	writeAged(t, filepath.Join(uploads, "fresh.png"), time.Minute)
	writeAged(t, filepath.Join(processed, "upscaled_old.png"), time.Hour)
	require.NoError(t, os.Mkdir(filepath.Join(processed, "nested"), 0o755))

	j := NewJanitor([]string{uploads, processed}, 10*time.Minute, time.Minute, logging.Discard())
	assert.Equal(t, 2, j.Sweep())

	_, err := os.Stat(filepath.Join(uploads, "fresh.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(uploads, "old.png"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(processed, "nested"))
	assert.NoError(t, err, "directories are left alone")
}

func TestJanitor_MissingDirectory(t *testing.T) {
	j := NewJanitor([]string{filepath.Join(t.TempDir(), "missing")}, time.Minute, time.Minute, logging.Discard())
	assert.Equal(t, 0, j.Sweep())
}

func TestJanitor_RunStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	writeAged(t, filepath.Join(dir, "old.png"), time.Hour)

	j := NewJanitor([]string{dir}, time.Minute, 5*time.Millisecond, logging.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		j.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(dir, "old.png"))
		return os.IsNotExist(err)
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("janitor did not stop")
	}
}
