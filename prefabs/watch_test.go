package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatcherReportsSpecChanges(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "enemy.yaml"), []byte("chase_range: 12\n"), 0o644))

	select {
	case name := <-w.Events:
		require.Equal(t, "enemy.yaml", name)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for prefab change")
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	for range w.Events {
	}
}

func TestWatcherRejectsMissingDir(t *testing.T) {
	defer goleak.VerifyNone(t)
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
