package prefs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	m := NewManagerAt(filepath.Join(t.TempDir(), "prefs.json"))
	require.NoError(t, m.Load())
	assert.Equal(t, Prefs{}, m.Get())
}

func TestCloseFlushesPendingSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.json")
	m := NewManagerAt(path)
	require.NoError(t, m.Load())

	m.SetLastRun("/photos/incoming", 4)
	m.AddRun(120)
	require.NoError(t, m.Close())

	reloaded := NewManagerAt(path)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, Prefs{
		LastFolder:    "/photos/incoming",
		LastWorkers:   4,
		RunsLifetime:  1,
		FilesLifetime: 120,
	}, reloaded.Get())
}

func TestDebouncedSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	m := NewManagerAt(path)
	m.saveDuration = 10 * time.Millisecond

	m.SetLastRun("/a", 2)
	assert.Eventually(t, func() bool {
		_, err := os.Stat(path)
		return err == nil
	}, time.Second, 5*time.Millisecond)
	require.NoError(t, m.Close())
}

func TestCloseWithoutChangesWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	m := NewManagerAt(path)
	require.NoError(t, m.Close())
	assert.NoFileExists(t, path)
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	assert.Error(t, NewManagerAt(path).Load())
}

func TestFailedSaveKeepsPendingChanges(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "state")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	path := filepath.Join(blocker, "prefs.json")

	m := NewManagerAt(path)
	m.SetLastRun("/photos/incoming", 3)
	require.Error(t, m.Close(), "parent is a file")

	require.NoError(t, os.Remove(blocker))
	require.NoError(t, m.Close())

	reloaded := NewManagerAt(path)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, "/photos/incoming", reloaded.Get().LastFolder)
	assert.Equal(t, 3, reloaded.Get().LastWorkers)
}
