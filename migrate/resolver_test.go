package migrate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	dir := t.TempDir()

	t.Run("plain directory", func(t *testing.T) {
		resolved, err := ResolvePath(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, resolved)
	})

	t.Run("file scheme is stripped", func(t *testing.T) {
		resolved, err := ResolvePath("file://" + dir)
		require.NoError(t, err)
		assert.Equal(t, dir, resolved)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := ResolvePath(filepath.Join(dir, "missing"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing")
	})

	t.Run("regular file is rejected", func(t *testing.T) {
		file := filepath.Join(dir, "V1__x.sql")
		require.NoError(t, os.WriteFile(file, []byte("SELECT 1;"), 0o600))

		_, err := ResolvePath(file)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a directory")
	})

	t.Run("empty location", func(t *testing.T) {
		_, err := ResolvePath("")
		assert.Error(t, err)
	})
}

func TestNewOSScanner(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "V1__init.sql"), []byte("SELECT 1;"), 0o600))

	s, err := NewOSScanner([]string{dir})
	require.NoError(t, err)

	resources, err := s.Resources()
	require.NoError(t, err)
	require.Len(t, resources, 1)
	assert.Equal(t, int64(1), resources[0].Version)
}

func TestNewOSScanner_BadLocation(t *testing.T) {
	_, err := NewOSScanner([]string{"/definitely/not/a/real/dir"})
	assert.Error(t, err)
}
