package migrations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_indexes.sql", "001_init.sql", "010_counters.sql", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- noop"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.sql"), 0o755))

	files, err := sqlFilesInOrder(dir)
	require.NoError(t, err)

	// Non-SQL files and directories are skipped; lexical order drives the
	// version sequence.
	assert.Equal(t, []string{"001_init.sql", "002_indexes.sql", "010_counters.sql"}, files)
}

func TestSQLFilesInOrderMissingDirectory(t *testing.T) {
	_, err := sqlFilesInOrder(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}

func TestVersionFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		version  string
	}{
		{"001_init.sql", "001"},
		{"010_counters_and_seed.sql", "010"},
		{"single.sql", "single.sql"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.version, versionFromFilename(tt.filename))
	}
}
