package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFiles(t *testing.T, contents map[string]string) []string {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	names := []string{"a.txt", "b.txt", "c.txt"}
	for _, name := range names {
		content, ok := contents[name]
		if !ok {
			continue
		}
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
		paths = append(paths, p)
	}
	return paths
}

func TestReadFilesPreservesInputOrder(t *testing.T) {
	paths := writeTempFiles(t, map[string]string{"a.txt": "AAA", "b.txt": "BBB", "c.txt": "CCC"})

	results, err := ReadFiles(context.Background(), paths, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "AAA", string(results[0].Content))
	assert.Equal(t, "BBB", string(results[1].Content))
	assert.Equal(t, "CCC", string(results[2].Content))
}

func TestReadFilesAbortsOnMissingFile(t *testing.T) {
	paths := append(writeTempFiles(t, map[string]string{"a.txt": "AAA"}), "/nonexistent/path.txt")
	_, err := ReadFiles(context.Background(), paths, 2)
	assert.Error(t, err)
}

func TestReadFilesBestEffortSkipsMissingFiles(t *testing.T) {
	good := writeTempFiles(t, map[string]string{"a.txt": "AAA"})
	paths := append(good, "/nonexistent/path.txt")

	results, errs := ReadFilesBestEffort(context.Background(), paths, 2)
	require.Len(t, results, 1)
	assert.Equal(t, "AAA", string(results[0].Content))
	assert.Len(t, errs, 1)
	assert.Contains(t, errs, "/nonexistent/path.txt")
}
