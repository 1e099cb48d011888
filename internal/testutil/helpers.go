// Package testutil provides shared helpers for mote tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFile writes content at a slash-relative path under root, creating
// parent directories, and returns the absolute path.
func WriteFile(t *testing.T, root, rel, content string) string {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755), "failed to create parent for %s", rel)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "failed to write %s", rel)

	return path
}

// WriteTree writes a whole tree of files under root.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		WriteFile(t, root, rel, content)
	}
}

// ReadFile reads a slash-relative path under root.
func ReadFile(t *testing.T, root, rel string) string {
	t.Helper()

	content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err, "failed to read %s", rel)
	return string(content)
}

// FileExists reports whether the slash-relative path exists under root.
func FileExists(t *testing.T, root, rel string) bool {
	t.Helper()

	_, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	if err == nil {
		return true
	}
	require.True(t, os.IsNotExist(err), "unexpected stat error for %s: %v", rel, err)
	return false
}
