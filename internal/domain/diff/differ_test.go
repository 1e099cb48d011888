package diff

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/mote/internal/domain/object"
	"github.com/felixgeelhaar/mote/internal/domain/snapshot"
)

type fixture struct {
	objects *object.Store
	differ  *Differ
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	objects := object.NewStore(filepath.Join(t.TempDir(), "objects"))
	return &fixture{objects: objects, differ: NewDiffer(objects)}
}

func (f *fixture) entry(t *testing.T, path, content string) snapshot.FileEntry {
	t.Helper()
	hash, err := f.objects.Store([]byte(content))
	require.NoError(t, err)
	return snapshot.FileEntry{Path: path, Hash: hash, Size: uint64(len(content))}
}

func snapOf(files ...snapshot.FileEntry) *snapshot.Snapshot {
	return &snapshot.Snapshot{
		ID:        "aaaabbbbccccdddd",
		Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Files:     files,
	}
}

func TestDiffer_Snapshots_NameOnly(t *testing.T) {
	t.Parallel()

	t.Run("classifies modified added deleted", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		from := snapOf(
			f.entry(t, "changed.txt", "v1"),
			f.entry(t, "removed.txt", "bye"),
			f.entry(t, "same.txt", "stable"),
		)
		to := snapOf(
			f.entry(t, "changed.txt", "v2"),
			f.entry(t, "same.txt", "stable"),
			f.entry(t, "new.txt", "hi"),
		)

		var buf bytes.Buffer
		require.NoError(t, f.differ.Snapshots(from, to, &buf, Options{NameOnly: true}))

		out := buf.String()
		assert.Contains(t, out, "M\tchanged.txt\n")
		assert.Contains(t, out, "A\tnew.txt\n")
		assert.Contains(t, out, "D\tremoved.txt\n")
		assert.NotContains(t, out, "same.txt")
	})

	t.Run("single modification", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		from := snapOf(f.entry(t, "a.txt", "v1"))
		to := snapOf(f.entry(t, "a.txt", "v2"))

		var buf bytes.Buffer
		require.NoError(t, f.differ.Snapshots(from, to, &buf, Options{NameOnly: true}))

		assert.Equal(t, "Comparing aaaabbb -> aaaabbb\n\nM\ta.txt\n", buf.String())
	})
}

func TestDiffer_Snapshots_Unified(t *testing.T) {
	t.Parallel()

	t.Run("emits mote headers and hunks", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		from := snapOf(f.entry(t, "a.txt", "one\ntwo\nthree\n"))
		to := snapOf(f.entry(t, "a.txt", "one\nTWO\nthree\n"))

		var buf bytes.Buffer
		require.NoError(t, f.differ.Snapshots(from, to, &buf, Options{}))

		out := buf.String()
		assert.Contains(t, out, "diff --mote a/a.txt b/a.txt\n")
		assert.Contains(t, out, "--- a/a.txt\n")
		assert.Contains(t, out, "+++ b/a.txt\n")
		assert.Contains(t, out, "-two\n")
		assert.Contains(t, out, "+TWO\n")
	})

	t.Run("added file diffs against empty document", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		from := snapOf()
		to := snapOf(f.entry(t, "new.txt", "line\n"))

		var buf bytes.Buffer
		require.NoError(t, f.differ.Snapshots(from, to, &buf, Options{}))

		assert.Contains(t, buf.String(), "+line\n")
		assert.NotContains(t, buf.String(), "-line")
	})

	t.Run("deleted file diffs to empty document", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		from := snapOf(f.entry(t, "gone.txt", "line\n"))
		to := snapOf()

		var buf bytes.Buffer
		require.NoError(t, f.differ.Snapshots(from, to, &buf, Options{}))

		assert.Contains(t, buf.String(), "-line\n")
	})

	t.Run("missing object warns and continues", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		from := snapOf()
		to := snapOf(snapshot.FileEntry{
			Path: "ghost.txt",
			Hash: object.ComputeHash([]byte("never stored")),
		})

		var buf bytes.Buffer
		require.NoError(t, f.differ.Snapshots(from, to, &buf, Options{}))

		// Both sides empty, so the record is elided entirely.
		assert.NotContains(t, buf.String(), "ghost.txt")
	})
}

func TestDiffer_WorkingTree(t *testing.T) {
	t.Parallel()

	writeTree := func(t *testing.T, root string, files map[string]string) {
		t.Helper()
		for rel, content := range files {
			path := filepath.Join(root, filepath.FromSlash(rel))
			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		}
	}

	t.Run("detects working tree changes", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		root := t.TempDir()
		writeTree(t, root, map[string]string{
			"modified.txt": "new version",
			"untracked.txt": "brand new",
		})

		snap := snapOf(
			f.entry(t, "modified.txt", "old version"),
			f.entry(t, "deleted.txt", "was here"),
		)

		var buf bytes.Buffer
		err := f.differ.WorkingTree(snap, root, filepath.Join(root, ".moteignore"), &buf, Options{NameOnly: true})
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "Comparing aaaabbb -> working directory\n")
		assert.Contains(t, out, "M\tmodified.txt\n")
		assert.Contains(t, out, "A\tuntracked.txt\n")
		assert.Contains(t, out, "D\tdeleted.txt\n")
	})

	t.Run("honors ignore rules", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		root := t.TempDir()
		writeTree(t, root, map[string]string{
			".moteignore": "*.log\n",
			"noise.log":   "ignored",
		})

		snap := snapOf(f.entry(t, ".moteignore", "*.log\n"))

		var buf bytes.Buffer
		err := f.differ.WorkingTree(snap, root, filepath.Join(root, ".moteignore"), &buf, Options{NameOnly: true})
		require.NoError(t, err)

		assert.NotContains(t, buf.String(), "noise.log")
	})

	t.Run("unchanged tree emits nothing", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		root := t.TempDir()
		writeTree(t, root, map[string]string{"a.txt": "same"})

		snap := snapOf(f.entry(t, "a.txt", "same"))

		var buf bytes.Buffer
		err := f.differ.WorkingTree(snap, root, filepath.Join(root, ".moteignore"), &buf, Options{NameOnly: true})
		require.NoError(t, err)

		assert.Equal(t, "Comparing aaaabbb -> working directory\n\n", buf.String())
	})
}
