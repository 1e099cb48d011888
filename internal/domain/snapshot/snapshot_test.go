package snapshot

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestSnapshot_ID(t *testing.T) {
	t.Parallel()

	t.Run("identical inputs produce identical ids", func(t *testing.T) {
		t.Parallel()

		ts := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
		files := []FileEntry{
			{Path: "a.txt", Hash: "aa", Size: 2},
			{Path: "b.txt", Hash: "bb", Size: 4},
		}

		assert.Equal(t, generateID(ts, files), generateID(ts, files))
	})

	t.Run("id depends on file order", func(t *testing.T) {
		t.Parallel()

		ts := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
		a := FileEntry{Path: "a.txt", Hash: "aa"}
		b := FileEntry{Path: "b.txt", Hash: "bb"}

		assert.NotEqual(t,
			generateID(ts, []FileEntry{a, b}),
			generateID(ts, []FileEntry{b, a}),
		)
	})

	t.Run("id depends on timestamp", func(t *testing.T) {
		t.Parallel()

		files := []FileEntry{{Path: "a.txt", Hash: "aa"}}
		t1 := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
		t2 := t1.Add(time.Second)

		assert.NotEqual(t, generateID(t1, files), generateID(t2, files))
	})

	t.Run("new stamps utc and 64 hex id", func(t *testing.T) {
		t.Parallel()

		snap := New([]FileEntry{{Path: "a", Hash: "aa"}}, strptr("msg"), nil)

		assert.Len(t, snap.ID, 64)
		assert.Equal(t, time.UTC, snap.Timestamp.Location())
		assert.Equal(t, "msg", *snap.Message)
		assert.Nil(t, snap.Trigger)
	})
}

func TestSnapshot_ShortID(t *testing.T) {
	t.Parallel()

	snap := Snapshot{ID: "abcdef0123456789"}
	assert.Equal(t, "abcdef0", snap.ShortID())

	tiny := Snapshot{ID: "abc"}
	assert.Equal(t, "abc", tiny.ShortID())
}

func TestSnapshot_FindFile(t *testing.T) {
	t.Parallel()

	snap := Snapshot{Files: []FileEntry{
		{Path: "src/main.go", Hash: "aa"},
		{Path: "README.md", Hash: "bb"},
	}}

	entry := snap.FindFile("README.md")
	require.NotNil(t, entry)
	assert.Equal(t, "bb", entry.Hash)

	assert.Nil(t, snap.FindFile("missing.txt"))
}

func TestSameFileHashes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    []FileEntry
		b    []FileEntry
		want bool
	}{
		{
			name: "identical sets",
			a:    []FileEntry{{Path: "a", Hash: "1"}, {Path: "b", Hash: "2"}},
			b:    []FileEntry{{Path: "a", Hash: "1"}, {Path: "b", Hash: "2"}},
			want: true,
		},
		{
			name: "order does not matter",
			a:    []FileEntry{{Path: "a", Hash: "1"}, {Path: "b", Hash: "2"}},
			b:    []FileEntry{{Path: "b", Hash: "2"}, {Path: "a", Hash: "1"}},
			want: true,
		},
		{
			name: "different hash",
			a:    []FileEntry{{Path: "a", Hash: "1"}},
			b:    []FileEntry{{Path: "a", Hash: "9"}},
			want: false,
		},
		{
			name: "different length",
			a:    []FileEntry{{Path: "a", Hash: "1"}},
			b:    []FileEntry{{Path: "a", Hash: "1"}, {Path: "b", Hash: "2"}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SameFileHashes(tt.a, tt.b))
		})
	}
}

func TestSnapshot_JSON(t *testing.T) {
	t.Parallel()

	t.Run("absent optionals marshal as null", func(t *testing.T) {
		t.Parallel()

		snap := Snapshot{
			ID:        "0011",
			Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
			Files:     []FileEntry{{Path: "a.txt", Hash: "aa", Size: 3}},
		}

		data, err := json.Marshal(&snap)
		require.NoError(t, err)

		assert.Contains(t, string(data), `"message":null`)
		assert.Contains(t, string(data), `"trigger":null`)
		assert.Contains(t, string(data), `"mode":null`)
		assert.Contains(t, string(data), `"timestamp":"2026-01-02T03:04:05Z"`)
	})

	t.Run("unknown fields are ignored on read", func(t *testing.T) {
		t.Parallel()

		doc := `{
			"id": "ff",
			"timestamp": "2026-01-02T03:04:05Z",
			"files": [],
			"future_field": {"nested": true}
		}`

		var snap Snapshot
		require.NoError(t, json.Unmarshal([]byte(doc), &snap))
		assert.Equal(t, "ff", snap.ID)
	})
}
