// Package index implements the advisory mtime+size cache that lets the
// scanner skip re-hashing unchanged files. Losing the index forces a full
// re-hash but causes no data loss.
package index

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Entry records the last observed state of one file. Mtime is split into
// whole seconds and subsecond nanos from the Unix epoch so the on-disk
// encoding is independent of the platform time representation.
type Entry struct {
	Path      string `msgpack:"path"`
	Hash      string `msgpack:"hash"`
	Size      uint64 `msgpack:"size"`
	MtimeSec  int64  `msgpack:"mtime_sec"`
	MtimeNsec int64  `msgpack:"mtime_nsec"`
}

// Mtime reconstructs the modification time.
func (e Entry) Mtime() time.Time {
	return time.Unix(e.MtimeSec, e.MtimeNsec)
}

// Index maps relative paths to their last observed entries. It is persisted
// as one msgpack blob and rewritten whole at the end of each scan.
type Index struct {
	Entries map[string]Entry `msgpack:"entries"`
}

// New returns an empty index.
func New() *Index {
	return &Index{Entries: make(map[string]Entry)}
}

// Load reads the index file at path. A missing file yields an empty index;
// malformed contents are an error so the user notices, not a silent reset.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, err
	}

	var idx Index
	if err := msgpack.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("decode index %s: %w", path, err)
	}
	if idx.Entries == nil {
		idx.Entries = make(map[string]Entry)
	}
	return &idx, nil
}

// Save writes the whole index over the file at path, creating parent
// directories if missing.
func (i *Index) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := msgpack.Marshal(i)
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// Insert records an entry, overwriting any prior entry for the same path.
func (i *Index) Insert(entry Entry) {
	i.Entries[entry.Path] = entry
}

// IsUnchanged returns the cached entry for path iff both the stored mtime and
// the stored size match the observed values. This equality is the sole
// correctness gate of the fast path.
func (i *Index) IsUnchanged(path string, mtime time.Time, size uint64) (Entry, bool) {
	entry, ok := i.Entries[path]
	if !ok {
		return Entry{}, false
	}
	if !entry.Mtime().Equal(mtime) || entry.Size != size {
		return Entry{}, false
	}
	return entry, true
}
