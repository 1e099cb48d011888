// Package gc reclaims objects that no snapshot references. Marking walks the
// snapshot manifests, sweeping enumerates the fan-out tree, and deletion
// removes the complement. It must not run concurrently with a scanner: a
// freshly stored object without a persisted manifest looks like garbage.
package gc

import (
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/mote/internal/adapters/logging"
	"github.com/felixgeelhaar/mote/internal/domain/snapshot"
	"github.com/felixgeelhaar/mote/internal/ports"
)

// Stats reports what a deletion pass reclaimed.
type Stats struct {
	DeletedObjects int
	DeletedBytes   uint64
}

// Collector performs mark and sweep over one repository.
type Collector struct {
	objectsDir string
	snapshots  *snapshot.Store
	logger     ports.Logger
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithLogger sets the logger used for malformed-object warnings.
func WithLogger(logger ports.Logger) CollectorOption {
	return func(c *Collector) {
		c.logger = logger
	}
}

// NewCollector creates a collector over the objects directory, reading
// references from the snapshot store.
func NewCollector(objectsDir string, snapshots *snapshot.Store, opts ...CollectorOption) *Collector {
	c := &Collector{
		objectsDir: objectsDir,
		snapshots:  snapshots,
		logger:     logging.NewNopLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Mark returns the set of hashes referenced by any live snapshot.
func (c *Collector) Mark() (map[string]struct{}, error) {
	snapshots, err := c.snapshots.List()
	if err != nil {
		return nil, err
	}

	refs := make(map[string]struct{})
	for _, snap := range snapshots {
		for _, file := range snap.Files {
			refs[file.Hash] = struct{}{}
		}
	}
	return refs, nil
}

// ListObjects enumerates every object hash on disk by reconstituting
// <2-hex-prefix>/<62-hex-rest> names. Entries that do not fit the shape are
// skipped: misnamed prefix directories and object names with a warning,
// plain files at the top level silently.
func (c *Collector) ListObjects() ([]string, error) {
	prefixes, err := os.ReadDir(c.objectsDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var hashes []string
	for _, prefix := range prefixes {
		if !prefix.IsDir() {
			continue
		}
		if len(prefix.Name()) != 2 {
			c.logger.Warn("skipping unexpected entry in objects directory", ports.F("name", prefix.Name()))
			continue
		}

		entries, err := os.ReadDir(filepath.Join(c.objectsDir, prefix.Name()))
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			hash := prefix.Name() + entry.Name()
			if len(hash) != 64 {
				c.logger.Warn("skipping invalid object name", ports.F("name", hash))
				continue
			}
			hashes = append(hashes, hash)
		}
	}
	return hashes, nil
}

// Sweep returns the on-disk hashes absent from the mark set.
func (c *Collector) Sweep(marked map[string]struct{}) ([]string, error) {
	all, err := c.ListObjects()
	if err != nil {
		return nil, err
	}

	var unreferenced []string
	for _, hash := range all {
		if _, ok := marked[hash]; !ok {
			unreferenced = append(unreferenced, hash)
		}
	}
	return unreferenced, nil
}

// Delete removes the given objects, accumulating reclaimed byte counts, and
// prunes prefix directories left empty. Hashes too short to split are
// skipped with a warning.
func (c *Collector) Delete(hashes []string) (Stats, error) {
	var stats Stats

	for _, hash := range hashes {
		if len(hash) < 2 {
			c.logger.Warn("skipping invalid hash", ports.F("hash", hash))
			continue
		}

		objectPath := filepath.Join(c.objectsDir, hash[:2], hash[2:])
		info, err := os.Stat(objectPath)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return stats, err
		}

		if err := os.Remove(objectPath); err != nil {
			return stats, err
		}
		stats.DeletedObjects++
		stats.DeletedBytes += uint64(info.Size())

		// Best effort: fails while the prefix directory is non-empty.
		_ = os.Remove(filepath.Join(c.objectsDir, hash[:2]))
	}

	return stats, nil
}

// Run marks, sweeps, and deletes in one pass, returning the reclaimed stats
// and the unreferenced hashes it removed.
func (c *Collector) Run() (Stats, []string, error) {
	marked, err := c.Mark()
	if err != nil {
		return Stats{}, nil, err
	}

	unreferenced, err := c.Sweep(marked)
	if err != nil {
		return Stats{}, nil, err
	}

	stats, err := c.Delete(unreferenced)
	return stats, unreferenced, err
}
