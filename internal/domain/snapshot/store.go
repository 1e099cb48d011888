package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/felixgeelhaar/mote/internal/adapters/logging"
	"github.com/felixgeelhaar/mote/internal/ports"
)

// Store persists snapshot manifests as pretty-printed JSON files. The
// filename carries the UTC timestamp and the first 8 hex characters of the
// ID, so lexicographic order agrees with timestamp order.
type Store struct {
	dir    string
	logger ports.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for per-file warnings.
func WithLogger(logger ports.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a store over the snapshots directory.
func NewStore(dir string, opts ...StoreOption) *Store {
	s := &Store{
		dir:    dir,
		logger: logging.NewNopLogger(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Save writes the snapshot manifest to disk.
func (s *Store) Save(snap *Snapshot) error {
	filename := fmt.Sprintf(
		"%s_%s.json",
		snap.Timestamp.UTC().Format("20060102_150405"),
		shortHex(snap.ID, 8),
	)

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", snap.ShortID(), err)
	}

	return os.WriteFile(filepath.Join(s.dir, filename), data, 0o644)
}

// List returns all parseable snapshots sorted by timestamp descending, newest
// first. Manifests that fail to parse are skipped with a warning.
func (s *Store) List() ([]Snapshot, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snapshots []Snapshot
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		snap, err := s.load(path)
		if err != nil {
			s.logger.Warn("failed to load snapshot", ports.F("path", path), ports.F("err", err))
			continue
		}
		snapshots = append(snapshots, snap)
	}

	sort.SliceStable(snapshots, func(i, j int) bool {
		return snapshots[i].Timestamp.After(snapshots[j].Timestamp)
	})
	return snapshots, nil
}

func (s *Store) load(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, err
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// FindByID returns the unique snapshot whose ID begins with partial.
func (s *Store) FindByID(partial string) (*Snapshot, error) {
	snapshots, err := s.List()
	if err != nil {
		return nil, err
	}

	var matches []Snapshot
	for _, snap := range snapshots {
		if strings.HasPrefix(snap.ID, partial) {
			matches = append(matches, snap)
		}
	}

	switch len(matches) {
	case 0:
		return nil, &NotFoundError{ID: partial}
	case 1:
		return &matches[0], nil
	default:
		return nil, &AmbiguousIDError{ID: partial}
	}
}

// Latest returns the newest snapshot, or nil when there are none.
func (s *Store) Latest() (*Snapshot, error) {
	snapshots, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, nil
	}
	return &snapshots[0], nil
}

// Cleanup removes snapshots past the retention limits: any snapshot whose
// newest-first index reaches maxCount, or whose age in whole days exceeds
// maxAgeDays. Individual deletion failures are logged and skipped. Returns
// the number removed.
func (s *Store) Cleanup(maxCount, maxAgeDays int) (int, error) {
	snapshots, err := s.List()
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	removed := 0

	for i, snap := range snapshots {
		ageDays := int(now.Sub(snap.Timestamp).Hours() / 24)
		if i < maxCount && ageDays <= maxAgeDays {
			continue
		}

		if err := s.Delete(snap.ID); err != nil {
			s.logger.Warn("failed to remove snapshot", ports.F("id", snap.ShortID()), ports.F("err", err))
			continue
		}
		removed++
	}

	return removed, nil
}

// Delete removes the manifest file whose name contains the first 8 hex
// characters of id.
func (s *Store) Delete(id string) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}

	short := shortHex(id, 8)
	for _, entry := range entries {
		if strings.Contains(entry.Name(), short) {
			return os.Remove(filepath.Join(s.dir, entry.Name()))
		}
	}
	return nil
}

func shortHex(id string, n int) string {
	if len(id) < n {
		return id
	}
	return id[:n]
}
