package app

import (
	"errors"
	"io"

	"github.com/felixgeelhaar/mote/internal/domain/config"
	"github.com/felixgeelhaar/mote/internal/domain/diff"
	"github.com/felixgeelhaar/mote/internal/domain/gc"
	"github.com/felixgeelhaar/mote/internal/domain/ignore"
	"github.com/felixgeelhaar/mote/internal/domain/index"
	"github.com/felixgeelhaar/mote/internal/domain/restore"
	"github.com/felixgeelhaar/mote/internal/domain/snapshot"
	"github.com/felixgeelhaar/mote/internal/domain/storage"
)

// InitResult reports what Init created.
type InitResult struct {
	RepositoryRoot string
	IgnoreFile     string
}

// Init creates the repository for the working tree and the default ignore
// file, and seeds the global config if absent.
func (s *Service) Init() (*InitResult, error) {
	if err := config.SaveDefault(s.resolver.ConfigDir()); err != nil {
		return nil, err
	}

	loc, err := storage.Init(s.root, s.cfg.Storage.LocationStrategy, s.storageDir)
	if err != nil {
		return nil, err
	}

	if err := ignore.CreateFile(s.ignorePath); err != nil {
		return nil, err
	}

	return &InitResult{RepositoryRoot: loc.Root(), IgnoreFile: s.ignorePath}, nil
}

// SnapshotResult reports what CreateSnapshot did.
type SnapshotResult struct {
	// Snapshot is nil when nothing was captured: an empty tree, or an auto
	// run with no changes or no repository.
	Snapshot *snapshot.Snapshot
	// CleanedUp is the number of snapshots removed by the retention sweep.
	CleanedUp int
	// GCRan indicates the auto-GC predicate fired after the save.
	GCRan bool
}

// CreateSnapshot scans the tree and saves a snapshot. In auto mode a missing
// repository is a silent no-op, warnings are suppressed, and a file set
// identical to the latest snapshot is not saved again.
func (s *Service) CreateSnapshot(message, trigger string, auto bool) (*SnapshotResult, error) {
	loc, err := s.location()
	if err != nil {
		if auto && errors.Is(err, storage.ErrNotInitialized) {
			return &SnapshotResult{}, nil
		}
		return nil, err
	}

	idx, err := index.Load(loc.IndexPath())
	if err != nil {
		return nil, err
	}

	files, err := s.scanner(loc, idx, auto).Run()
	if err != nil {
		return nil, err
	}
	if err := idx.Save(loc.IndexPath()); err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return &SnapshotResult{}, nil
	}

	store := s.snapshotStore(loc)

	if auto {
		latest, err := store.Latest()
		if err == nil && latest != nil && snapshot.SameFileHashes(latest.Files, files) {
			return &SnapshotResult{}, nil
		}
	}

	snap := snapshot.New(files, optional(message), optional(trigger))
	if err := store.Save(&snap); err != nil {
		return nil, err
	}

	result := &SnapshotResult{Snapshot: &snap}

	if s.cfg.Snapshot.AutoCleanup {
		removed, err := store.Cleanup(s.cfg.Snapshot.MaxSnapshots, s.cfg.Snapshot.MaxAgeDays)
		if err != nil {
			return result, err
		}
		result.CleanedUp = removed
	}

	if snapshots, err := store.List(); err == nil && s.autoGC(len(snapshots)) {
		if _, _, err := s.collector(loc).Run(); err != nil {
			return result, err
		}
		result.GCRan = true
	}

	return result, nil
}

// ListSnapshots returns up to limit snapshots, newest first. A limit of 0
// means all.
func (s *Service) ListSnapshots(limit int) ([]snapshot.Snapshot, error) {
	loc, err := s.location()
	if err != nil {
		return nil, err
	}

	snapshots, err := s.snapshotStore(loc).List()
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(snapshots) > limit {
		snapshots = snapshots[:limit]
	}
	return snapshots, nil
}

// FindSnapshot resolves a possibly abbreviated snapshot ID.
func (s *Service) FindSnapshot(id string) (*snapshot.Snapshot, error) {
	loc, err := s.location()
	if err != nil {
		return nil, err
	}
	return s.snapshotStore(loc).FindByID(id)
}

// Diff renders the diff between two snapshots, or between a snapshot and the
// working tree when toID is empty. An empty fromID means the latest
// snapshot.
func (s *Service) Diff(fromID, toID string, opts diff.Options, w io.Writer) error {
	loc, err := s.location()
	if err != nil {
		return err
	}

	store := s.snapshotStore(loc)

	if fromID == "" {
		latest, err := store.Latest()
		if err != nil {
			return err
		}
		if latest == nil {
			return errors.New("no snapshots found")
		}
		fromID = latest.ID
	}

	from, err := store.FindByID(fromID)
	if err != nil {
		return err
	}

	differ := diff.NewDiffer(s.objectStore(loc), diff.WithLogger(s.logger))

	if toID != "" {
		to, err := store.FindByID(toID)
		if err != nil {
			return err
		}
		return differ.Snapshots(from, to, w, opts)
	}

	return differ.WorkingTree(from, s.root, s.ignorePath, w, opts)
}

// RestoreResult reports what Restore did.
type RestoreResult struct {
	// Single is set for single-file restores.
	Single bool
	// Outcome is the single-file outcome.
	Outcome restore.FileOutcome
	// Restored and Skipped are the full-restore counts.
	Restored int
	Skipped  int
}

// Restore restores a whole snapshot, or a single file from it when file is
// non-empty.
func (s *Service) Restore(id, file string, force, dryRun bool) (*RestoreResult, error) {
	loc, err := s.location()
	if err != nil {
		return nil, err
	}

	store := s.snapshotStore(loc)
	snap, err := store.FindByID(id)
	if err != nil {
		return nil, err
	}

	objects := s.objectStore(loc)

	if file != "" {
		restorer := restore.NewRestorer(s.root, objects, store, nil,
			restore.WithLogger(s.logger), restore.WithOutput(s.out))
		outcome, err := restorer.RestoreFile(snap, file, dryRun)
		if err != nil {
			return nil, err
		}
		return &RestoreResult{Single: true, Outcome: outcome}, nil
	}

	idx, err := index.Load(loc.IndexPath())
	if err != nil {
		return nil, err
	}

	restorer := restore.NewRestorer(s.root, objects, store, s.scanner(loc, idx, true),
		restore.WithLogger(s.logger), restore.WithOutput(s.out))

	restored, skipped, err := restorer.RestoreAll(snap, force, dryRun)
	if err != nil {
		return nil, err
	}

	if err := idx.Save(loc.IndexPath()); err != nil {
		return nil, err
	}

	return &RestoreResult{Restored: restored, Skipped: skipped}, nil
}

// DeleteSnapshot removes a snapshot by possibly abbreviated ID and returns
// the deleted manifest.
func (s *Service) DeleteSnapshot(id string) (*snapshot.Snapshot, error) {
	loc, err := s.location()
	if err != nil {
		return nil, err
	}

	store := s.snapshotStore(loc)
	snap, err := store.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := store.Delete(snap.ID); err != nil {
		return nil, err
	}
	return snap, nil
}

// GCResult reports a garbage collection pass.
type GCResult struct {
	SnapshotCount   int
	ReferencedCount int
	TotalObjects    int
	Unreferenced    []string
	Stats           gc.Stats
	DryRun          bool
}

// GC deletes unreferenced objects. With dryRun, it only reports what would
// be deleted.
func (s *Service) GC(dryRun bool) (*GCResult, error) {
	loc, err := s.location()
	if err != nil {
		return nil, err
	}

	store := s.snapshotStore(loc)
	snapshots, err := store.List()
	if err != nil {
		return nil, err
	}

	collector := s.collector(loc)

	marked, err := collector.Mark()
	if err != nil {
		return nil, err
	}

	all, err := collector.ListObjects()
	if err != nil {
		return nil, err
	}

	unreferenced, err := collector.Sweep(marked)
	if err != nil {
		return nil, err
	}

	result := &GCResult{
		SnapshotCount:   len(snapshots),
		ReferencedCount: len(marked),
		TotalObjects:    len(all),
		Unreferenced:    unreferenced,
		DryRun:          dryRun,
	}

	if dryRun || len(unreferenced) == 0 {
		return result, nil
	}

	stats, err := collector.Delete(unreferenced)
	if err != nil {
		return nil, err
	}
	result.Stats = stats
	return result, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
