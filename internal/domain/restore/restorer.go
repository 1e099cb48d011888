// Package restore materializes snapshots back onto the working tree.
package restore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/mote/internal/adapters/logging"
	"github.com/felixgeelhaar/mote/internal/domain/object"
	"github.com/felixgeelhaar/mote/internal/domain/scan"
	"github.com/felixgeelhaar/mote/internal/domain/snapshot"
	"github.com/felixgeelhaar/mote/internal/ports"
)

// BackupTrigger marks the safety snapshot taken before a full restore.
const BackupTrigger = "auto-backup"

// FileOutcome reports what a single-file restore did.
type FileOutcome int

const (
	// OutcomeRestored means the file was written from the snapshot.
	OutcomeRestored FileOutcome = iota
	// OutcomeDeleted means the path was absent from the snapshot and the
	// on-disk file was removed: the snapshot is authoritative for the path.
	OutcomeDeleted
	// OutcomeMissing means the path is in neither the snapshot nor the tree.
	OutcomeMissing
)

// Restorer writes snapshot content onto the working tree at root.
type Restorer struct {
	root      string
	objects   *object.Store
	snapshots *snapshot.Store
	scanner   *scan.Scanner
	logger    ports.Logger
	out       io.Writer
}

// RestorerOption configures a Restorer.
type RestorerOption func(*Restorer)

// WithLogger sets the logger used for per-file warnings.
func WithLogger(logger ports.Logger) RestorerOption {
	return func(r *Restorer) {
		r.logger = logger
	}
}

// WithOutput sets the writer for per-file progress lines (dry runs and the
// backup notice). Defaults to discarding them.
func WithOutput(w io.Writer) RestorerOption {
	return func(r *Restorer) {
		r.out = w
	}
}

// NewRestorer creates a restorer. The scanner is used to take the safety
// backup snapshot before a full restore.
func NewRestorer(root string, objects *object.Store, snapshots *snapshot.Store, scanner *scan.Scanner, opts ...RestorerOption) *Restorer {
	r := &Restorer{
		root:      root,
		objects:   objects,
		snapshots: snapshots,
		scanner:   scanner,
		logger:    logging.NewNopLogger(),
		out:       io.Discard,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// RestoreFile restores a single path from the snapshot. If the snapshot does
// not contain the path but the file exists on disk, the file is deleted so
// the tree matches the snapshot for that path.
func (r *Restorer) RestoreFile(snap *snapshot.Snapshot, path string, dryRun bool) (FileOutcome, error) {
	rel := r.toRelative(path)
	dest := filepath.Join(r.root, filepath.FromSlash(rel))

	if entry := snap.FindFile(rel); entry != nil {
		if dryRun {
			fmt.Fprintf(r.out, "dry-run: would restore %s (%d bytes)\n", entry.Path, entry.Size)
			return OutcomeRestored, nil
		}
		if err := r.objects.RestoreFile(entry.Hash, dest); err != nil {
			return OutcomeRestored, err
		}
		return OutcomeRestored, nil
	}

	if _, err := os.Stat(dest); err == nil {
		if dryRun {
			fmt.Fprintf(r.out, "dry-run: would delete %s (not in snapshot)\n", rel)
			return OutcomeDeleted, nil
		}
		if err := os.Remove(dest); err != nil {
			return OutcomeDeleted, err
		}
		return OutcomeDeleted, nil
	}

	return OutcomeMissing, nil
}

// RestoreAll restores every file in the snapshot. Unless force is set, a
// backup snapshot of the current tree is saved first so the pre-restore bytes
// stay recoverable. Files whose on-disk content already matches are skipped;
// per-file failures are logged and do not abort the restore. Returns the
// restored and skipped counts.
func (r *Restorer) RestoreAll(snap *snapshot.Snapshot, force, dryRun bool) (restored, skipped int, err error) {
	if !force && !dryRun {
		if err := r.createBackup(snap); err != nil {
			return 0, 0, err
		}
	}

	for _, file := range snap.Files {
		dest := filepath.Join(r.root, filepath.FromSlash(file.Path))

		if dryRun {
			fmt.Fprintf(r.out, "dry-run: would restore %s (%d bytes)\n", file.Path, file.Size)
			restored++
			continue
		}

		if current, err := os.ReadFile(dest); err == nil && object.ComputeHash(current) == file.Hash {
			skipped++
			continue
		}

		if err := r.objects.RestoreFile(file.Hash, dest); err != nil {
			r.logger.Warn("failed to restore", ports.F("path", file.Path), ports.F("err", err))
			continue
		}
		restored++
	}

	return restored, skipped, nil
}

func (r *Restorer) createBackup(target *snapshot.Snapshot) error {
	files, err := r.scanner.Run()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return nil
	}

	message := fmt.Sprintf("Backup before restore to %s", target.ShortID())
	trigger := BackupTrigger
	backup := snapshot.New(files, &message, &trigger)
	if err := r.snapshots.Save(&backup); err != nil {
		return err
	}

	fmt.Fprintf(r.out, "Created backup snapshot: %s\n", backup.ShortID())
	return nil
}

// toRelative resolves an absolute or relative user-supplied path to the
// snapshot's forward-slash relative form.
func (r *Restorer) toRelative(path string) string {
	if filepath.IsAbs(path) {
		if rel, err := filepath.Rel(r.root, path); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(path)
}
