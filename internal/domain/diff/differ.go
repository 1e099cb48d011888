// Package diff computes set and unified-content diffs between two snapshots
// or between a snapshot and the working tree.
package diff

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/felixgeelhaar/mote/internal/adapters/logging"
	"github.com/felixgeelhaar/mote/internal/domain/ignore"
	"github.com/felixgeelhaar/mote/internal/domain/object"
	"github.com/felixgeelhaar/mote/internal/domain/scan"
	"github.com/felixgeelhaar/mote/internal/domain/snapshot"
	"github.com/felixgeelhaar/mote/internal/ports"
)

// DefaultContext is the unified-diff context radius used when none is given.
const DefaultContext = 3

// Options control the output shape.
type Options struct {
	// NameOnly emits one M/A/D line per path instead of content hunks.
	NameOnly bool
	// Context is the unified-diff context radius.
	Context int
}

// Differ renders diffs into a caller-supplied writer.
type Differ struct {
	objects *object.Store
	logger  ports.Logger
}

// DifferOption configures a Differ.
type DifferOption func(*Differ)

// WithLogger sets the logger used for missing-object warnings.
func WithLogger(logger ports.Logger) DifferOption {
	return func(d *Differ) {
		d.logger = logger
	}
}

// NewDiffer creates a differ reading content from the given object store.
func NewDiffer(objects *object.Store, opts ...DifferOption) *Differ {
	d := &Differ{
		objects: objects,
		logger:  logging.NewNopLogger(),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Snapshots diffs from → to. Paths present in both with differing hashes are
// modified, paths only in to are added, paths only in from are deleted.
func (d *Differ) Snapshots(from, to *snapshot.Snapshot, w io.Writer, opts Options) error {
	fmt.Fprintf(w, "Comparing %s -> %s\n\n", from.ShortID(), to.ShortID())

	fromEntries := entriesByPath(from)
	seen := make(map[string]bool, len(to.Files))

	for _, entry := range to.Files {
		seen[entry.Path] = true
		old, inFrom := fromEntries[entry.Path]

		switch {
		case inFrom && old.Hash != entry.Hash:
			if err := d.emit(w, opts, 'M', entry.Path, old.Hash, entry.Hash); err != nil {
				return err
			}
		case !inFrom:
			if err := d.emit(w, opts, 'A', entry.Path, "", entry.Hash); err != nil {
				return err
			}
		}
	}

	for _, entry := range from.Files {
		if seen[entry.Path] {
			continue
		}
		if err := d.emit(w, opts, 'D', entry.Path, entry.Hash, ""); err != nil {
			return err
		}
	}

	return nil
}

// WorkingTree diffs snap against the current working tree at root, walking it
// with the same ignore rules the scanner uses. Working-tree content is hashed
// in memory and never stored.
func (d *Differ) WorkingTree(snap *snapshot.Snapshot, root, ignorePath string, w io.Writer, opts Options) error {
	fmt.Fprintf(w, "Comparing %s -> working directory\n\n", snap.ShortID())

	rules, err := ignore.LoadFile(ignorePath)
	if err != nil {
		return err
	}

	snapEntries := entriesByPath(snap)
	seen := make(map[string]bool)

	err = scan.Walk(root, rules, func(rel, abs string, _ fs.DirEntry) error {
		seen[rel] = true

		content, err := os.ReadFile(abs)
		if err != nil {
			d.logger.Warn("failed to read", ports.F("path", rel), ports.F("err", err))
			return nil
		}

		entry, inSnap := snapEntries[rel]
		switch {
		case inSnap && object.ComputeHash(content) != entry.Hash:
			return d.emitContent(w, opts, 'M', rel, entry.Hash, content)
		case !inSnap:
			return d.emitContent(w, opts, 'A', rel, "", content)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, entry := range snap.Files {
		if seen[entry.Path] {
			continue
		}
		if err := d.emitContent(w, opts, 'D', entry.Path, entry.Hash, nil); err != nil {
			return err
		}
	}

	return nil
}

func entriesByPath(snap *snapshot.Snapshot) map[string]snapshot.FileEntry {
	m := make(map[string]snapshot.FileEntry, len(snap.Files))
	for _, entry := range snap.Files {
		m[entry.Path] = entry
	}
	return m
}

// emit renders one classified path, loading the new side from the store.
func (d *Differ) emit(w io.Writer, opts Options, tag rune, path, oldHash, newHash string) error {
	if opts.NameOnly {
		_, err := fmt.Fprintf(w, "%c\t%s\n", tag, path)
		return err
	}

	newContent, err := d.retrieveLossy(newHash, path)
	if err != nil {
		return err
	}
	return d.renderUnified(w, opts, path, oldHash, newContent)
}

// emitContent renders one classified path with the new side already in hand.
func (d *Differ) emitContent(w io.Writer, opts Options, tag rune, path, oldHash string, newContent []byte) error {
	if opts.NameOnly {
		_, err := fmt.Fprintf(w, "%c\t%s\n", tag, path)
		return err
	}
	return d.renderUnified(w, opts, path, oldHash, newContent)
}

func (d *Differ) renderUnified(w io.Writer, opts Options, path, oldHash string, newContent []byte) error {
	oldContent, err := d.retrieveLossy(oldHash, path)
	if err != nil {
		return err
	}

	oldText := lossyString(oldContent)
	newText := lossyString(newContent)
	if oldText == "" && newText == "" {
		return nil
	}

	radius := opts.Context
	if radius == 0 {
		radius = DefaultContext
	}

	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(oldText),
		B:        splitLines(newText),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  radius,
	})
	if err != nil {
		return fmt.Errorf("diff %s: %w", path, err)
	}

	fmt.Fprintf(w, "diff --mote a/%s b/%s\n", path, path)
	fmt.Fprint(w, text)
	fmt.Fprintln(w)
	return nil
}

// retrieveLossy loads an object for diffing. A missing object is reported
// and treated as empty content; corruption and I/O errors still fail.
func (d *Differ) retrieveLossy(hash, path string) ([]byte, error) {
	if hash == "" {
		return nil, nil
	}

	content, err := d.objects.Retrieve(hash)
	if err != nil {
		var notFound *object.NotFoundError
		if errors.As(err, &notFound) {
			d.logger.Warn("object not found", ports.F("path", path), ports.F("hash", hash))
			return nil, nil
		}
		return nil, err
	}
	return content, nil
}

// lossyString decodes bytes as UTF-8 with invalid sequences replaced, so
// binary files diff as text rather than failing.
func lossyString(content []byte) string {
	return strings.ToValidUTF8(string(content), "�")
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return difflib.SplitLines(s)
}
