// Package scan walks the working tree, applies ignore rules, and turns files
// into snapshot entries, populating the object store and the index along the
// way.
package scan

import (
	"io/fs"

	"github.com/felixgeelhaar/mote/internal/adapters/logging"
	"github.com/felixgeelhaar/mote/internal/domain/ignore"
	"github.com/felixgeelhaar/mote/internal/domain/index"
	"github.com/felixgeelhaar/mote/internal/domain/object"
	"github.com/felixgeelhaar/mote/internal/domain/snapshot"
	"github.com/felixgeelhaar/mote/internal/ports"
)

// Scanner produces file entries in traversal order. It borrows the object
// store and the index for the duration of one Run and holds no state across
// runs.
type Scanner struct {
	root       string
	ignorePath string
	objects    *object.Store
	index      *index.Index
	logger     ports.Logger
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithLogger sets the logger used for per-file warnings. Auto-mode callers
// pass a nop logger to keep hook output silent.
func WithLogger(logger ports.Logger) ScannerOption {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// NewScanner creates a scanner over the working tree at root. ignorePath
// names the gitignore-style pattern file; a missing file means nothing is
// ignored beyond the hard skips.
func NewScanner(root, ignorePath string, objects *object.Store, idx *index.Index, opts ...ScannerOption) *Scanner {
	s := &Scanner{
		root:       root,
		ignorePath: ignorePath,
		objects:    objects,
		index:      idx,
		logger:     logging.NewNopLogger(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run walks the tree and returns the collected entries. Unchanged files (by
// mtime and size) reuse their cached hash without re-reading the content;
// everything else is stored and recorded in the index. Per-file failures are
// logged and skipped.
func (s *Scanner) Run() ([]snapshot.FileEntry, error) {
	rules, err := ignore.LoadFile(s.ignorePath)
	if err != nil {
		return nil, err
	}

	var files []snapshot.FileEntry

	err = Walk(s.root, rules, func(rel, abs string, d fs.DirEntry) error {
		info, err := d.Info()
		if err != nil {
			s.logger.Warn("failed to read metadata", ports.F("path", rel), ports.F("err", err))
			return nil
		}

		mtime := info.ModTime()
		size := uint64(info.Size())

		if cached, ok := s.index.IsUnchanged(rel, mtime, size); ok {
			files = append(files, snapshot.FileEntry{
				Path: rel,
				Hash: cached.Hash,
				Size: cached.Size,
			})
			return nil
		}

		hash, storedSize, err := s.objects.StoreFile(abs)
		if err != nil {
			s.logger.Warn("failed to store", ports.F("path", rel), ports.F("err", err))
			return nil
		}

		s.index.Insert(index.Entry{
			Path:      rel,
			Hash:      hash,
			Size:      storedSize,
			MtimeSec:  mtime.Unix(),
			MtimeNsec: int64(mtime.Nanosecond()),
		})
		files = append(files, snapshot.FileEntry{Path: rel, Hash: hash, Size: storedSize})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}
