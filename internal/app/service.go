// Package app wires the domain components together per invocation: it
// resolves configuration, locates the repository, and exposes the operations
// the CLI calls.
package app

import (
	"errors"
	"io"
	"path/filepath"

	"github.com/felixgeelhaar/mote/internal/adapters/logging"
	"github.com/felixgeelhaar/mote/internal/domain/config"
	"github.com/felixgeelhaar/mote/internal/domain/gc"
	"github.com/felixgeelhaar/mote/internal/domain/index"
	"github.com/felixgeelhaar/mote/internal/domain/object"
	"github.com/felixgeelhaar/mote/internal/domain/scan"
	"github.com/felixgeelhaar/mote/internal/domain/snapshot"
	"github.com/felixgeelhaar/mote/internal/domain/storage"
	"github.com/felixgeelhaar/mote/internal/ports"
)

// Options configure a Service for one invocation.
type Options struct {
	// ProjectRoot is the working tree. Required.
	ProjectRoot string
	// ConfigDir overrides the default config directory.
	ConfigDir string
	// Project names the project layer explicitly.
	Project string
	// Context names the context layer.
	Context string
	// StorageDir overrides repository discovery entirely.
	StorageDir string
	// IgnoreFile overrides the ignore file path, resolved against
	// ProjectRoot when relative.
	IgnoreFile string
	// Logger receives warnings from bulk operations.
	Logger ports.Logger
	// Out receives per-file progress lines (dry runs, backup notices).
	Out io.Writer
	// AutoGC decides, given the snapshot count after a save, whether to run
	// garbage collection. Defaults to every gc_auto-th snapshot when
	// gc_auto_enabled is set.
	AutoGC func(snapshotCount int) bool
}

// Service executes mote operations against one working tree.
type Service struct {
	root       string
	cfg        config.Config
	resolver   *config.Resolver
	storageDir string
	ignorePath string
	logger     ports.Logger
	out        io.Writer
	autoGC     func(snapshotCount int) bool
}

// New resolves configuration and builds a service. No repository access
// happens yet; each operation locates the repository itself.
func New(opts Options) (*Service, error) {
	resolver, err := config.LoadResolver(config.ResolveOptions{
		ConfigDir:   opts.ConfigDir,
		Project:     opts.Project,
		Context:     opts.Context,
		ProjectRoot: opts.ProjectRoot,
	})
	if err != nil {
		return nil, err
	}

	cfg := resolver.Resolve()

	s := &Service{
		root:       opts.ProjectRoot,
		cfg:        cfg,
		resolver:   resolver,
		storageDir: opts.StorageDir,
		logger:     opts.Logger,
		out:        opts.Out,
		autoGC:     opts.AutoGC,
	}
	if s.logger == nil {
		s.logger = logging.NewNopLogger()
	}
	if s.out == nil {
		s.out = io.Discard
	}
	if s.storageDir == "" {
		s.storageDir = resolver.ContextStorageDir()
	}
	s.ignorePath = s.resolveIgnorePath(opts.IgnoreFile)
	if s.autoGC == nil {
		s.autoGC = func(count int) bool {
			return cfg.Snapshot.GCAutoEnabled && cfg.Snapshot.GCAuto > 0 && count%cfg.Snapshot.GCAuto == 0
		}
	}

	return s, nil
}

// Config returns the merged configuration in effect.
func (s *Service) Config() config.Config {
	return s.cfg
}

// IgnorePath returns the resolved ignore file path.
func (s *Service) IgnorePath() string {
	return s.ignorePath
}

func (s *Service) resolveIgnorePath(override string) string {
	if override != "" {
		if filepath.IsAbs(override) {
			return override
		}
		return filepath.Join(s.root, override)
	}
	if ctxIgnore := s.resolver.ContextIgnorePath(); ctxIgnore != "" {
		return ctxIgnore
	}
	return filepath.Join(s.root, s.cfg.Ignore.IgnoreFile)
}

// location finds the repository, initializing it when an explicit storage
// dir was given but does not exist yet.
func (s *Service) location() (*storage.Location, error) {
	loc, err := storage.FindExisting(s.root, s.storageDir)
	if errors.Is(err, storage.ErrNotInitialized) && s.storageDir != "" {
		return storage.Init(s.root, s.cfg.Storage.LocationStrategy, s.storageDir)
	}
	return loc, err
}

func (s *Service) objectStore(loc *storage.Location) *object.Store {
	return object.NewStore(loc.ObjectsDir(), object.WithCompressionLevel(s.cfg.Storage.CompressionLevel))
}

func (s *Service) snapshotStore(loc *storage.Location) *snapshot.Store {
	return snapshot.NewStore(loc.SnapshotsDir(), snapshot.WithLogger(s.logger))
}

func (s *Service) scanner(loc *storage.Location, idx *index.Index, quiet bool) *scan.Scanner {
	logger := s.logger
	if quiet {
		logger = logging.NewNopLogger()
	}
	return scan.NewScanner(s.root, s.ignorePath, s.objectStore(loc), idx, scan.WithLogger(logger))
}

func (s *Service) collector(loc *storage.Location) *gc.Collector {
	return gc.NewCollector(loc.ObjectsDir(), s.snapshotStore(loc), gc.WithLogger(s.logger))
}
