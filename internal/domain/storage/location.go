// Package storage resolves and creates the on-disk repository layout: an
// objects/ fan-out tree, a snapshots/ directory, and the index file.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Sentinel errors for repository resolution.
var (
	// ErrNotInitialized is returned when no repository exists for the tree.
	ErrNotInitialized = errors.New("mote is not initialized, run 'mote init' first")

	// ErrAlreadyInitialized is returned by Init when the chosen path exists.
	ErrAlreadyInitialized = errors.New("mote is already initialized in this directory")

	// ErrNoVCSDirectory is returned when strategy vcs finds neither .git nor .jj.
	ErrNoVCSDirectory = errors.New("no VCS directory found (.git or .jj), required for location_strategy = 'vcs'")
)

// Strategy selects where the repository lives relative to the working tree.
type Strategy string

// Location strategies.
const (
	StrategyRoot Strategy = "root"
	StrategyVCS  Strategy = "vcs"
	StrategyAuto Strategy = "auto"
)

// UnmarshalText lets a Strategy be decoded straight from config.
func (s *Strategy) UnmarshalText(text []byte) error {
	switch Strategy(text) {
	case StrategyRoot, StrategyVCS, StrategyAuto:
		*s = Strategy(text)
		return nil
	case "":
		*s = StrategyRoot
		return nil
	default:
		return fmt.Errorf("unknown location strategy %q", text)
	}
}

// Location is a resolved repository directory.
type Location struct {
	root string
}

// Init creates a new repository for the working tree at projectRoot. When
// override is non-empty it names the repository directory directly; otherwise
// the strategy picks it. Fails if the chosen path already exists.
func Init(projectRoot string, strategy Strategy, override string) (*Location, error) {
	root := override
	if root == "" {
		var err error
		root, err = determinePath(projectRoot, strategy)
		if err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(root); err == nil {
		return nil, ErrAlreadyInitialized
	}

	for _, dir := range []string{root, filepath.Join(root, "objects"), filepath.Join(root, "snapshots")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	return &Location{root: root}, nil
}

// FindExisting locates an already initialized repository. A non-empty
// override is the only candidate probed; otherwise .mote, .git/mote, and
// .jj/mote are probed in that order.
func FindExisting(projectRoot, override string) (*Location, error) {
	if override != "" {
		if _, err := os.Stat(override); err == nil {
			return &Location{root: override}, nil
		}
		return nil, ErrNotInitialized
	}

	candidates := []string{
		filepath.Join(projectRoot, ".mote"),
		filepath.Join(projectRoot, ".git", "mote"),
		filepath.Join(projectRoot, ".jj", "mote"),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return &Location{root: candidate}, nil
		}
	}

	return nil, ErrNotInitialized
}

func determinePath(projectRoot string, strategy Strategy) (string, error) {
	switch strategy {
	case StrategyVCS:
		if vcs := findVCSDir(projectRoot); vcs != "" {
			return filepath.Join(vcs, "mote"), nil
		}
		return "", ErrNoVCSDirectory
	case StrategyAuto:
		if vcs := findVCSDir(projectRoot); vcs != "" {
			return filepath.Join(vcs, "mote"), nil
		}
		return filepath.Join(projectRoot, ".mote"), nil
	default:
		return filepath.Join(projectRoot, ".mote"), nil
	}
}

func findVCSDir(projectRoot string) string {
	for _, name := range []string{".git", ".jj"} {
		dir := filepath.Join(projectRoot, name)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return ""
}

// Root returns the repository directory.
func (l *Location) Root() string {
	return l.root
}

// ObjectsDir returns the objects directory.
func (l *Location) ObjectsDir() string {
	return filepath.Join(l.root, "objects")
}

// SnapshotsDir returns the snapshots directory.
func (l *Location) SnapshotsDir() string {
	return filepath.Join(l.root, "snapshots")
}

// IndexPath returns the index file path.
func (l *Location) IndexPath() string {
	return filepath.Join(l.root, "index")
}
