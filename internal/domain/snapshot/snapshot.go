// Package snapshot defines the snapshot manifest and its persistent store.
package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// FileEntry records one file captured in a snapshot. Path is relative to the
// working-tree root and uses forward slashes. Mode is reserved and currently
// never populated.
type FileEntry struct {
	Path string  `json:"path"`
	Hash string  `json:"hash"`
	Size uint64  `json:"size"`
	Mode *string `json:"mode"`
}

// Snapshot is an immutable manifest of file entries plus metadata. The ID is
// derived from the timestamp and the ordered file list, so two snapshots with
// the same timestamp and file list are the same snapshot.
type Snapshot struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Message   *string     `json:"message"`
	Files     []FileEntry `json:"files"`
	Trigger   *string     `json:"trigger"`
}

// New creates a snapshot stamped with the current UTC time.
func New(files []FileEntry, message, trigger *string) Snapshot {
	timestamp := time.Now().UTC()
	return Snapshot{
		ID:        generateID(timestamp, files),
		Timestamp: timestamp,
		Message:   message,
		Files:     files,
		Trigger:   trigger,
	}
}

func generateID(timestamp time.Time, files []FileEntry) string {
	h := sha256.New()
	h.Write([]byte(timestamp.Format(time.RFC3339Nano)))
	for _, f := range files {
		h.Write([]byte(f.Path))
		h.Write([]byte(f.Hash))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// ShortID returns the 7-character abbreviated form of the ID.
func (s *Snapshot) ShortID() string {
	if len(s.ID) < 7 {
		return s.ID
	}
	return s.ID[:7]
}

// FileCount returns the number of files in the manifest.
func (s *Snapshot) FileCount() int {
	return len(s.Files)
}

// FindFile returns the entry for path, or nil if the snapshot does not
// contain it.
func (s *Snapshot) FindFile(path string) *FileEntry {
	for i := range s.Files {
		if s.Files[i].Path == path {
			return &s.Files[i]
		}
	}
	return nil
}

// SameFileHashes reports whether two file lists name the same paths with the
// same hashes, regardless of order. Auto snapshots use it to skip saving when
// nothing changed.
func SameFileHashes(a, b []FileEntry) bool {
	if len(a) != len(b) {
		return false
	}
	hashes := make(map[string]string, len(a))
	for _, f := range a {
		hashes[f.Path] = f.Hash
	}
	for _, f := range b {
		if hashes[f.Path] != f.Hash {
			return false
		}
	}
	return true
}
