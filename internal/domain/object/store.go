// Package object implements the content-addressed blob store. Every stored
// value is named by the SHA-256 of its uncompressed bytes and persisted as a
// zstd frame under a two-character fan-out directory.
package object

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// DefaultCompressionLevel is the zstd level used when none is configured.
const DefaultCompressionLevel = 3

// Store persists immutable blobs keyed by content hash.
type Store struct {
	dir   string
	level int
}

// Option configures a Store.
type Option func(*Store)

// WithCompressionLevel sets the zstd compression level.
func WithCompressionLevel(level int) Option {
	return func(s *Store) {
		s.level = level
	}
}

// NewStore creates a store rooted at dir. The directory is created lazily on
// first write.
func NewStore(dir string, opts ...Option) *Store {
	s := &Store{
		dir:   dir,
		level: DefaultCompressionLevel,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Dir returns the objects directory.
func (s *Store) Dir() string {
	return s.dir
}

// ComputeHash returns the lowercase hex SHA-256 of content.
func ComputeHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Store writes content to the store and returns its hash. Storing the same
// content twice is a no-op: the existing object is kept and the hash returned
// unchanged.
func (s *Store) Store(content []byte) (string, error) {
	hash := ComputeHash(content)
	objectPath := s.objectPath(hash)

	if _, err := os.Stat(objectPath); err == nil {
		return hash, nil
	}

	if err := os.MkdirAll(filepath.Dir(objectPath), 0o755); err != nil {
		return "", fmt.Errorf("create object directory: %w", err)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(s.level)))
	if err != nil {
		return "", fmt.Errorf("create zstd encoder: %w", err)
	}
	compressed := enc.EncodeAll(content, nil)
	_ = enc.Close()

	if err := os.WriteFile(objectPath, compressed, 0o644); err != nil {
		return "", fmt.Errorf("write object %s: %w", hash, err)
	}

	return hash, nil
}

// StoreFile reads the file at path whole and stores its content. It returns
// the hash and the byte length.
func (s *Store) StoreFile(path string) (string, uint64, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", 0, err
	}

	hash, err := s.Store(content)
	if err != nil {
		return "", 0, err
	}

	return hash, uint64(len(content)), nil
}

// Retrieve returns the uncompressed content for hash. The content is
// re-hashed after decompression; a mismatch means the repository is corrupt.
func (s *Store) Retrieve(hash string) ([]byte, error) {
	objectPath := s.objectPath(hash)

	compressed, err := os.ReadFile(objectPath)
	if os.IsNotExist(err) {
		return nil, &NotFoundError{Hash: hash}
	}
	if err != nil {
		return nil, err
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer dec.Close()

	content, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress object %s: %w", hash, err)
	}

	if actual := ComputeHash(content); actual != hash {
		return nil, &HashMismatchError{Expected: hash, Actual: actual}
	}

	return content, nil
}

// RestoreFile retrieves hash and writes the uncompressed bytes to dest,
// creating parent directories and overwriting any existing file.
func (s *Store) RestoreFile(hash, dest string) error {
	content, err := s.Retrieve(hash)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create parent directory for %s: %w", dest, err)
	}

	return os.WriteFile(dest, content, 0o644)
}

func (s *Store) objectPath(hash string) string {
	return filepath.Join(s.dir, hash[:2], hash[2:])
}
