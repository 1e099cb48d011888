package snapshot

import "fmt"

// NotFoundError is returned by FindByID when no snapshot matches.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("snapshot not found: %s", e.ID)
}

// AmbiguousIDError is returned by FindByID when a partial ID matches more
// than one snapshot. The caller should supply more hex digits.
type AmbiguousIDError struct {
	ID string
}

func (e *AmbiguousIDError) Error() string {
	return fmt.Sprintf("ambiguous snapshot ID: %s (multiple matches found)", e.ID)
}
