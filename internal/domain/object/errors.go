package object

import "fmt"

// NotFoundError is returned by Retrieve when no object exists for a hash.
type NotFoundError struct {
	Hash string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("object not found: %s", e.Hash)
}

// HashMismatchError is returned when a retrieved object fails its integrity
// check. It is the only corruption signal the store emits.
type HashMismatchError struct {
	Expected string
	Actual   string
}

func (e *HashMismatchError) Error() string {
	return fmt.Sprintf("object hash mismatch: expected %s, got %s", e.Expected, e.Actual)
}
