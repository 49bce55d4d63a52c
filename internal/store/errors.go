// internal/store/errors.go
package store

import (
	"errors"
)

// ErrNotFound is returned when the keyed record does not exist.
var ErrNotFound = errors.New("store: not found")
