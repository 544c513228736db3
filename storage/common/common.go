package common

import "errors"

// ErrKeyNotFound is shared across storage backends so callers can
// branch on absence without knowing the backend.
var ErrKeyNotFound = errors.New("storage: key not found")
