package apperr

import "errors"

// ErrNotFound marks a path that was expected on disk but is absent.
// Callers use errors.Is to tell "not there" apart from a real
// filesystem failure.
var ErrNotFound = errors.New("not found")
