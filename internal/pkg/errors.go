package pkg

import "errors"

// ErrNotFound is returned by store lookups when no document matches.
var ErrNotFound = errors.New("document not found")
