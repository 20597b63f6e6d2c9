package hierarchical

import "errors"

var (
	// ErrInvalidPath is returned for property paths with empty segments.
	ErrInvalidPath = errors.New("invalid property path")
)
