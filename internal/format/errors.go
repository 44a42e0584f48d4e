package format

import "errors"

// ErrTruncated indicates a header that does not fit inside the arena.
var ErrTruncated = errors.New("format: truncated header")
