package activity

import "errors"

// ErrInvalidInput indicates a nil or empty activity entry.
var ErrInvalidInput = errors.New("invalid activity input")
