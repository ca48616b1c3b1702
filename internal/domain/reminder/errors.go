package reminder

import "errors"

// ErrMissingPhone indicates the record has no phone number to message.
var ErrMissingPhone = errors.New("phone number missing")
