package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrRecordNotFound indicates the record doesn't exist.
	ErrRecordNotFound = errors.New("record not found")
	// ErrInvalidInput indicates a required field is missing.
	ErrInvalidInput = errors.New("invalid customer input")
	// ErrInvalidBackup indicates a backup whose top-level value is not a list of records.
	ErrInvalidBackup = errors.New("invalid backup file")
	// ErrUnreadableBackup indicates a backup that is not valid JSON.
	ErrUnreadableBackup = errors.New("error reading backup file")
	// ErrInvalidStatus indicates an unknown status filter.
	ErrInvalidStatus = errors.New("invalid status filter")
)

// ValidationError names the field that failed a presence check.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
