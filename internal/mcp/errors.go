package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/smartcredit/internal/domain/activity"
	"github.com/rpggio/smartcredit/internal/domain/ledger"
	"github.com/rpggio/smartcredit/internal/domain/reminder"
)

var (
	// ErrUnknownMethod is returned for methods the handler doesn't serve.
	ErrUnknownMethod = errors.New("unknown method")
	// ErrInvalidParams is returned when arguments can't be decoded.
	ErrInvalidParams = errors.New("invalid params")
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unknown errors map to nil.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	var vErr *ledger.ValidationError
	switch {
	case errors.As(err, &vErr):
		return &APIError{Code: "INVALID_INPUT", Message: vErr.Error(), Details: map[string]string{"field": vErr.Field}, RecoveryHint: "Name and amount are required"}
	case errors.Is(err, ledger.ErrInvalidInput), errors.Is(err, activity.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, ledger.ErrRecordNotFound):
		return &APIError{Code: "RECORD_NOT_FOUND", Message: "record not found", RecoveryHint: "Call list_records to find the id"}
	case errors.Is(err, ledger.ErrUnreadableBackup):
		return &APIError{Code: "UNREADABLE_BACKUP", Message: "error reading backup file", RecoveryHint: "Pass the backup file contents as JSON text"}
	case errors.Is(err, ledger.ErrInvalidBackup):
		return &APIError{Code: "INVALID_BACKUP", Message: "invalid backup file", Details: err.Error(), RecoveryHint: "A backup is a JSON array of records"}
	case errors.Is(err, ledger.ErrInvalidStatus):
		return &APIError{Code: "INVALID_STATUS", Message: err.Error(), RecoveryHint: "Use all, paid or unpaid"}
	case errors.Is(err, reminder.ErrMissingPhone):
		return &APIError{Code: "MISSING_PHONE", Message: "phone number missing", RecoveryHint: "Add a phone number with update_record"}
	case errors.Is(err, ErrInvalidParams):
		return &APIError{Code: "INVALID_PARAMS", Message: err.Error()}
	case errors.Is(err, ErrUnknownMethod):
		return &APIError{Code: "METHOD_NOT_FOUND", Message: err.Error()}
	default:
		return nil
	}
}
