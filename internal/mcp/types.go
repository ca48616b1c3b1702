package mcp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rpggio/smartcredit/internal/domain/ledger"
)

// RecordID accepts a JSON number or a numeric string. Large IDs survive
// clients that only have float64 numbers when sent as strings.
type RecordID int64

func (id *RecordID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*id = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("record id %s is not an integer", string(data))
	}
	*id = RecordID(v)
	return nil
}

type RecordFields struct {
	Name   string        `json:"name"`
	Phone  string        `json:"phone,omitempty"`
	Amount ledger.Amount `json:"amount"`
	Note   string        `json:"note,omitempty"`
	Date   string        `json:"date,omitempty"`
	Due    string        `json:"due,omitempty"`
}

func (f RecordFields) toFields() ledger.Fields {
	return ledger.Fields{
		Name:   f.Name,
		Phone:  f.Phone,
		Amount: f.Amount.String(),
		Note:   f.Note,
		Date:   f.Date,
		Due:    f.Due,
	}
}

type AddRecordParams struct {
	RecordFields
}

type UpdateRecordParams struct {
	ID RecordID `json:"id"`
	RecordFields
}

type RecordIDParams struct {
	ID RecordID `json:"id"`
}

type ListRecordsParams struct {
	Search string `json:"search,omitempty"`
	Status string `json:"status,omitempty"`
}

type ImportBackupParams struct {
	Data string `json:"data"`
}

type GetActivityParams struct {
	RecordID *RecordID `json:"record_id,omitempty"`
	Type     string    `json:"type,omitempty"`
	Limit    int       `json:"limit,omitempty"`
}

// MutationResult reports whether a targeted change found its record.
type MutationResult struct {
	ID      int64            `json:"id"`
	Changed bool             `json:"changed"`
	Record  *ledger.Customer `json:"record,omitempty"`
}

type PruneResult struct {
	Removed int `json:"removed"`
}

type ListRecordsResponse struct {
	Records []ledger.Customer `json:"records"`
	Count   int               `json:"count"`
	Summary ledger.Summary    `json:"summary"`
}

type BackupResponse struct {
	FileName string `json:"file_name"`
	Data     string `json:"data"`
}

type ImportResult struct {
	Imported int `json:"imported"`
}
