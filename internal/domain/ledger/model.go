package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DateLayout is the ISO 8601 calendar date format used for Date and Due.
const DateLayout = "2006-01-02"

// Customer is one credit entry in the ledger.
type Customer struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Phone  string  `json:"phone"`
	Amount Amount  `json:"amount"`
	Note   string  `json:"note"`
	Date   string  `json:"date"`
	Due    *string `json:"due"`
	Paid   bool    `json:"paid"`
}

// Pending reports whether the credit is still outstanding.
func (c Customer) Pending() bool {
	return !c.Paid
}

// Amount is a money amount kept exactly as the user entered it.
// Stored backups sometimes carry the amount as a bare JSON number, so both
// forms decode; it always encodes as a string.
type Amount string

// UnmarshalJSON accepts a JSON string, number or null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount must be a string or number: %w", err)
	}
	*a = Amount(n.String())
	return nil
}

// String returns the amount as entered.
func (a Amount) String() string {
	return string(a)
}

// Fields carries the client-supplied values for add and update.
// ID and Paid are owned by the store.
type Fields struct {
	Name   string
	Phone  string
	Amount string
	Note   string
	Date   string
	Due    string
}

// Summary aggregates the ledger for display.
type Summary struct {
	Total        int    `json:"total"`
	Paid         int    `json:"paid"`
	Unpaid       int    `json:"unpaid"`
	PendingTotal string `json:"pending_total"`
}
