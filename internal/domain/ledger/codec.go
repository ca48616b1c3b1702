package ledger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var errNotArray = errors.New("ledger is not a JSON array")

// decodeLedger parses stored slot content. Entries that are not record
// objects are skipped and counted; a non-array top level is an error.
func decodeLedger(raw []byte) ([]Customer, int, error) {
	entries, err := splitArray(raw)
	if err != nil {
		return nil, 0, err
	}

	records := make([]Customer, 0, len(entries))
	dropped := 0
	for _, entry := range entries {
		c, err := decodeCustomer(entry)
		if err != nil {
			dropped++
			continue
		}
		records = append(records, c)
	}
	return records, dropped, nil
}

// decodeBackup parses an imported backup strictly: every entry must be a
// record object and IDs must be unique.
func decodeBackup(raw []byte) ([]Customer, error) {
	if !json.Valid(raw) {
		return nil, ErrUnreadableBackup
	}
	entries, err := splitArray(raw)
	if err != nil {
		return nil, ErrInvalidBackup
	}

	records := make([]Customer, 0, len(entries))
	seen := make(map[int64]struct{}, len(entries))
	for i, entry := range entries {
		c, err := decodeCustomer(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidBackup, i, err)
		}
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrInvalidBackup, c.ID)
		}
		seen[c.ID] = struct{}{}
		records = append(records, c)
	}
	return records, nil
}

func splitArray(raw []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errNotArray
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func decodeCustomer(entry json.RawMessage) (Customer, error) {
	trimmed := bytes.TrimSpace(entry)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Customer{}, errors.New("entry is not an object")
	}
	var c Customer
	if err := json.Unmarshal(trimmed, &c); err != nil {
		return Customer{}, err
	}
	return c, nil
}

// encodeLedger serializes the collection; an empty ledger encodes as [].
func encodeLedger(records []Customer) ([]byte, error) {
	if records == nil {
		records = []Customer{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
