package ledger

import "strings"

// normalizeFields trims every user-entered value.
func normalizeFields(f Fields) Fields {
	return Fields{
		Name:   strings.TrimSpace(f.Name),
		Phone:  strings.TrimSpace(f.Phone),
		Amount: strings.TrimSpace(f.Amount),
		Note:   strings.TrimSpace(f.Note),
		Date:   strings.TrimSpace(f.Date),
		Due:    strings.TrimSpace(f.Due),
	}
}

// ValidateFields checks the presence of name and amount after trimming.
func ValidateFields(f Fields) error {
	if strings.TrimSpace(f.Name) == "" {
		return &ValidationError{Field: "name"}
	}
	if strings.TrimSpace(f.Amount) == "" {
		return &ValidationError{Field: "amount"}
	}
	return nil
}
