package ledger

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// Filter returns the records whose name contains search (case-insensitive)
// and whose payment state matches status. Input order is preserved.
func Filter(records []Customer, search string, status Status) []Customer {
	folder := cases.Fold()
	term := folder.String(search)

	out := make([]Customer, 0, len(records))
	for _, c := range records {
		if term != "" && !strings.Contains(folder.String(c.Name), term) {
			continue
		}
		switch status {
		case StatusPaid:
			if !c.Paid {
				continue
			}
		case StatusUnpaid:
			if c.Paid {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// leadingNumber matches the numeric prefix a float parser would accept.
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// ParseAmount reads the leading number of an amount as a float64; anything
// unparsable or outside float64 range is zero.
func ParseAmount(a Amount) decimal.Decimal {
	s := strings.TrimSpace(string(a))
	match := leadingNumber.FindString(s)
	if match == "" {
		return decimal.Zero
	}
	f, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// TotalPending sums the amounts of all unpaid records.
func TotalPending(records []Customer) decimal.Decimal {
	total := decimal.Zero
	for _, c := range records {
		if c.Paid {
			continue
		}
		total = total.Add(ParseAmount(c.Amount))
	}
	return total
}

// Summarize counts records by state and totals what is still owed.
func Summarize(records []Customer) Summary {
	sum := Summary{Total: len(records)}
	for _, c := range records {
		if c.Paid {
			sum.Paid++
		} else {
			sum.Unpaid++
		}
	}
	sum.PendingTotal = TotalPending(records).StringFixed(2)
	return sum
}
