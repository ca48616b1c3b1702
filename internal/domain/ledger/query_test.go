package ledger_test

import (
	"testing"

	"github.com/rpggio/smartcredit/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func sampleLedger() []ledger.Customer {
	return []ledger.Customer{
		{ID: 1, Name: "Anna", Amount: "100", Paid: false},
		{ID: 2, Name: "Bala", Amount: "50", Paid: true},
		{ID: 3, Name: "JOHANNA", Amount: "25", Paid: false},
		{ID: 4, Name: "Suresh", Amount: "10", Paid: true},
	}
}

func ids(records []ledger.Customer) []int64 {
	out := make([]int64, 0, len(records))
	for _, c := range records {
		out = append(out, c.ID)
	}
	return out
}

func TestFilter_EmptyTermAllIsIdentity(t *testing.T) {
	records := sampleLedger()
	require.Equal(t, records, ledger.Filter(records, "", ledger.StatusAll))
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name   string
		search string
		status ledger.Status
		want   []int64
	}{
		{name: "case insensitive", search: "ann", status: ledger.StatusAll, want: []int64{1, 3}},
		{name: "upper term", search: "ANNA", status: ledger.StatusAll, want: []int64{1, 3}},
		{name: "paid only", search: "", status: ledger.StatusPaid, want: []int64{2, 4}},
		{name: "unpaid only", search: "", status: ledger.StatusUnpaid, want: []int64{1, 3}},
		{name: "search and status", search: "a", status: ledger.StatusPaid, want: []int64{2}},
		{name: "no match", search: "zz", status: ledger.StatusAll, want: []int64{}},
		{name: "unknown status behaves like all", search: "", status: ledger.Status("weird"), want: []int64{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ledger.Filter(sampleLedger(), tt.search, tt.status)
			require.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilter_UnicodeFolding(t *testing.T) {
	records := []ledger.Customer{{ID: 1, Name: "ÉMILE"}, {ID: 2, Name: "Straße"}}
	require.Equal(t, []int64{1}, ids(ledger.Filter(records, "émile", ledger.StatusAll)))
	require.Equal(t, []int64{2}, ids(ledger.Filter(records, "STRASSE", ledger.StatusAll)))
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	records := sampleLedger()
	_ = ledger.Filter(records, "ann", ledger.StatusPaid)
	require.Equal(t, sampleLedger(), records)
}

func TestTotalPending(t *testing.T) {
	records := []ledger.Customer{
		{Amount: "100", Paid: false},
		{Amount: "50", Paid: true},
		{Amount: "25", Paid: false},
	}
	require.True(t, decimal.NewFromInt(125).Equal(ledger.TotalPending(records)))
	require.True(t, ledger.TotalPending(nil).IsZero())
}

func TestTotalPending_Decimals(t *testing.T) {
	records := []ledger.Customer{
		{Amount: "0.1"},
		{Amount: "0.2"},
		{Amount: "abc"},
		{Amount: ""},
	}
	require.Equal(t, "0.30", ledger.TotalPending(records).StringFixed(2))
	require.True(t, decimal.RequireFromString("0.3").Equal(ledger.TotalPending(records)))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   ledger.Amount
		want string
	}{
		{in: "500", want: "500"},
		{in: " 12.50 ", want: "12.5"},
		{in: "12.5kg", want: "12.5"},
		{in: "-3", want: "-3"},
		{in: "5.", want: "5"},
		{in: ".5", want: "0.5"},
		{in: "1e3", want: "1000"},
		{in: "1e400", want: "0"},
		{in: "1e-200000000", want: "0"},
		{in: "1e2000000", want: "0"},
		{in: "₹100", want: "0"},
		{in: "abc", want: "0"},
		{in: "", want: "0"},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			got := ledger.ParseAmount(tt.in)
			require.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestSummarize_ExtremeExponents(t *testing.T) {
	records := []ledger.Customer{
		{Amount: "100"},
		{Amount: "1e-200000000"},
		{Amount: "1e2000000"},
		{Amount: "2.5e-300"},
	}
	sum := ledger.Summarize(records)
	require.Equal(t, "100.00", sum.PendingTotal)
	require.Equal(t, 4, sum.Unpaid)
}

func TestSummarize(t *testing.T) {
	sum := ledger.Summarize(sampleLedger())
	require.Equal(t, ledger.Summary{Total: 4, Paid: 2, Unpaid: 2, PendingTotal: "125.00"}, sum)

	empty := ledger.Summarize(nil)
	require.Equal(t, "0.00", empty.PendingTotal)
}

func TestParseStatus(t *testing.T) {
	for in, want := range map[string]ledger.Status{
		"":        ledger.StatusAll,
		"all":     ledger.StatusAll,
		"Paid":    ledger.StatusPaid,
		" unpaid": ledger.StatusUnpaid,
	} {
		got, err := ledger.ParseStatus(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := ledger.ParseStatus("overdue")
	require.ErrorIs(t, err, ledger.ErrInvalidStatus)
}
