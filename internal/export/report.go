// Package export renders the ledger as an XLSX spreadsheet.
package export

import (
	"fmt"
	"io"

	"github.com/rpggio/smartcredit/internal/domain/ledger"
	"github.com/xuri/excelize/v2"
)

const (
	// ContentType is the MIME type of the generated workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	// FileName is the suggested download name.
	FileName = "SmartCreditManager-Report.xlsx"
	// Sheet holds the ledger rows.
	Sheet = "Sheet1"
)

var headers = []string{"ID", "Name", "Phone", "Amount", "Value", "Note", "Date", "Due", "Status"}

// WriteReport writes one row per record followed by a pending-total row.
func WriteReport(w io.Writer, records []ledger.Customer) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, h := range headers {
		if err := setCell(f, i+1, 1, h); err != nil {
			return err
		}
	}

	for i, c := range records {
		row := i + 2
		due := ""
		if c.Due != nil {
			due = *c.Due
		}
		status := "Pending"
		if c.Paid {
			status = "Paid"
		}
		values := []any{
			c.ID,
			c.Name,
			c.Phone,
			c.Amount.String(),
			ledger.ParseAmount(c.Amount).InexactFloat64(),
			c.Note,
			c.Date,
			due,
			status,
		}
		for col, v := range values {
			if err := setCell(f, col+1, row, v); err != nil {
				return err
			}
		}
	}

	totalRow := len(records) + 3
	if err := setCell(f, 4, totalRow, "Total Pending"); err != nil {
		return err
	}
	if err := setCell(f, 5, totalRow, ledger.TotalPending(records).InexactFloat64()); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(Sheet, cell, value); err != nil {
		return fmt.Errorf("setting %s: %w", cell, err)
	}
	return nil
}
