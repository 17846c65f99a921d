// Package export projects a parsed statement into row-oriented tabular
// formats for downstream reporting. It is a consumer of the statement
// package only; extraction correctness does not depend on it.
package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"github.com/rmuktader/ccparse/internal/statement"
)

// Record is one exported transaction row. Dates are rendered as ISO
// calendar dates and the amount as an exact decimal string.
type Record struct {
	ActivityDate    string `csv:"activity_date"`
	PostDate        string `csv:"post_date"`
	ReferenceNumber string `csv:"reference_number"`
	Description     string `csv:"description"`
	Amount          string `csv:"amount"`
}

// Records projects the statement's transactions into export rows, one per
// transaction, preserving document order.
func Records(st *statement.Statement) []Record {
	recs := make([]Record, 0, len(st.Transactions))
	for _, t := range st.Transactions {
		recs = append(recs, Record{
			ActivityDate:    t.ActivityDate.String(),
			PostDate:        t.PostDate.String(),
			ReferenceNumber: t.ReferenceNumber,
			Description:     t.Description,
			Amount:          t.Amount.String(),
		})
	}
	return recs
}

// WriteCSV writes the transaction table as CSV with a header row.
func WriteCSV(st *statement.Statement, w io.Writer) error {
	if err := gocsv.Marshal(Records(st), w); err != nil {
		return fmt.Errorf("WriteCSV: %w", err)
	}
	return nil
}

var xlsxHeader = []interface{}{
	"activity_date", "post_date", "reference_number", "description", "amount",
}

// WriteXLSX writes the transaction table as a single-sheet XLSX workbook.
func WriteXLSX(st *statement.Statement, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &xlsxHeader); err != nil {
		return fmt.Errorf("WriteXLSX: header: %w", err)
	}
	for i, rec := range Records(st) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("WriteXLSX: row %d: %w", i, err)
		}
		row := []interface{}{
			rec.ActivityDate, rec.PostDate, rec.ReferenceNumber, rec.Description, rec.Amount,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("WriteXLSX: row %d: %w", i, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("WriteXLSX: %w", err)
	}
	return nil
}
