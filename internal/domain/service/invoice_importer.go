package service

import (
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// ImportedInvoiceRow is one parsed row of a billing workbook. Customers are
// referenced by name in the export; resolution to an ID happens later.
type ImportedInvoiceRow struct {
	Row          int
	Number       string
	CustomerName string
	IssueDate    time.Time
	GrandTotal   decimal.Decimal
}

// InvoiceImporter parses a billing workbook into invoice rows. Rows that
// fail to parse are reported as messages, never abort the rest of the sheet.
type InvoiceImporter interface {
	Parse(workbook io.Reader) (rows []*ImportedInvoiceRow, rowErrors []string, err error)
}
