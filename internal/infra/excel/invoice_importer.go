// Package excel parses billing workbooks exported by the invoicing system.
package excel

import (
	"fmt"
	"io"
	"strings"
	"time"

	"rutero/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Expected column layout of the billing export, after one header row:
// A number, B customer name, C issue date, D grand total.
const (
	colNumber = iota
	colCustomerName
	colIssueDate
	colGrandTotal
	minColumns = colGrandTotal + 1
)

var issueDateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"01-02-06",
}

type excelInvoiceImporter struct{}

// NewInvoiceImporter creates an InvoiceImporter for xlsx billing exports.
func NewInvoiceImporter() service.InvoiceImporter {
	return &excelInvoiceImporter{}
}

// Parse reads the first sheet of the workbook. Malformed rows are collected
// as messages; only a workbook-level failure aborts.
func (i *excelInvoiceImporter) Parse(workbook io.Reader) ([]*service.ImportedInvoiceRow, []string, error) {
	file, err := excelize.OpenReader(workbook)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open workbook")
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errors.New("workbook has no sheets")
	}

	cells, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to read workbook rows")
	}

	rows := make([]*service.ImportedInvoiceRow, 0, len(cells))
	var rowErrors []string

	for idx, cols := range cells {
		rowNumber := idx + 1
		if idx == 0 {
			// Header row.
			continue
		}
		if isBlankRow(cols) {
			continue
		}
		if len(cols) < minColumns {
			rowErrors = append(rowErrors, fmt.Sprintf("fila %d: columnas incompletas", rowNumber))

			continue
		}

		number := strings.TrimSpace(cols[colNumber])
		customerName := strings.TrimSpace(cols[colCustomerName])
		if number == "" || customerName == "" {
			rowErrors = append(rowErrors, fmt.Sprintf("fila %d: número o cliente vacío", rowNumber))

			continue
		}

		issueDate, err := parseIssueDate(strings.TrimSpace(cols[colIssueDate]))
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("fila %d: fecha inválida %q", rowNumber, cols[colIssueDate]))

			continue
		}

		grandTotal, err := decimal.NewFromString(normalizeAmount(cols[colGrandTotal]))
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("fila %d: monto inválido %q", rowNumber, cols[colGrandTotal]))

			continue
		}
		if grandTotal.IsNegative() {
			rowErrors = append(rowErrors, fmt.Sprintf("fila %d: monto negativo %q", rowNumber, cols[colGrandTotal]))

			continue
		}

		rows = append(rows, &service.ImportedInvoiceRow{
			Row:          rowNumber,
			Number:       number,
			CustomerName: customerName,
			IssueDate:    issueDate,
			GrandTotal:   grandTotal,
		})
	}

	return rows, rowErrors, nil
}

func isBlankRow(cols []string) bool {
	for _, col := range cols {
		if strings.TrimSpace(col) != "" {
			return false
		}
	}

	return true
}

func parseIssueDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New("empty date")
	}

	for _, layout := range issueDateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, errors.Errorf("unrecognized date format: %s", raw)
}

// normalizeAmount strips currency symbols and thousands separators the
// billing system sprinkles into the export.
func normalizeAmount(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	return strings.TrimSpace(cleaned)
}
