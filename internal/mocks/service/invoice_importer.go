package service

import (
	"io"

	"rutero/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockInvoiceImporter is a mock implementation of service.InvoiceImporter
type MockInvoiceImporter struct {
	mock.Mock
}

// NewMockInvoiceImporter creates a new mock and registers expectation checks
func NewMockInvoiceImporter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockInvoiceImporter {
	m := &MockInvoiceImporter{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockInvoiceImporter) Parse(workbook io.Reader) ([]*service.ImportedInvoiceRow, []string, error) {
	args := m.Called(workbook)

	var rows []*service.ImportedInvoiceRow
	if args.Get(0) != nil {
		rows = args.Get(0).([]*service.ImportedInvoiceRow)
	}

	var rowErrors []string
	if args.Get(1) != nil {
		rowErrors = args.Get(1).([]string)
	}

	return rows, rowErrors, args.Error(2)
}
