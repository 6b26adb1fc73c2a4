// Package service provides hand-written testify mocks for the domain
// service interfaces.
package service

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// MockReceiptStorage is a mock implementation of service.ReceiptStorage
type MockReceiptStorage struct {
	mock.Mock
}

// NewMockReceiptStorage creates a new mock and registers expectation checks
func NewMockReceiptStorage(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockReceiptStorage {
	m := &MockReceiptStorage{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockReceiptStorage) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, filename, contentType, body)

	return args.String(0), args.Error(1)
}
