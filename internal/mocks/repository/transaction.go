package repository

import (
	"context"

	"rutero/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockRepositoryFactory hands out the repositories configured on its fields,
// standing in for a transaction-bound factory.
type MockRepositoryFactory struct {
	DispatchRepo   repository.DispatchRepository
	AssignmentRepo repository.AssignmentRepository
	InvoiceRepo    repository.InvoiceRepository
}

func (f *MockRepositoryFactory) NewDispatchRepository() repository.DispatchRepository {
	return f.DispatchRepo
}

func (f *MockRepositoryFactory) NewAssignmentRepository() repository.AssignmentRepository {
	return f.AssignmentRepo
}

func (f *MockRepositoryFactory) NewInvoiceRepository() repository.InvoiceRepository {
	return f.InvoiceRepo
}

// MockTransactionManager is a mock implementation of repository.TransactionManager.
// When the configured expectation returns nil, the callback runs against
// Factory so tests exercise the transactional body.
type MockTransactionManager struct {
	mock.Mock

	Factory repository.RepositoryFactory
}

// NewMockTransactionManager creates a new mock and registers expectation checks
func NewMockTransactionManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTransactionManager {
	m := &MockTransactionManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}

	if m.Factory != nil {
		return fn(m.Factory)
	}

	return nil
}
