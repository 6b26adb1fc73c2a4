package repository

import (
	"context"

	"rutero/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAssignmentRepository is a mock implementation of repository.AssignmentRepository
type MockAssignmentRepository struct {
	mock.Mock
}

// NewMockAssignmentRepository creates a new mock and registers expectation checks
func NewMockAssignmentRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAssignmentRepository {
	m := &MockAssignmentRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAssignmentRepository) Create(ctx context.Context, assignment *entity.DispatchInvoiceAssignment) error {
	args := m.Called(ctx, assignment)

	return args.Error(0)
}

func (m *MockAssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.DispatchInvoiceAssignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.DispatchInvoiceAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindByDispatch(ctx context.Context, dispatchID uuid.UUID) ([]*entity.DispatchInvoiceAssignment, error) {
	args := m.Called(ctx, dispatchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.DispatchInvoiceAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListAssignedInvoiceIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockAssignmentRepository) Update(ctx context.Context, assignment *entity.DispatchInvoiceAssignment) error {
	args := m.Called(ctx, assignment)

	return args.Error(0)
}

func (m *MockAssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}
