package repository

import (
	"context"

	"rutero/internal/domain/entity"
	"rutero/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockDispatchRepository is a mock implementation of repository.DispatchRepository
type MockDispatchRepository struct {
	mock.Mock
}

// NewMockDispatchRepository creates a new mock and registers expectation checks
func NewMockDispatchRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDispatchRepository {
	m := &MockDispatchRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockDispatchRepository) Create(ctx context.Context, dispatch *entity.Dispatch) error {
	args := m.Called(ctx, dispatch)

	return args.Error(0)
}

func (m *MockDispatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Dispatch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Dispatch), args.Error(1)
}

func (m *MockDispatchRepository) FindAll(ctx context.Context) ([]*entity.Dispatch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Dispatch), args.Error(1)
}

func (m *MockDispatchRepository) Update(ctx context.Context, dispatch *entity.Dispatch) error {
	args := m.Called(ctx, dispatch)

	return args.Error(0)
}

func (m *MockDispatchRepository) UpdateTotals(ctx context.Context, id uuid.UUID, totals repository.DispatchTotals) error {
	args := m.Called(ctx, id, totals)

	return args.Error(0)
}

func (m *MockDispatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}
