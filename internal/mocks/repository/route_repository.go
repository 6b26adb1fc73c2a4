package repository

import (
	"context"

	"rutero/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockRouteRepository is a mock implementation of repository.RouteRepository
type MockRouteRepository struct {
	mock.Mock
}

// NewMockRouteRepository creates a new mock and registers expectation checks
func NewMockRouteRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRouteRepository {
	m := &MockRouteRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRouteRepository) Create(ctx context.Context, route *entity.Route) error {
	args := m.Called(ctx, route)

	return args.Error(0)
}

func (m *MockRouteRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Route), args.Error(1)
}

func (m *MockRouteRepository) FindAll(ctx context.Context) ([]*entity.Route, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Route), args.Error(1)
}

func (m *MockRouteRepository) Update(ctx context.Context, route *entity.Route) error {
	args := m.Called(ctx, route)

	return args.Error(0)
}

func (m *MockRouteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}
