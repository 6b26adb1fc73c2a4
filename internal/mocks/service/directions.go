package service

import (
	"context"

	"rutero/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockDirectionsService is a mock implementation of service.DirectionsService
type MockDirectionsService struct {
	mock.Mock
}

// NewMockDirectionsService creates a new mock and registers expectation checks
func NewMockDirectionsService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDirectionsService {
	m := &MockDirectionsService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockDirectionsService) Route(ctx context.Context, origin service.Coordinate, waypoints []service.Coordinate) (*service.PlannedRoute, error) {
	args := m.Called(ctx, origin, waypoints)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.PlannedRoute), args.Error(1)
}
