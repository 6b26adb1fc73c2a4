package repository

import (
	"context"

	"rutero/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockLocationRepository is a mock implementation of repository.LocationRepository
type MockLocationRepository struct {
	mock.Mock
}

// NewMockLocationRepository creates a new mock and registers expectation checks
func NewMockLocationRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLocationRepository {
	m := &MockLocationRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockLocationRepository) AppendSample(ctx context.Context, sample *entity.LocationSample) error {
	args := m.Called(ctx, sample)

	return args.Error(0)
}

func (m *MockLocationRepository) ListSamplesByDispatch(ctx context.Context, dispatchID uuid.UUID) ([]*entity.LocationSample, error) {
	args := m.Called(ctx, dispatchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.LocationSample), args.Error(1)
}

func (m *MockLocationRepository) UpsertLastKnown(ctx context.Context, location *entity.LastKnownLocation) error {
	args := m.Called(ctx, location)

	return args.Error(0)
}

func (m *MockLocationRepository) ListLastKnown(ctx context.Context) ([]*entity.LastKnownLocation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.LastKnownLocation), args.Error(1)
}
