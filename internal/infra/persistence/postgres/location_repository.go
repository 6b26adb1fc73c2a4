package postgres

import (
	"context"

	"rutero/internal/domain/entity"
	"rutero/internal/domain/repository"
	"rutero/internal/errors"
	"rutero/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type locationRepository struct {
	db *gorm.DB
}

// NewLocationRepository creates a new instance of LocationRepository.
func NewLocationRepository(db *gorm.DB) repository.LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) AppendSample(ctx context.Context, sample *entity.LocationSample) error {
	sampleModel := &model.LocationSampleModel{
		ID:         sample.ID,
		DriverID:   sample.DriverID,
		DispatchID: sample.DispatchID,
		Latitude:   sample.Latitude,
		Longitude:  sample.Longitude,
		RecordedAt: sample.RecordedAt,
	}
	if err := r.db.WithContext(ctx).Create(sampleModel).Error; err != nil {
		return errors.Wrap(err, "failed to append location sample")
	}
	sample.ID = sampleModel.ID

	return nil
}

func (r *locationRepository) ListSamplesByDispatch(ctx context.Context, dispatchID uuid.UUID) ([]*entity.LocationSample, error) {
	var sampleModels []model.LocationSampleModel
	if err := r.db.WithContext(ctx).
		Where("dispatch_id = ?", dispatchID).
		Order("recorded_at asc").
		Find(&sampleModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list location samples by dispatch")
	}

	samples := make([]*entity.LocationSample, 0, len(sampleModels))
	for i := range sampleModels {
		sampleModel := &sampleModels[i]
		samples = append(samples, &entity.LocationSample{
			ID:         sampleModel.ID,
			DriverID:   sampleModel.DriverID,
			DispatchID: sampleModel.DispatchID,
			Latitude:   sampleModel.Latitude,
			Longitude:  sampleModel.Longitude,
			RecordedAt: sampleModel.RecordedAt,
		})
	}

	return samples, nil
}

func (r *locationRepository) UpsertLastKnown(ctx context.Context, location *entity.LastKnownLocation) error {
	locationModel := &model.LastKnownLocationModel{
		DriverID:   location.DriverID,
		Latitude:   location.Latitude,
		Longitude:  location.Longitude,
		RecordedAt: location.RecordedAt,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "driver_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"latitude", "longitude", "recorded_at", "updated_at"}),
		}).
		Create(locationModel).Error; err != nil {
		return errors.Wrap(err, "failed to upsert last known location")
	}

	return nil
}

func (r *locationRepository) ListLastKnown(ctx context.Context) ([]*entity.LastKnownLocation, error) {
	var locationModels []model.LastKnownLocationModel
	if err := r.db.WithContext(ctx).
		Order("recorded_at desc").
		Find(&locationModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list last known locations")
	}

	locations := make([]*entity.LastKnownLocation, 0, len(locationModels))
	for i := range locationModels {
		locationModel := &locationModels[i]
		locations = append(locations, &entity.LastKnownLocation{
			DriverID:   locationModel.DriverID,
			Latitude:   locationModel.Latitude,
			Longitude:  locationModel.Longitude,
			RecordedAt: locationModel.RecordedAt,
		})
	}

	return locations, nil
}
