package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"rutero/config"
	deliverycontext "rutero/internal/delivery/context"
	"rutero/internal/domain/entity"
	domainerrors "rutero/internal/domain/errors"
	"rutero/internal/domain/repository"
	"rutero/internal/domain/service"
	"rutero/internal/geo"
	"rutero/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type trackingService struct {
	dispatchRepo   repository.DispatchRepository
	assignmentRepo repository.AssignmentRepository
	locationRepo   repository.LocationRepository
	directions     service.DirectionsService
	publisher      service.EventPublisher
	config         *config.Config
	logger         *slog.Logger

	// Trip state lives server-side, keyed by driver. trips maps a driver to
	// the dispatch of its active trip; inFlight guards against a device
	// flooding positions faster than the previous write completes.
	mu       sync.Mutex
	trips    map[uuid.UUID]uuid.UUID
	inFlight map[uuid.UUID]bool
}

// TrackingServiceParams holds dependencies for TrackingService, injected by Fx.
type TrackingServiceParams struct {
	fx.In

	DispatchRepo   repository.DispatchRepository
	AssignmentRepo repository.AssignmentRepository
	LocationRepo   repository.LocationRepository
	Directions     service.DirectionsService
	Publisher      service.EventPublisher `optional:"true"`
	Config         *config.Config
	Logger         *slog.Logger
}

// NewTrackingService creates a new tracking service instance
func NewTrackingService(params TrackingServiceParams) usecase.TrackingUsecase {
	return &trackingService{
		dispatchRepo:   params.DispatchRepo,
		assignmentRepo: params.AssignmentRepo,
		locationRepo:   params.LocationRepo,
		directions:     params.Directions,
		publisher:      params.Publisher,
		config:         params.Config,
		logger:         params.Logger,
		trips:          make(map[uuid.UUID]uuid.UUID),
		inFlight:       make(map[uuid.UUID]bool),
	}
}

func (s *trackingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// StartTrip opens a trip for a driver on a dispatch. A driver has at most
// one active trip at a time.
func (s *trackingService) StartTrip(ctx context.Context, driverID, dispatchID uuid.UUID) error {
	if _, err := s.dispatchRepo.FindByID(ctx, dispatchID); err != nil {
		if errors.Is(err, repository.ErrDispatchNotFound) {
			return domainerrors.ErrDispatchNotFound
		}

		return errors.Wrap(err, "failed to find dispatch by id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, active := s.trips[driverID]; active {
		return domainerrors.ErrTripAlreadyActive
	}
	s.trips[driverID] = dispatchID

	s.log(ctx).Info("Trip started",
		slog.Any("driverID", driverID), slog.Any("dispatchID", dispatchID))

	return nil
}

// StopTrip closes the driver's active trip. Samples already in flight may
// still land on the trail; every later sample only updates the last known
// location.
func (s *trackingService) StopTrip(ctx context.Context, driverID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, active := s.trips[driverID]; !active {
		return domainerrors.ErrNoActiveTrip
	}
	delete(s.trips, driverID)

	s.log(ctx).Info("Trip stopped", slog.Any("driverID", driverID))

	return nil
}

// ClearTrip drops the driver's trip state if there is any. Used at logout,
// where stopping must succeed whether or not a trip is active.
func (s *trackingService) ClearTrip(ctx context.Context, driverID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, active := s.trips[driverID]; !active {
		return
	}
	delete(s.trips, driverID)

	s.log(ctx).Info("Trip cleared on logout", slog.Any("driverID", driverID))
}

// ActiveDispatch reports the dispatch of the driver's active trip, if any
func (s *trackingService) ActiveDispatch(driverID uuid.UUID) (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dispatchID, active := s.trips[driverID]

	return dispatchID, active
}

// RecordPosition ingests one position report. With an active trip it appends
// a trail sample and upserts the last known location; while idle it only
// upserts the last known location. A report arriving while the driver's
// previous one is still being written is dropped.
func (s *trackingService) RecordPosition(ctx context.Context, input *usecase.RecordPositionInput) error {
	s.mu.Lock()
	if s.inFlight[input.DriverID] {
		s.mu.Unlock()
		s.log(ctx).Debug("Position dropped, previous write still in flight",
			slog.Any("driverID", input.DriverID))

		return nil
	}
	s.inFlight[input.DriverID] = true
	dispatchID, active := s.trips[input.DriverID]
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, input.DriverID)
		s.mu.Unlock()
	}()

	recordedAt := input.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	if active {
		sample := &entity.LocationSample{
			ID:         uuid.New(),
			DriverID:   input.DriverID,
			DispatchID: dispatchID,
			Latitude:   input.Latitude,
			Longitude:  input.Longitude,
			RecordedAt: recordedAt,
		}
		// Best effort: a failed append is reported, never retried.
		if err := s.locationRepo.AppendSample(ctx, sample); err != nil {
			return errors.Wrap(err, "failed to append location sample")
		}
	} else if s.config.Tracking != nil && !s.config.Tracking.IdleUpdatesLastKnown {
		return nil
	}

	lastKnown := &entity.LastKnownLocation{
		DriverID:   input.DriverID,
		Latitude:   input.Latitude,
		Longitude:  input.Longitude,
		RecordedAt: recordedAt,
	}
	if err := s.locationRepo.UpsertLastKnown(ctx, lastKnown); err != nil {
		return errors.Wrap(err, "failed to upsert last known location")
	}

	s.publishPosition(ctx, input, dispatchID, recordedAt)

	return nil
}

// publishPosition feeds the realtime layer, best effort
func (s *trackingService) publishPosition(ctx context.Context, input *usecase.RecordPositionInput, dispatchID uuid.UUID, recordedAt time.Time) {
	if s.publisher == nil {
		return
	}

	event := &service.PositionEvent{
		DriverID:   input.DriverID,
		DispatchID: dispatchID,
		Latitude:   input.Latitude,
		Longitude:  input.Longitude,
		RecordedAt: recordedAt,
	}
	if err := s.publisher.PublishPositionEvent(ctx, event); err != nil {
		s.log(ctx).Warn("Failed to publish position event",
			slog.Any("driverID", input.DriverID), slog.Any("error", err))
	}
}

// BuildTrail reconstructs the recorded trail of a dispatch, ordered by
// recording time ascending. An empty trail is valid.
func (s *trackingService) BuildTrail(ctx context.Context, dispatchID uuid.UUID) ([]usecase.TrailPoint, error) {
	samples, err := s.locationRepo.ListSamplesByDispatch(ctx, dispatchID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list samples by dispatch")
	}

	trail := make([]usecase.TrailPoint, 0, len(samples))
	for _, sample := range samples {
		trail = append(trail, usecase.TrailPoint{
			Latitude:   sample.Latitude,
			Longitude:  sample.Longitude,
			RecordedAt: sample.RecordedAt,
		})
	}

	return trail, nil
}

// PlannedRoute resolves the depot-to-delivery-points route of a dispatch
// through the external directions service. Delivery points come from the
// customers of the dispatch's assignments: their registered location when
// available, the centroid of their geofence otherwise.
func (s *trackingService) PlannedRoute(ctx context.Context, dispatchID uuid.UUID) (*service.PlannedRoute, error) {
	assignments, err := s.assignmentRepo.FindByDispatch(ctx, dispatchID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list assignments by dispatch")
	}

	waypoints := make([]service.Coordinate, 0, len(assignments))
	seen := make(map[uuid.UUID]struct{}, len(assignments))
	for _, assignment := range assignments {
		customer := assignment.Customer
		if customer == nil {
			continue
		}
		if _, dup := seen[customer.ID]; dup {
			continue
		}
		seen[customer.ID] = struct{}{}

		if point, ok := deliveryPoint(customer); ok {
			waypoints = append(waypoints, point)
		}
	}

	origin := service.Coordinate{}
	if s.config.Tracking != nil {
		origin = service.Coordinate{
			Lon: s.config.Tracking.DepotLongitude,
			Lat: s.config.Tracking.DepotLatitude,
		}
	}

	route, err := s.directions.Route(ctx, origin, waypoints)
	if err != nil {
		s.log(ctx).Warn("Directions service failed",
			slog.Any("dispatchID", dispatchID), slog.Any("error", err))

		return nil, domainerrors.ErrDirectionsUnavailable
	}

	return route, nil
}

// deliveryPoint picks the map point for one customer
func deliveryPoint(customer *entity.Customer) (service.Coordinate, bool) {
	if customer.HasLocation() {
		return service.Coordinate{Lon: *customer.Longitude, Lat: *customer.Latitude}, true
	}

	if customer.HasGeofence() {
		polygons, err := geo.ParsePolygons(customer.Geofence)
		if err == nil && len(polygons) > 0 && len(polygons[0]) > 0 {
			centroid := geo.Centroid(polygons[0][0])

			return service.Coordinate{Lon: centroid.Lon(), Lat: centroid.Lat()}, true
		}
	}

	return service.Coordinate{}, false
}

// ListDrivers retrieves the last known position of every driver
func (s *trackingService) ListDrivers(ctx context.Context) ([]*entity.LastKnownLocation, error) {
	locations, err := s.locationRepo.ListLastKnown(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list last known locations")
	}

	return locations, nil
}
