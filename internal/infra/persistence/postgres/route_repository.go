package postgres

import (
	"context"

	"rutero/internal/domain/entity"
	"rutero/internal/domain/repository"
	"rutero/internal/errors"
	"rutero/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type routeRepository struct {
	db *gorm.DB
}

// NewRouteRepository creates a new instance of RouteRepository.
func NewRouteRepository(db *gorm.DB) repository.RouteRepository {
	return &routeRepository{db: db}
}

func (r *routeRepository) Create(ctx context.Context, route *entity.Route) error {
	routeModel := fromRouteDomain(route)
	if err := r.db.WithContext(ctx).Create(routeModel).Error; err != nil {
		return errors.Wrap(err, "failed to create route")
	}
	route.ID = routeModel.ID
	route.CreatedAt = routeModel.CreatedAt
	route.UpdatedAt = routeModel.UpdatedAt

	return nil
}

func (r *routeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Route, error) {
	var routeModel model.RouteModel
	if err := r.db.WithContext(ctx).First(&routeModel, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRouteNotFound
		}

		return nil, errors.Wrap(err, "failed to find route by id")
	}

	return toRouteDomain(&routeModel), nil
}

func (r *routeRepository) FindAll(ctx context.Context) ([]*entity.Route, error) {
	var routeModels []model.RouteModel
	if err := r.db.WithContext(ctx).Order("description asc").Find(&routeModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find routes")
	}

	routes := make([]*entity.Route, 0, len(routeModels))
	for i := range routeModels {
		routes = append(routes, toRouteDomain(&routeModels[i]))
	}

	return routes, nil
}

func (r *routeRepository) Update(ctx context.Context, route *entity.Route) error {
	result := r.db.WithContext(ctx).
		Model(&model.RouteModel{}).
		Where("id = ?", route.ID).
		Updates(map[string]any{
			"description": route.Description,
			"geofence":    route.Geofence,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update route")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRouteNotFound
	}

	return nil
}

func (r *routeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	var customers int64
	if err := r.db.WithContext(ctx).
		Model(&model.CustomerModel{}).
		Where("route_id = ?", id).
		Count(&customers).Error; err != nil {
		return errors.Wrap(err, "failed to count customers of route")
	}
	if customers > 0 {
		return repository.ErrRouteReferenced
	}

	var dispatches int64
	if err := r.db.WithContext(ctx).
		Model(&model.DispatchModel{}).
		Where("route_id = ?", id).
		Count(&dispatches).Error; err != nil {
		return errors.Wrap(err, "failed to count dispatches of route")
	}
	if dispatches > 0 {
		return repository.ErrRouteReferenced
	}

	result := r.db.WithContext(ctx).Delete(&model.RouteModel{}, "id = ?", id)
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return repository.ErrRouteReferenced
		}

		return errors.Wrap(result.Error, "failed to delete route")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRouteNotFound
	}

	return nil
}

func toRouteDomain(routeModel *model.RouteModel) *entity.Route {
	return &entity.Route{
		ID:          routeModel.ID,
		Description: routeModel.Description,
		Geofence:    routeModel.Geofence,
		CreatedAt:   routeModel.CreatedAt,
		UpdatedAt:   routeModel.UpdatedAt,
	}
}

func fromRouteDomain(route *entity.Route) *model.RouteModel {
	return &model.RouteModel{
		ID:          route.ID,
		Description: route.Description,
		Geofence:    route.Geofence,
		CreatedAt:   route.CreatedAt,
		UpdatedAt:   route.UpdatedAt,
	}
}
