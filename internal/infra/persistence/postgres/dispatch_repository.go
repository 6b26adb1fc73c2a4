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

type dispatchRepository struct {
	db *gorm.DB
}

// NewDispatchRepository creates a new instance of DispatchRepository.
func NewDispatchRepository(db *gorm.DB) repository.DispatchRepository {
	return &dispatchRepository{db: db}
}

func (r *dispatchRepository) Create(ctx context.Context, dispatch *entity.Dispatch) error {
	dispatchModel := fromDispatchDomain(dispatch)
	if err := r.db.WithContext(ctx).Create(dispatchModel).Error; err != nil {
		return errors.Wrap(err, "failed to create dispatch")
	}
	dispatch.ID = dispatchModel.ID
	dispatch.CreatedAt = dispatchModel.CreatedAt
	dispatch.UpdatedAt = dispatchModel.UpdatedAt

	return nil
}

func (r *dispatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Dispatch, error) {
	var dispatchModel model.DispatchModel
	if err := r.db.WithContext(ctx).First(&dispatchModel, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDispatchNotFound
		}

		return nil, errors.Wrap(err, "failed to find dispatch by id")
	}

	return toDispatchDomain(&dispatchModel), nil
}

func (r *dispatchRepository) FindAll(ctx context.Context) ([]*entity.Dispatch, error) {
	var dispatchModels []model.DispatchModel
	if err := r.db.WithContext(ctx).
		Order("date desc, created_at desc").
		Find(&dispatchModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find dispatches")
	}

	dispatches := make([]*entity.Dispatch, 0, len(dispatchModels))
	for i := range dispatchModels {
		dispatches = append(dispatches, toDispatchDomain(&dispatchModels[i]))
	}

	return dispatches, nil
}

func (r *dispatchRepository) Update(ctx context.Context, dispatch *entity.Dispatch) error {
	dispatchModel := fromDispatchDomain(dispatch)
	result := r.db.WithContext(ctx).
		Model(&model.DispatchModel{}).
		Where("id = ?", dispatch.ID).
		Updates(map[string]any{
			"route_id":             dispatchModel.RouteID,
			"driver_id":            dispatchModel.DriverID,
			"helper_id":            dispatchModel.HelperID,
			"date":                 dispatchModel.Date,
			"warehouse_done":       dispatchModel.WarehouseDone,
			"delivery_done":        dispatchModel.DeliveryDone,
			"billing_done":         dispatchModel.BillingDone,
			"collections_done":     dispatchModel.CollectionsDone,
			"admin_assistant_done": dispatchModel.AdminAssistantDone,
			"admin_manager_done":   dispatchModel.AdminManagerDone,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update dispatch")
	}
	if result.RowsAffected == 0 {
		return repository.ErrDispatchNotFound
	}

	return nil
}

func (r *dispatchRepository) UpdateTotals(ctx context.Context, id uuid.UUID, totals repository.DispatchTotals) error {
	result := r.db.WithContext(ctx).
		Model(&model.DispatchModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"cash_total":   totals.Cash,
			"credit_total": totals.Credit,
			"grand_total":  totals.Grand,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update dispatch totals")
	}
	if result.RowsAffected == 0 {
		return repository.ErrDispatchNotFound
	}

	return nil
}

func (r *dispatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("dispatch_id = ?", id).
		Delete(&model.DispatchAssignmentModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete assignments of dispatch")
	}

	result := r.db.WithContext(ctx).Delete(&model.DispatchModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete dispatch")
	}
	if result.RowsAffected == 0 {
		return repository.ErrDispatchNotFound
	}

	return nil
}

func toDispatchDomain(dispatchModel *model.DispatchModel) *entity.Dispatch {
	return &entity.Dispatch{
		ID:       dispatchModel.ID,
		RouteID:  dispatchModel.RouteID,
		DriverID: dispatchModel.DriverID,
		HelperID: dispatchModel.HelperID,
		Date:     dispatchModel.Date,

		CashTotal:   dispatchModel.CashTotal,
		CreditTotal: dispatchModel.CreditTotal,
		GrandTotal:  dispatchModel.GrandTotal,

		WarehouseDone:      dispatchModel.WarehouseDone,
		DeliveryDone:       dispatchModel.DeliveryDone,
		BillingDone:        dispatchModel.BillingDone,
		CollectionsDone:    dispatchModel.CollectionsDone,
		AdminAssistantDone: dispatchModel.AdminAssistantDone,
		AdminManagerDone:   dispatchModel.AdminManagerDone,

		CreatedAt: dispatchModel.CreatedAt,
		UpdatedAt: dispatchModel.UpdatedAt,
	}
}

func fromDispatchDomain(dispatch *entity.Dispatch) *model.DispatchModel {
	return &model.DispatchModel{
		ID:       dispatch.ID,
		RouteID:  dispatch.RouteID,
		DriverID: dispatch.DriverID,
		HelperID: dispatch.HelperID,
		Date:     dispatch.Date,

		CashTotal:   dispatch.CashTotal,
		CreditTotal: dispatch.CreditTotal,
		GrandTotal:  dispatch.GrandTotal,

		WarehouseDone:      dispatch.WarehouseDone,
		DeliveryDone:       dispatch.DeliveryDone,
		BillingDone:        dispatch.BillingDone,
		CollectionsDone:    dispatch.CollectionsDone,
		AdminAssistantDone: dispatch.AdminAssistantDone,
		AdminManagerDone:   dispatch.AdminManagerDone,

		CreatedAt: dispatch.CreatedAt,
		UpdatedAt: dispatch.UpdatedAt,
	}
}
