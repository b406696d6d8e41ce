package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/projops/backend/internal/domain/procurement"
	"github.com/projops/backend/internal/domain/shared"
	"github.com/projops/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormConsumptionRepository implements ConsumptionRepository using GORM
type GormConsumptionRepository struct {
	db *gorm.DB
}

// NewGormConsumptionRepository creates a new GormConsumptionRepository
func NewGormConsumptionRepository(db *gorm.DB) *GormConsumptionRepository {
	return &GormConsumptionRepository{db: db}
}

// FindByID finds a consumption by ID for a tenant
func (r *GormConsumptionRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*procurement.Consumption, error) {
	var model models.ConsumptionModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPurchaseOrder lists the consumptions of a purchase order
func (r *GormConsumptionRepository) FindByPurchaseOrder(ctx context.Context, tenantID, purchaseOrderID uuid.UUID, filter shared.Filter) ([]procurement.Consumption, error) {
	var consumptionModels []models.ConsumptionModel
	query := r.db.WithContext(ctx).Model(&models.ConsumptionModel{}).
		Where("tenant_id = ? AND purchase_order_id = ?", tenantID, purchaseOrderID)
	query = applyFilter(query, filter, "work_description", "work_period")

	if err := query.Find(&consumptionModels).Error; err != nil {
		return nil, err
	}

	consumptions := make([]procurement.Consumption, len(consumptionModels))
	for i, model := range consumptionModels {
		consumptions[i] = *model.ToDomain()
	}
	return consumptions, nil
}

// Save creates or updates a consumption
func (r *GormConsumptionRepository) Save(ctx context.Context, c *procurement.Consumption) error {
	var model models.ConsumptionModel
	model.FromDomain(c)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return fmt.Errorf("failed to save consumption: %w", err)
	}
	return nil
}

// Delete removes a consumption
func (r *GormConsumptionRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.ConsumptionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SumActiveAmount recomputes the drawn total of a pool from source rows.
// A nil milestoneID sums only un-narrowed rows; a non-nil one sums only the
// rows narrowed to that milestone. excludeID drops the row being edited
// from the sum.
func (r *GormConsumptionRepository) SumActiveAmount(ctx context.Context, tenantID, purchaseOrderID uuid.UUID, milestoneID *uuid.UUID, excludeID *uuid.UUID) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).Model(&models.ConsumptionModel{}).
		Where("tenant_id = ? AND purchase_order_id = ?", tenantID, purchaseOrderID)

	if milestoneID != nil {
		query = query.Where("milestone_id = ?", *milestoneID)
	} else {
		query = query.Where("milestone_id IS NULL")
	}
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var result struct {
		Total decimal.Decimal
	}
	if err := query.Select("COALESCE(SUM(amount), 0) AS total").Scan(&result).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum consumptions: %w", err)
	}
	return result.Total, nil
}
