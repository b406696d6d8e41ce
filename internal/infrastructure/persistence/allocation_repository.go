package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/projops/backend/internal/domain/budget"
	"github.com/projops/backend/internal/domain/shared"
	"github.com/projops/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormAllocationRepository implements AllocationRepository using GORM
type GormAllocationRepository struct {
	db *gorm.DB
}

// NewGormAllocationRepository creates a new GormAllocationRepository
func NewGormAllocationRepository(db *gorm.DB) *GormAllocationRepository {
	return &GormAllocationRepository{db: db}
}

// FindByID finds an allocation by ID for a tenant
func (r *GormAllocationRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*budget.Allocation, error) {
	var model models.AllocationModel
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

// FindByBudgetLine lists the allocations of a budget line
func (r *GormAllocationRepository) FindByBudgetLine(ctx context.Context, tenantID uuid.UUID, lineKey string, filter shared.Filter) ([]budget.Allocation, error) {
	var allocationModels []models.AllocationModel
	query := r.db.WithContext(ctx).Model(&models.AllocationModel{}).
		Where("tenant_id = ? AND budget_line_key = ?", tenantID, lineKey)
	query = applyFilter(query, filter, "vendor_name", "system_name")

	if err := query.Find(&allocationModels).Error; err != nil {
		return nil, err
	}

	allocations := make([]budget.Allocation, len(allocationModels))
	for i, model := range allocationModels {
		allocations[i] = *model.ToDomain()
	}
	return allocations, nil
}

// Save creates or updates an allocation
func (r *GormAllocationRepository) Save(ctx context.Context, a *budget.Allocation) error {
	var model models.AllocationModel
	model.FromDomain(a)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return fmt.Errorf("failed to save allocation: %w", err)
	}
	return nil
}

// Delete removes an allocation
func (r *GormAllocationRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.AllocationModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SumActiveAmount recomputes the utilized total of a budget line from
// source rows, excluding excludeID when an update must not count the row
// being edited.
func (r *GormAllocationRepository) SumActiveAmount(ctx context.Context, tenantID uuid.UUID, lineKey string, excludeID *uuid.UUID) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).Model(&models.AllocationModel{}).
		Where("tenant_id = ? AND budget_line_key = ?", tenantID, lineKey)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var result struct {
		Total decimal.Decimal
	}
	if err := query.Select("COALESCE(SUM(amount), 0) AS total").Scan(&result).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum allocations: %w", err)
	}
	return result.Total, nil
}
