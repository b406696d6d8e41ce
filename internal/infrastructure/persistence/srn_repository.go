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

// GormSRNRepository implements SRNRepository using GORM
type GormSRNRepository struct {
	db *gorm.DB
}

// NewGormSRNRepository creates a new GormSRNRepository
func NewGormSRNRepository(db *gorm.DB) *GormSRNRepository {
	return &GormSRNRepository{db: db}
}

// FindByID finds a receipt note by ID for a tenant
func (r *GormSRNRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*procurement.SRN, error) {
	var model models.SRNModel
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

// FindByPurchaseOrder lists the receipt notes of a purchase order
func (r *GormSRNRepository) FindByPurchaseOrder(ctx context.Context, tenantID, purchaseOrderID uuid.UUID, filter shared.Filter) ([]procurement.SRN, error) {
	var srnModels []models.SRNModel
	query := r.db.WithContext(ctx).Model(&models.SRNModel{}).
		Where("tenant_id = ? AND purchase_order_id = ?", tenantID, purchaseOrderID)
	query = applyFilter(query, filter, "number", "remarks")

	if err := query.Find(&srnModels).Error; err != nil {
		return nil, err
	}

	srns := make([]procurement.SRN, len(srnModels))
	for i, model := range srnModels {
		srns[i] = *model.ToDomain()
	}
	return srns, nil
}

// Save creates or updates a receipt note
func (r *GormSRNRepository) Save(ctx context.Context, s *procurement.SRN) error {
	var model models.SRNModel
	model.FromDomain(s)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return fmt.Errorf("failed to save receipt note: %w", err)
	}
	return nil
}

// Delete removes a receipt note
func (r *GormSRNRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.SRNModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SumActiveAmount recomputes the received total of a pool from source rows
// with the same narrowing and exclusion semantics as consumptions.
func (r *GormSRNRepository) SumActiveAmount(ctx context.Context, tenantID, purchaseOrderID uuid.UUID, milestoneID *uuid.UUID, excludeID *uuid.UUID) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).Model(&models.SRNModel{}).
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
		return decimal.Zero, fmt.Errorf("failed to sum receipt notes: %w", err)
	}
	return result.Total, nil
}
