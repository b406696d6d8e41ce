package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/projops/backend/internal/domain/procurement"
	"github.com/projops/backend/internal/domain/shared"
	"github.com/projops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPurchaseOrderRepository implements PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindByID finds a purchase order by ID for a tenant
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	var model models.PurchaseOrderModel
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

// FindByNumber finds a purchase order by its number for a tenant
func (r *GormPurchaseOrderRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*procurement.PurchaseOrder, error) {
	var model models.PurchaseOrderModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND number = ?", tenantID, number).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds purchase orders for a tenant with pagination and search
func (r *GormPurchaseOrderRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]procurement.PurchaseOrder, error) {
	var poModels []models.PurchaseOrderModel
	query := r.db.WithContext(ctx).Model(&models.PurchaseOrderModel{}).
		Where("tenant_id = ?", tenantID)
	query = applyFilter(query, filter, "number", "title", "vendor_name")

	if err := query.Find(&poModels).Error; err != nil {
		return nil, err
	}

	orders := make([]procurement.PurchaseOrder, len(poModels))
	for i, model := range poModels {
		orders[i] = *model.ToDomain()
	}
	return orders, nil
}

// Count counts purchase orders for a tenant matching the filter
func (r *GormPurchaseOrderRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.PurchaseOrderModel{}).
		Where("tenant_id = ?", tenantID)
	query = applySearch(query, filter, "number", "title", "vendor_name")

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByNumber checks whether a purchase order number is taken in the tenant
func (r *GormPurchaseOrderRepository) ExistsByNumber(ctx context.Context, tenantID uuid.UUID, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PurchaseOrderModel{}).
		Where("tenant_id = ? AND number = ?", tenantID, number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a purchase order
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, po *procurement.PurchaseOrder) error {
	var model models.PurchaseOrderModel
	model.FromDomain(po)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return fmt.Errorf("failed to save purchase order: %w", err)
	}
	return nil
}

// Delete removes a purchase order
func (r *GormPurchaseOrderRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.PurchaseOrderModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindMilestoneByID finds a milestone by ID for a tenant
func (r *GormPurchaseOrderRepository) FindMilestoneByID(ctx context.Context, tenantID, id uuid.UUID) (*procurement.Milestone, error) {
	var model models.MilestoneModel
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

// FindMilestoneByName finds a milestone by name within a purchase order
func (r *GormPurchaseOrderRepository) FindMilestoneByName(ctx context.Context, tenantID, purchaseOrderID uuid.UUID, name string) (*procurement.Milestone, error) {
	var model models.MilestoneModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND purchase_order_id = ? AND name = ?", tenantID, purchaseOrderID, name).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindMilestones lists the milestones of a purchase order
func (r *GormPurchaseOrderRepository) FindMilestones(ctx context.Context, tenantID, purchaseOrderID uuid.UUID) ([]procurement.Milestone, error) {
	var milestoneModels []models.MilestoneModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND purchase_order_id = ?", tenantID, purchaseOrderID).
		Order("created_at ASC").
		Find(&milestoneModels).Error; err != nil {
		return nil, err
	}

	milestones := make([]procurement.Milestone, len(milestoneModels))
	for i, model := range milestoneModels {
		milestones[i] = *model.ToDomain()
	}
	return milestones, nil
}

// SaveMilestone creates or updates a milestone
func (r *GormPurchaseOrderRepository) SaveMilestone(ctx context.Context, m *procurement.Milestone) error {
	var model models.MilestoneModel
	model.FromDomain(m)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return fmt.Errorf("failed to save milestone: %w", err)
	}
	return nil
}

// DeleteMilestone removes a milestone
func (r *GormPurchaseOrderRepository) DeleteMilestone(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.MilestoneModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
