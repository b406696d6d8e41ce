package procurement

import (
	"context"

	"github.com/google/uuid"
	"github.com/projops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PurchaseOrderRepository persists purchase orders and their milestones.
type PurchaseOrderRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*PurchaseOrder, error)
	FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*PurchaseOrder, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]PurchaseOrder, error)
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsByNumber(ctx context.Context, tenantID uuid.UUID, number string) (bool, error)
	Save(ctx context.Context, po *PurchaseOrder) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	FindMilestoneByID(ctx context.Context, tenantID, id uuid.UUID) (*Milestone, error)
	FindMilestoneByName(ctx context.Context, tenantID, purchaseOrderID uuid.UUID, name string) (*Milestone, error)
	FindMilestones(ctx context.Context, tenantID, purchaseOrderID uuid.UUID) ([]Milestone, error)
	SaveMilestone(ctx context.Context, m *Milestone) error
	DeleteMilestone(ctx context.Context, tenantID, id uuid.UUID) error
}

// ConsumptionRepository persists consumption draw-downs.
//
// SumActiveAmount recomputes the drawn total from source rows: all
// consumptions of the purchase order whose narrowing matches milestoneID
// (nil matches only un-narrowed rows), excluding excludeID when an update
// path must not count the row being edited.
type ConsumptionRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Consumption, error)
	FindByPurchaseOrder(ctx context.Context, tenantID, purchaseOrderID uuid.UUID, filter shared.Filter) ([]Consumption, error)
	Save(ctx context.Context, c *Consumption) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	SumActiveAmount(ctx context.Context, tenantID, purchaseOrderID uuid.UUID, milestoneID *uuid.UUID, excludeID *uuid.UUID) (decimal.Decimal, error)
}

// SRNRepository persists receipt-note draw-downs. Sum semantics match
// ConsumptionRepository.
type SRNRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*SRN, error)
	FindByPurchaseOrder(ctx context.Context, tenantID, purchaseOrderID uuid.UUID, filter shared.Filter) ([]SRN, error)
	Save(ctx context.Context, s *SRN) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	SumActiveAmount(ctx context.Context, tenantID, purchaseOrderID uuid.UUID, milestoneID *uuid.UUID, excludeID *uuid.UUID) (decimal.Decimal, error)
}
