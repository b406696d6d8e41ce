package procurement

import (
	"context"
	"fmt"
	"time"

	"github.com/projops/backend/internal/domain/procurement"
	"github.com/projops/backend/internal/domain/shared"
	"github.com/projops/backend/internal/domain/shared/valueobject"
	"github.com/projops/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
)

// PurchaseOrderService manages purchase orders and their milestones
type PurchaseOrderService struct {
	poRepo procurement.PurchaseOrderRepository
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(poRepo procurement.PurchaseOrderRepository) *PurchaseOrderService {
	return &PurchaseOrderService{poRepo: poRepo}
}

// CreatePurchaseOrderRequest carries the attributes of a new purchase order
type CreatePurchaseOrderRequest struct {
	Number         string
	Title          string
	VendorName     string
	ApprovedAmount decimal.Decimal
	Currency       string
	IssuedAt       *time.Time
	Remarks        string
}

// CreatePurchaseOrder creates a purchase order. The number must be unique
// within the tenant.
func (s *PurchaseOrderService) CreatePurchaseOrder(
	ctx context.Context,
	principal shared.Principal,
	req CreatePurchaseOrderRequest,
) (*procurement.PurchaseOrder, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase_order", "create")
	defer span.End()

	telemetry.SetAttributes(span,
		telemetry.SpanAttrPONumber, req.Number,
		telemetry.SpanAttrAmount, req.ApprovedAmount.String(),
		telemetry.SpanAttrCurrency, req.Currency,
	)

	exists, err := s.poRepo.ExistsByNumber(ctx, principal.TenantID, req.Number)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to check purchase order number: %w", err)
	}
	if exists {
		err := shared.NewDomainError("PO_NUMBER_EXISTS", "A purchase order with this number already exists")
		telemetry.RecordError(span, err)
		return nil, err
	}

	amount, err := valueobject.NewMoney(req.ApprovedAmount, valueobject.Currency(req.Currency))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	po, err := procurement.NewPurchaseOrder(
		principal.TenantID,
		req.Number,
		req.Title,
		req.VendorName,
		amount,
		req.IssuedAt,
		req.Remarks,
	)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.poRepo.Save(ctx, po); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save purchase order: %w", err)
	}

	return po, nil
}

// GetPurchaseOrder resolves a purchase order by its number
func (s *PurchaseOrderService) GetPurchaseOrder(
	ctx context.Context,
	principal shared.Principal,
	number string,
) (*procurement.PurchaseOrder, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase_order", "get")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrPONumber, number)

	po, err := s.poRepo.FindByNumber(ctx, principal.TenantID, number)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to find purchase order: %w", err)
	}
	if po == nil {
		err := shared.ErrNotFound
		telemetry.RecordError(span, err)
		return nil, err
	}

	return po, nil
}

// ListPurchaseOrders returns a page of purchase orders
func (s *PurchaseOrderService) ListPurchaseOrders(
	ctx context.Context,
	principal shared.Principal,
	filter shared.Filter,
) (*shared.Paginated[procurement.PurchaseOrder], error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase_order", "list")
	defer span.End()

	orders, err := s.poRepo.FindAll(ctx, principal.TenantID, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to list purchase orders: %w", err)
	}

	total, err := s.poRepo.Count(ctx, principal.TenantID, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to count purchase orders: %w", err)
	}

	page := shared.NewPaginated(orders, total, filter.Page, filter.PageSize)
	return &page, nil
}

// CreateMilestoneRequest carries the attributes of a new milestone
type CreateMilestoneRequest struct {
	PONumber     string
	Name         string
	Amount       decimal.Decimal
	DurationDays *int
	DueDate      *time.Time
}

// CreateMilestone adds a milestone to a purchase order. The milestone
// inherits the order's currency; its name must be unique within the order.
func (s *PurchaseOrderService) CreateMilestone(
	ctx context.Context,
	principal shared.Principal,
	req CreateMilestoneRequest,
) (*procurement.Milestone, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase_order", "create_milestone")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrPONumber, req.PONumber,
		telemetry.SpanAttrAmount, req.Amount.String(),
	)

	po, err := s.poRepo.FindByNumber(ctx, principal.TenantID, req.PONumber)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to find purchase order: %w", err)
	}
	if po == nil {
		err := shared.ErrNotFound
		telemetry.RecordError(span, err)
		return nil, err
	}

	existing, err := s.poRepo.FindMilestoneByName(ctx, principal.TenantID, po.ID, req.Name)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to check milestone name: %w", err)
	}
	if existing != nil {
		err := shared.NewDomainError("MILESTONE_NAME_EXISTS", "A milestone with this name already exists on the purchase order")
		telemetry.RecordError(span, err)
		return nil, err
	}

	amount, err := valueobject.NewMoney(req.Amount, po.Currency)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	milestone, err := procurement.NewMilestone(po, req.Name, amount, req.DurationDays, req.DueDate)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.poRepo.SaveMilestone(ctx, milestone); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save milestone: %w", err)
	}

	return milestone, nil
}
