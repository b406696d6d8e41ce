package procurement

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/projops/backend/internal/domain/procurement"
	"github.com/projops/backend/internal/domain/shared"
	"github.com/projops/backend/internal/domain/shared/valueobject"
	"github.com/projops/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
)

// ConsumptionService records consumption draw-downs against purchase
// orders using the validate-then-commit ledger discipline.
type ConsumptionService struct {
	poRepo          procurement.PurchaseOrderRepository
	consumptionRepo procurement.ConsumptionRepository
}

// NewConsumptionService creates a new ConsumptionService
func NewConsumptionService(
	poRepo procurement.PurchaseOrderRepository,
	consumptionRepo procurement.ConsumptionRepository,
) *ConsumptionService {
	return &ConsumptionService{
		poRepo:          poRepo,
		consumptionRepo: consumptionRepo,
	}
}

// AddConsumptionRequest carries the attributes of a new consumption
type AddConsumptionRequest struct {
	PONumber        string
	MilestoneName   string // empty means un-narrowed
	Amount          decimal.Decimal
	Currency        string
	Type            procurement.ConsumptionType
	WorkDescription string
	WorkPeriod      string
}

// AddConsumption validates and persists a consumption draw-down:
// resolve scope, resolve narrowing, match currency, recompute the active
// sum from source rows, admit against capacity, then insert.
func (s *ConsumptionService) AddConsumption(
	ctx context.Context,
	principal shared.Principal,
	req AddConsumptionRequest,
) (*procurement.Consumption, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "consumption", "add")
	defer span.End()

	telemetry.SetAttributes(span,
		telemetry.SpanAttrPONumber, req.PONumber,
		telemetry.SpanAttrAmount, req.Amount.String(),
		telemetry.SpanAttrCurrency, req.Currency,
	)

	po, milestone, err := resolveScope(ctx, s.poRepo, principal.TenantID, req.PONumber, req.MilestoneName)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if valueobject.Currency(req.Currency) != po.Currency {
		telemetry.RecordError(span, shared.ErrCurrencyMismatch)
		return nil, shared.ErrCurrencyMismatch
	}

	amount, err := valueobject.NewMoney(req.Amount, po.Currency)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var milestoneID *uuid.UUID
	if milestone != nil {
		milestoneID = &milestone.ID
		telemetry.SetAttribute(span, telemetry.SpanAttrMilestoneID, milestone.ID.String())
	}

	existing, err := s.consumptionRepo.SumActiveAmount(ctx, principal.TenantID, po.ID, milestoneID, nil)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to sum active consumptions: %w", err)
	}

	capacity, currency := scopeCapacity(po, milestone)
	if err := checkAdmission(po.Number, req.MilestoneName, amount.Amount(), capacity, existing, currency); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	consumption, err := procurement.NewConsumption(
		principal.TenantID,
		po.ID,
		milestoneID,
		amount,
		req.Type,
		req.WorkDescription,
		req.WorkPeriod,
	)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	consumption.RecordedBy = principal.Editor()

	if err := s.consumptionRepo.Save(ctx, consumption); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save consumption: %w", err)
	}

	return consumption, nil
}

// UpdateConsumptionRequest carries the updatable attributes of a consumption
type UpdateConsumptionRequest struct {
	MilestoneName   string // empty means un-narrowed
	Amount          decimal.Decimal
	Type            procurement.ConsumptionType
	WorkDescription string
	WorkPeriod      string
}

// UpdateConsumption revalidates an edited consumption against the sum of
// all other active draw-downs in the target scope, so the row's own prior
// amount never counts against its new amount.
func (s *ConsumptionService) UpdateConsumption(
	ctx context.Context,
	principal shared.Principal,
	id uuid.UUID,
	req UpdateConsumptionRequest,
) (*procurement.Consumption, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "consumption", "update")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrDrawDownID, id.String())

	consumption, err := s.consumptionRepo.FindByID(ctx, principal.TenantID, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to find consumption: %w", err)
	}
	if consumption == nil {
		telemetry.RecordError(span, shared.ErrNotFound)
		return nil, shared.ErrNotFound
	}

	po, err := s.poRepo.FindByID(ctx, principal.TenantID, consumption.PurchaseOrderID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to find purchase order: %w", err)
	}
	if po == nil {
		telemetry.RecordError(span, ErrScopeNotFound)
		return nil, ErrScopeNotFound
	}

	var milestone *procurement.Milestone
	var milestoneID *uuid.UUID
	if req.MilestoneName != "" {
		milestone, err = s.poRepo.FindMilestoneByName(ctx, principal.TenantID, po.ID, req.MilestoneName)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("failed to find milestone: %w", err)
		}
		if milestone == nil {
			telemetry.RecordError(span, ErrNarrowingNotFound)
			return nil, ErrNarrowingNotFound
		}
		milestoneID = &milestone.ID
	}

	amount, err := valueobject.NewMoney(req.Amount, po.Currency)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if !amount.IsPositive() {
		err := shared.NewDomainError("INVALID_AMOUNT", "Consumption amount must be positive")
		telemetry.RecordError(span, err)
		return nil, err
	}

	if req.Type != "" && !req.Type.IsValid() {
		err := shared.NewDomainError("INVALID_CONSUMPTION_TYPE", "Consumption type is not valid")
		telemetry.RecordError(span, err)
		return nil, err
	}

	existing, err := s.consumptionRepo.SumActiveAmount(ctx, principal.TenantID, po.ID, milestoneID, &id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to sum active consumptions: %w", err)
	}

	capacity, currency := scopeCapacity(po, milestone)
	if err := checkAdmission(po.Number, req.MilestoneName, amount.Amount(), capacity, existing, currency); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	consumption.MilestoneID = milestoneID
	consumption.Amount = amount.Amount()
	if req.Type != "" {
		consumption.Type = req.Type
	}
	consumption.WorkDescription = req.WorkDescription
	consumption.WorkPeriod = req.WorkPeriod
	consumption.RecordedBy = principal.Editor()
	consumption.Touch()

	if err := s.consumptionRepo.Save(ctx, consumption); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save consumption: %w", err)
	}

	return consumption, nil
}

// DeleteConsumption removes a consumption draw-down, releasing its amount
// back to the scope on the next recompute.
func (s *ConsumptionService) DeleteConsumption(
	ctx context.Context,
	principal shared.Principal,
	id uuid.UUID,
) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "consumption", "delete")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrDrawDownID, id.String())

	consumption, err := s.consumptionRepo.FindByID(ctx, principal.TenantID, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to find consumption: %w", err)
	}
	if consumption == nil {
		telemetry.RecordError(span, shared.ErrNotFound)
		return shared.ErrNotFound
	}

	if err := s.consumptionRepo.Delete(ctx, principal.TenantID, id); err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to delete consumption: %w", err)
	}

	return nil
}

// ListConsumptions returns the consumptions of a purchase order
func (s *ConsumptionService) ListConsumptions(
	ctx context.Context,
	principal shared.Principal,
	poNumber string,
	filter shared.Filter,
) ([]procurement.Consumption, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "consumption", "list")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrPONumber, poNumber)

	po, _, err := resolveScope(ctx, s.poRepo, principal.TenantID, poNumber, "")
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	consumptions, err := s.consumptionRepo.FindByPurchaseOrder(ctx, principal.TenantID, po.ID, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to list consumptions: %w", err)
	}

	return consumptions, nil
}
