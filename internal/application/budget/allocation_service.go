package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/projops/backend/internal/domain/budget"
	"github.com/projops/backend/internal/domain/ledger"
	"github.com/projops/backend/internal/domain/shared"
	"github.com/projops/backend/internal/domain/shared/valueobject"
	"github.com/projops/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
)

// AllocationService records allocation draw-downs against budget lines.
// Allocations inherit the line currency; besides the hard capacity bound
// they are checked against a ten-times-approved sanity ceiling.
type AllocationService struct {
	lineStore budget.BudgetLineStore
	allocRepo budget.AllocationRepository
	projector *BudgetLineAmountProjector
}

// NewAllocationService creates a new AllocationService
func NewAllocationService(
	lineStore budget.BudgetLineStore,
	allocRepo budget.AllocationRepository,
	projector *BudgetLineAmountProjector,
) *AllocationService {
	return &AllocationService{
		lineStore: lineStore,
		allocRepo: allocRepo,
		projector: projector,
	}
}

// AddAllocationRequest carries the attributes of a new allocation.
// Exactly one of SystemID and SystemName identifies the target system.
type AddAllocationRequest struct {
	BudgetLineKey string
	VendorName    string
	Amount        decimal.Decimal
	SystemID      *uuid.UUID
	SystemName    string
	Remarks       string
}

// resolveLine loads the current version of the line, scoped to the tenant
func (s *AllocationService) resolveLine(
	ctx context.Context,
	principal shared.Principal,
	lineKey string,
) (*budget.BudgetLine, error) {
	line, err := s.lineStore.Current(ctx, principal.TenantID, lineKey)
	if err != nil {
		return nil, err
	}
	return line, nil
}

// checkBounds applies the ceiling and capacity checks against the sum of
// all other active allocations of the line.
func (s *AllocationService) checkBounds(
	ctx context.Context,
	principal shared.Principal,
	line *budget.BudgetLine,
	requested decimal.Decimal,
	excludeID *uuid.UUID,
) error {
	if requested.GreaterThan(line.Ceiling()) {
		return &ledger.CeilingExceededError{
			ScopeKey:  line.LineKey,
			Requested: requested,
			Ceiling:   line.Ceiling(),
		}
	}

	existing, err := s.allocRepo.SumActiveAmount(ctx, principal.TenantID, line.LineKey, excludeID)
	if err != nil {
		return fmt.Errorf("failed to sum active allocations: %w", err)
	}

	balance := ledger.NewBalance(line.ApprovedAmount, existing, line.Currency)
	if !balance.Admits(requested) {
		return ledger.NewCapacityExceededError(line.LineKey, "", requested, balance)
	}
	return nil
}

// AddAllocation validates and persists an allocation, then refreshes the
// line's derived amounts through the projector.
func (s *AllocationService) AddAllocation(
	ctx context.Context,
	principal shared.Principal,
	req AddAllocationRequest,
) (*budget.Allocation, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "allocation", "add")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrBudgetLineKey, req.BudgetLineKey,
		telemetry.SpanAttrVendorName, req.VendorName,
		telemetry.SpanAttrAmount, req.Amount.String(),
	)

	line, err := s.resolveLine(ctx, principal, req.BudgetLineKey)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	amount, err := valueobject.NewMoney(req.Amount, line.Currency)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.checkBounds(ctx, principal, line, amount.Amount(), nil); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	allocation, err := budget.NewAllocation(
		principal.TenantID,
		line.LineKey,
		req.VendorName,
		amount,
		req.SystemID,
		req.SystemName,
		req.Remarks,
	)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.allocRepo.Save(ctx, allocation); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save allocation: %w", err)
	}

	if _, err := s.projector.Refresh(ctx, principal, line.LineKey); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	return allocation, nil
}

// UpdateAllocationRequest carries the updatable attributes of an allocation
type UpdateAllocationRequest struct {
	VendorName string
	Amount     decimal.Decimal
	SystemID   *uuid.UUID
	SystemName string
	Remarks    string
}

// UpdateAllocation revalidates an edited allocation against the sum of all
// other active allocations, then refreshes the line's derived amounts.
func (s *AllocationService) UpdateAllocation(
	ctx context.Context,
	principal shared.Principal,
	id uuid.UUID,
	req UpdateAllocationRequest,
) (*budget.Allocation, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "allocation", "update")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrDrawDownID, id.String())

	allocation, err := s.allocRepo.FindByID(ctx, principal.TenantID, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to find allocation: %w", err)
	}
	if allocation == nil {
		telemetry.RecordError(span, shared.ErrNotFound)
		return nil, shared.ErrNotFound
	}

	line, err := s.resolveLine(ctx, principal, allocation.BudgetLineKey)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	amount, err := valueobject.NewMoney(req.Amount, line.Currency)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if !amount.IsPositive() {
		err := shared.NewDomainError("INVALID_AMOUNT", "Allocation amount must be positive")
		telemetry.RecordError(span, err)
		return nil, err
	}
	if req.VendorName == "" {
		err := shared.NewDomainError("INVALID_VENDOR", "Vendor name cannot be empty")
		telemetry.RecordError(span, err)
		return nil, err
	}
	if (req.SystemID == nil) == (req.SystemName == "") {
		err := shared.NewDomainError("INVALID_SYSTEM_REFERENCE",
			"Exactly one of system ID and system name must be provided")
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.checkBounds(ctx, principal, line, amount.Amount(), &id); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	allocation.VendorName = req.VendorName
	allocation.Amount = amount.Amount()
	allocation.SystemID = req.SystemID
	allocation.SystemName = req.SystemName
	allocation.Remarks = req.Remarks
	allocation.Touch()

	if err := s.allocRepo.Save(ctx, allocation); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save allocation: %w", err)
	}

	if _, err := s.projector.Refresh(ctx, principal, line.LineKey); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	return allocation, nil
}

// DeleteAllocation removes an allocation and refreshes the line's derived
// amounts.
func (s *AllocationService) DeleteAllocation(
	ctx context.Context,
	principal shared.Principal,
	id uuid.UUID,
) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "allocation", "delete")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrDrawDownID, id.String())

	allocation, err := s.allocRepo.FindByID(ctx, principal.TenantID, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to find allocation: %w", err)
	}
	if allocation == nil {
		telemetry.RecordError(span, shared.ErrNotFound)
		return shared.ErrNotFound
	}

	if err := s.allocRepo.Delete(ctx, principal.TenantID, id); err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to delete allocation: %w", err)
	}

	if _, err := s.projector.Refresh(ctx, principal, allocation.BudgetLineKey); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	return nil
}

// ListAllocations returns the allocations of a budget line
func (s *AllocationService) ListAllocations(
	ctx context.Context,
	principal shared.Principal,
	lineKey string,
	filter shared.Filter,
) ([]budget.Allocation, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "allocation", "list")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrBudgetLineKey, lineKey)

	if _, err := s.resolveLine(ctx, principal, lineKey); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	allocations, err := s.allocRepo.FindByBudgetLine(ctx, principal.TenantID, lineKey, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}

	return allocations, nil
}
