package procurement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/projops/backend/internal/domain/procurement"
	"github.com/projops/backend/internal/domain/shared"
	"github.com/projops/backend/internal/domain/shared/valueobject"
	"github.com/projops/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
)

// SRNService records service receipt notes against purchase orders.
// Receipt notes draw from their own pool, independent of consumptions.
type SRNService struct {
	poRepo  procurement.PurchaseOrderRepository
	srnRepo procurement.SRNRepository
}

// NewSRNService creates a new SRNService
func NewSRNService(
	poRepo procurement.PurchaseOrderRepository,
	srnRepo procurement.SRNRepository,
) *SRNService {
	return &SRNService{
		poRepo:  poRepo,
		srnRepo: srnRepo,
	}
}

// AddSRNRequest carries the attributes of a new receipt note
type AddSRNRequest struct {
	Number        string
	PONumber      string
	MilestoneName string // empty means un-narrowed
	Amount        decimal.Decimal
	Currency      string
	ReceivedAt    *time.Time
	Remarks       string
}

// AddSRN validates and persists a receipt note using the same
// validate-then-commit ledger steps as consumptions, summed over the SRN
// pool only.
func (s *SRNService) AddSRN(
	ctx context.Context,
	principal shared.Principal,
	req AddSRNRequest,
) (*procurement.SRN, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "srn", "add")
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

	existing, err := s.srnRepo.SumActiveAmount(ctx, principal.TenantID, po.ID, milestoneID, nil)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to sum active receipt notes: %w", err)
	}

	capacity, currency := scopeCapacity(po, milestone)
	if err := checkAdmission(po.Number, req.MilestoneName, amount.Amount(), capacity, existing, currency); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	srn, err := procurement.NewSRN(
		principal.TenantID,
		req.Number,
		po.ID,
		milestoneID,
		amount,
		req.ReceivedAt,
		req.Remarks,
	)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.srnRepo.Save(ctx, srn); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save receipt note: %w", err)
	}

	return srn, nil
}

// UpdateSRNRequest carries the updatable attributes of a receipt note
type UpdateSRNRequest struct {
	MilestoneName string // empty means un-narrowed
	Amount        decimal.Decimal
	ReceivedAt    *time.Time
	Remarks       string
}

// UpdateSRN revalidates an edited receipt note against the sum of all
// other active notes in the target scope.
func (s *SRNService) UpdateSRN(
	ctx context.Context,
	principal shared.Principal,
	id uuid.UUID,
	req UpdateSRNRequest,
) (*procurement.SRN, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "srn", "update")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrDrawDownID, id.String())

	srn, err := s.srnRepo.FindByID(ctx, principal.TenantID, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to find receipt note: %w", err)
	}
	if srn == nil {
		telemetry.RecordError(span, shared.ErrNotFound)
		return nil, shared.ErrNotFound
	}

	po, err := s.poRepo.FindByID(ctx, principal.TenantID, srn.PurchaseOrderID)
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
		err := shared.NewDomainError("INVALID_AMOUNT", "SRN amount must be positive")
		telemetry.RecordError(span, err)
		return nil, err
	}

	existing, err := s.srnRepo.SumActiveAmount(ctx, principal.TenantID, po.ID, milestoneID, &id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to sum active receipt notes: %w", err)
	}

	capacity, currency := scopeCapacity(po, milestone)
	if err := checkAdmission(po.Number, req.MilestoneName, amount.Amount(), capacity, existing, currency); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	srn.MilestoneID = milestoneID
	srn.Amount = amount.Amount()
	srn.ReceivedAt = req.ReceivedAt
	srn.Remarks = req.Remarks
	srn.Touch()

	if err := s.srnRepo.Save(ctx, srn); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save receipt note: %w", err)
	}

	return srn, nil
}

// DeleteSRN removes a receipt note
func (s *SRNService) DeleteSRN(
	ctx context.Context,
	principal shared.Principal,
	id uuid.UUID,
) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "srn", "delete")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrDrawDownID, id.String())

	srn, err := s.srnRepo.FindByID(ctx, principal.TenantID, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to find receipt note: %w", err)
	}
	if srn == nil {
		telemetry.RecordError(span, shared.ErrNotFound)
		return shared.ErrNotFound
	}

	if err := s.srnRepo.Delete(ctx, principal.TenantID, id); err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to delete receipt note: %w", err)
	}

	return nil
}

// ListSRNs returns the receipt notes of a purchase order
func (s *SRNService) ListSRNs(
	ctx context.Context,
	principal shared.Principal,
	poNumber string,
	filter shared.Filter,
) ([]procurement.SRN, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "srn", "list")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrPONumber, poNumber)

	po, _, err := resolveScope(ctx, s.poRepo, principal.TenantID, poNumber, "")
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	srns, err := s.srnRepo.FindByPurchaseOrder(ctx, principal.TenantID, po.ID, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to list receipt notes: %w", err)
	}

	return srns, nil
}
