package procurement

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/projops/backend/internal/domain/ledger"
	"github.com/projops/backend/internal/domain/procurement"
	"github.com/projops/backend/internal/domain/shared"
	"github.com/projops/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
)

// DrawDownKind selects which pool a balance query reads
type DrawDownKind string

const (
	DrawDownKindConsumption DrawDownKind = "consumption"
	DrawDownKindSRN         DrawDownKind = "srn"
)

// IsValid checks if the draw-down kind is valid
func (k DrawDownKind) IsValid() bool {
	return k == DrawDownKindConsumption || k == DrawDownKindSRN
}

// BalanceService answers remaining-capacity queries. Balances are always
// recomputed from source rows, never cached.
type BalanceService struct {
	poRepo          procurement.PurchaseOrderRepository
	consumptionRepo procurement.ConsumptionRepository
	srnRepo         procurement.SRNRepository
}

// NewBalanceService creates a new BalanceService
func NewBalanceService(
	poRepo procurement.PurchaseOrderRepository,
	consumptionRepo procurement.ConsumptionRepository,
	srnRepo procurement.SRNRepository,
) *BalanceService {
	return &BalanceService{
		poRepo:          poRepo,
		consumptionRepo: consumptionRepo,
		srnRepo:         srnRepo,
	}
}

// GetBalance returns the capacity, drawn total and remaining amount of a
// purchase order pool. milestoneName narrows the query to one milestone;
// empty reads the un-narrowed order pool.
func (s *BalanceService) GetBalance(
	ctx context.Context,
	principal shared.Principal,
	poNumber string,
	milestoneName string,
	kind DrawDownKind,
) (*ledger.Balance, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "balance", "get")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrPONumber, poNumber,
		"kind", string(kind),
	)

	if !kind.IsValid() {
		err := shared.NewDomainError("INVALID_DRAW_DOWN_KIND", "Draw-down kind must be consumption or srn")
		telemetry.RecordError(span, err)
		return nil, err
	}

	po, milestone, err := resolveScope(ctx, s.poRepo, principal.TenantID, poNumber, milestoneName)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var milestoneID *uuid.UUID
	if milestone != nil {
		milestoneID = &milestone.ID
	}

	var sumErr error
	used := decimal.Zero
	switch kind {
	case DrawDownKindConsumption:
		used, sumErr = s.consumptionRepo.SumActiveAmount(ctx, principal.TenantID, po.ID, milestoneID, nil)
	case DrawDownKindSRN:
		used, sumErr = s.srnRepo.SumActiveAmount(ctx, principal.TenantID, po.ID, milestoneID, nil)
	}
	if sumErr != nil {
		telemetry.RecordError(span, sumErr)
		return nil, fmt.Errorf("failed to sum active draw-downs: %w", sumErr)
	}

	capacity, currency := scopeCapacity(po, milestone)
	balance := ledger.NewBalance(capacity, used, currency)
	return &balance, nil
}
