package procurement

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/projops/backend/internal/domain/ledger"
	"github.com/projops/backend/internal/domain/procurement"
	"github.com/projops/backend/internal/domain/shared"
	"github.com/projops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Ledger errors shared by the draw-down services
var (
	// ErrScopeNotFound is returned when the purchase order named by a
	// draw-down does not exist.
	ErrScopeNotFound = shared.NewDomainError("SCOPE_NOT_FOUND", "Purchase order not found")

	// ErrNarrowingNotFound is returned when the named milestone does not
	// exist on the resolved purchase order.
	ErrNarrowingNotFound = shared.NewDomainError("NARROWING_NOT_FOUND", "Milestone not found on this purchase order")
)

// resolveScope resolves a purchase order by number and, when milestoneName
// is non-empty, the milestone narrowing within it. The milestone must
// belong to the resolved order.
func resolveScope(
	ctx context.Context,
	poRepo procurement.PurchaseOrderRepository,
	tenantID uuid.UUID,
	poNumber string,
	milestoneName string,
) (*procurement.PurchaseOrder, *procurement.Milestone, error) {
	po, err := poRepo.FindByNumber(ctx, tenantID, poNumber)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find purchase order: %w", err)
	}
	if po == nil {
		return nil, nil, ErrScopeNotFound
	}

	if milestoneName == "" {
		return po, nil, nil
	}

	milestone, err := poRepo.FindMilestoneByName(ctx, tenantID, po.ID, milestoneName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find milestone: %w", err)
	}
	if milestone == nil {
		return nil, nil, ErrNarrowingNotFound
	}

	return po, milestone, nil
}

// scopeCapacity returns the capacity pool a draw-down is validated against:
// the milestone amount when narrowed, otherwise the order amount. The two
// pools are independent on purpose; an un-narrowed draw-down never counts
// against any milestone and vice versa.
func scopeCapacity(po *procurement.PurchaseOrder, m *procurement.Milestone) (decimal.Decimal, valueobject.Currency) {
	if m != nil {
		return m.Amount, m.Currency
	}
	return po.ApprovedAmount, po.Currency
}

// checkAdmission validates a requested draw-down amount against the scope
// balance. There is deliberately no lock between the sum and the insert;
// the recompute-from-source discipline keeps any raced overdraw visible
// and self-reported on the next mutation.
func checkAdmission(scopeKey, narrowing string, requested, capacity, existing decimal.Decimal, currency valueobject.Currency) error {
	balance := ledger.NewBalance(capacity, existing, currency)
	if !balance.Admits(requested) {
		return ledger.NewCapacityExceededError(scopeKey, narrowing, requested, balance)
	}
	return nil
}
