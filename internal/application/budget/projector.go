package budget

import (
	"context"
	"fmt"

	"github.com/projops/backend/internal/domain/budget"
	"github.com/projops/backend/internal/domain/shared"
	"github.com/projops/backend/internal/infrastructure/telemetry"
)

// BudgetLineAmountProjector refreshes the derived utilized and available
// amounts of a budget line after an allocation mutation. Each refresh
// recomputes the utilized total from source rows and writes it as a new
// version of the line, so utilization changes appear in the line's own
// history.
//
// The refresh runs after the allocation mutation commits, in its own
// transaction. If the refresh fails the allocation stays committed and the
// line's derived amounts are stale until the next mutation on the line
// re-projects them. Admission checks are unaffected: they sum the source
// allocation rows directly rather than reading the projected amounts.
type BudgetLineAmountProjector struct {
	lineStore budget.BudgetLineStore
	allocRepo budget.AllocationRepository
}

// NewBudgetLineAmountProjector creates a new BudgetLineAmountProjector
func NewBudgetLineAmountProjector(
	lineStore budget.BudgetLineStore,
	allocRepo budget.AllocationRepository,
) *BudgetLineAmountProjector {
	return &BudgetLineAmountProjector{
		lineStore: lineStore,
		allocRepo: allocRepo,
	}
}

// Refresh recomputes the utilized total of the line and appends a version
// carrying the new derived amounts.
func (p *BudgetLineAmountProjector) Refresh(
	ctx context.Context,
	principal shared.Principal,
	lineKey string,
) (*budget.BudgetLine, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "budget_line_projector", "refresh")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrBudgetLineKey, lineKey)

	utilized, err := p.allocRepo.SumActiveAmount(ctx, principal.TenantID, lineKey, nil)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to sum active allocations: %w", err)
	}

	line, err := p.lineStore.Edit(ctx, principal.TenantID, lineKey, principal.Editor(), func(l *budget.BudgetLine) {
		l.UtilizedAmount = utilized
		l.AvailableAmount = l.ApprovedAmount.Sub(utilized)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to project budget line amounts: %w", err)
	}

	telemetry.AddEvent(span, "amounts_projected",
		"utilized", utilized.String(),
		"available", line.AvailableAmount.String(),
	)
	return line, nil
}
