package budget

import (
	"context"
	"fmt"

	"github.com/projops/backend/internal/domain/budget"
	"github.com/projops/backend/internal/domain/ledger"
	"github.com/projops/backend/internal/domain/shared"
	"github.com/projops/backend/internal/domain/shared/valueobject"
	"github.com/projops/backend/internal/domain/versioning"
	"github.com/projops/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
)

// BudgetLineService manages budget line version chains
type BudgetLineService struct {
	lineStore budget.BudgetLineStore
}

// NewBudgetLineService creates a new BudgetLineService
func NewBudgetLineService(lineStore budget.BudgetLineStore) *BudgetLineService {
	return &BudgetLineService{lineStore: lineStore}
}

// CreateBudgetLineRequest carries the attributes of a new budget line
type CreateBudgetLineRequest struct {
	Name           string
	FiscalYear     int
	ApprovedAmount decimal.Decimal
	Currency       string
	Remarks        string
}

// CreateBudgetLine opens a new budget line chain with version 1 current
func (s *BudgetLineService) CreateBudgetLine(
	ctx context.Context,
	principal shared.Principal,
	req CreateBudgetLineRequest,
) (*budget.BudgetLine, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "budget_line", "create")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrAmount, req.ApprovedAmount.String(),
		telemetry.SpanAttrCurrency, req.Currency,
	)

	amount, err := valueobject.NewMoney(req.ApprovedAmount, valueobject.Currency(req.Currency))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	line, err := budget.NewBudgetLine(principal.TenantID, req.Name, req.FiscalYear, amount, req.Remarks)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	created, err := s.lineStore.CreateVersion(ctx, line, line.StartMarker)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to create budget line: %w", err)
	}

	telemetry.SetAttribute(span, telemetry.SpanAttrBudgetLineKey, created.LineKey)
	return created, nil
}

// GetBudgetLine returns the current version of a budget line
func (s *BudgetLineService) GetBudgetLine(
	ctx context.Context,
	principal shared.Principal,
	lineKey string,
) (*budget.BudgetLine, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "budget_line", "get")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrBudgetLineKey, lineKey)

	line, err := s.lineStore.Current(ctx, principal.TenantID, lineKey)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	return line, nil
}

// GetBudgetLineBalance reads the admission balance of a line from the
// derived amounts on its current version.
func (s *BudgetLineService) GetBudgetLineBalance(
	ctx context.Context,
	principal shared.Principal,
	lineKey string,
) (*ledger.Balance, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "budget_line", "balance")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrBudgetLineKey, lineKey)

	line, err := s.GetBudgetLine(ctx, principal, lineKey)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	balance := ledger.NewBalance(line.ApprovedAmount, line.UtilizedAmount, line.Currency)
	return &balance, nil
}

// GetBudgetLineHistory returns all versions of a budget line ordered by
// start marker
func (s *BudgetLineService) GetBudgetLineHistory(
	ctx context.Context,
	principal shared.Principal,
	lineKey string,
) ([]*budget.BudgetLine, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "budget_line", "history")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrBudgetLineKey, lineKey)

	history, err := s.lineStore.History(ctx, principal.TenantID, lineKey)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load budget line history: %w", err)
	}
	if len(history) == 0 {
		telemetry.RecordError(span, versioning.ErrNoCurrentVersion)
		return nil, versioning.ErrNoCurrentVersion
	}

	return history, nil
}
