package budget

import (
	"context"

	"github.com/google/uuid"
	"github.com/projops/backend/internal/domain/shared"
	"github.com/projops/backend/internal/domain/versioning"
	"github.com/shopspring/decimal"
)

// BudgetLineStore is the version-chain store for budget lines. Capacity
// checks must always read the current version of the line through it.
type BudgetLineStore = versioning.Store[*BudgetLine]

// AllocationRepository persists allocation draw-downs.
//
// SumActiveAmount recomputes the utilized total of a line from source rows,
// excluding excludeID when an update path must not count the row being
// edited.
type AllocationRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Allocation, error)
	FindByBudgetLine(ctx context.Context, tenantID uuid.UUID, lineKey string, filter shared.Filter) ([]Allocation, error)
	Save(ctx context.Context, a *Allocation) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	SumActiveAmount(ctx context.Context, tenantID uuid.UUID, lineKey string, excludeID *uuid.UUID) (decimal.Decimal, error)
}
