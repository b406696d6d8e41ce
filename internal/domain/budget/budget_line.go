package budget

import (
	"time"

	"github.com/google/uuid"
	"github.com/projops/backend/internal/domain/shared"
	"github.com/projops/backend/internal/domain/shared/valueobject"
	"github.com/projops/backend/internal/domain/versioning"
	"github.com/shopspring/decimal"
)

// BudgetLine is a versioned capacity scope. Every physical row is one
// version of the line; the chain shares LineKey. The derived utilized and
// available amounts are refreshed by the projector after every allocation
// mutation, each refresh producing a new version so utilization history
// stays queryable.
type BudgetLine struct {
	versioning.RecordBase
	LineKey         string               `gorm:"type:varchar(50);not null;index" json:"line_key"`
	TenantID        uuid.UUID            `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name            string               `gorm:"type:varchar(200);not null" json:"name"`
	FiscalYear      int                  `gorm:"not null" json:"fiscal_year"`
	ApprovedAmount  decimal.Decimal      `gorm:"type:decimal(18,4);not null" json:"approved_amount"`
	Currency        valueobject.Currency `gorm:"type:varchar(3);not null" json:"currency"`
	UtilizedAmount  decimal.Decimal      `gorm:"type:decimal(18,4);not null" json:"utilized_amount"`
	AvailableAmount decimal.Decimal      `gorm:"type:decimal(18,4);not null" json:"available_amount"`
	Remarks         string               `gorm:"type:text" json:"remarks,omitempty"`
}

// TableName returns the table name for GORM
func (BudgetLine) TableName() string {
	return "budget_lines"
}

// LogicalKey returns the chain key shared by all versions of the line
func (b *BudgetLine) LogicalKey() string {
	return b.LineKey
}

// Tenant returns the owning tenant of the chain
func (b *BudgetLine) Tenant() uuid.UUID {
	return b.TenantID
}

// NewBudgetLine creates version 1 of a budget line. The currency is
// immutable for the whole chain; utilized starts at zero.
func NewBudgetLine(
	tenantID uuid.UUID,
	name string,
	fiscalYear int,
	approvedAmount valueobject.Money,
	remarks string,
) (*BudgetLine, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_LINE_NAME", "Budget line name cannot be empty")
	}
	if !approvedAmount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Approved amount must be positive")
	}
	if !approvedAmount.Currency().IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Unsupported currency")
	}

	now := time.Now()
	return &BudgetLine{
		RecordBase:      versioning.NewRecordBase(now),
		LineKey:         uuid.NewString(),
		TenantID:        tenantID,
		Name:            name,
		FiscalYear:      fiscalYear,
		ApprovedAmount:  approvedAmount.Amount(),
		Currency:        approvedAmount.Currency(),
		UtilizedAmount:  decimal.Zero,
		AvailableAmount: approvedAmount.Amount(),
		Remarks:         remarks,
	}, nil
}

// ApprovedMoney returns the approved amount as Money
func (b *BudgetLine) ApprovedMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(b.ApprovedAmount, b.Currency)
	return m
}

// Ceiling returns the sanity ceiling for a single allocation against this
// line: ten times the approved amount. It is a looser warning-style bound,
// distinct from the hard capacity check.
func (b *BudgetLine) Ceiling() decimal.Decimal {
	return b.ApprovedAmount.Mul(decimal.NewFromInt(allocationCeilingFactor))
}

const allocationCeilingFactor = 10
