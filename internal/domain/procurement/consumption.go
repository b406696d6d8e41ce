package procurement

import (
	"github.com/google/uuid"
	"github.com/projops/backend/internal/domain/shared"
	"github.com/projops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ConsumptionType tags how the drawn-down work was contracted
type ConsumptionType string

const (
	ConsumptionTypeFixed ConsumptionType = "Fixed"
	ConsumptionTypeTM    ConsumptionType = "T&M"
	ConsumptionTypeMixed ConsumptionType = "Mixed"
)

// IsValid checks if the consumption type is valid
func (t ConsumptionType) IsValid() bool {
	switch t {
	case ConsumptionTypeFixed, ConsumptionTypeTM, ConsumptionTypeMixed:
		return true
	}
	return false
}

// String returns the string representation of the consumption type
func (t ConsumptionType) String() string {
	return string(t)
}

// Consumption is a draw-down against a purchase order, optionally narrowed
// to one of its milestones. It references its scope by id only.
type Consumption struct {
	shared.TenantEntity
	PurchaseOrderID uuid.UUID            `json:"purchase_order_id"`
	MilestoneID     *uuid.UUID           `json:"milestone_id,omitempty"`
	Amount          decimal.Decimal      `json:"amount"`
	Currency        valueobject.Currency `json:"currency"`
	Type            ConsumptionType      `json:"type"`
	WorkDescription string               `json:"work_description,omitempty"`
	WorkPeriod      string               `json:"work_period,omitempty"`
	RecordedBy      string               `json:"recorded_by,omitempty"`
}

// NewConsumption creates a consumption draw-down. Scope and narrowing
// existence, currency match and capacity are validated by the ledger
// service; this constructor only enforces row-local invariants.
func NewConsumption(
	tenantID uuid.UUID,
	purchaseOrderID uuid.UUID,
	milestoneID *uuid.UUID,
	amount valueobject.Money,
	consumptionType ConsumptionType,
	workDescription string,
	workPeriod string,
) (*Consumption, error) {
	if purchaseOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SCOPE", "Consumption requires a purchase order")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Consumption amount must be positive")
	}
	if !consumptionType.IsValid() {
		return nil, shared.NewDomainError("INVALID_CONSUMPTION_TYPE", "Consumption type is not valid")
	}

	return &Consumption{
		TenantEntity:    shared.NewTenantEntity(tenantID),
		PurchaseOrderID: purchaseOrderID,
		MilestoneID:     milestoneID,
		Amount:          amount.Amount(),
		Currency:        amount.Currency(),
		Type:            consumptionType,
		WorkDescription: workDescription,
		WorkPeriod:      workPeriod,
	}, nil
}

// AmountMoney returns the drawn amount as Money
func (c *Consumption) AmountMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(c.Amount, c.Currency)
	return m
}
