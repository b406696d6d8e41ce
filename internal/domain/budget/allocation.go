package budget

import (
	"github.com/google/uuid"
	"github.com/projops/backend/internal/domain/shared"
	"github.com/projops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Allocation is a draw-down against a budget line. The currency is always
// inherited from the line. The target system is either a reference to a
// registered system entity or a free-text name - exactly one of the two.
type Allocation struct {
	shared.TenantEntity
	BudgetLineKey string               `json:"budget_line_key"`
	VendorName    string               `json:"vendor_name"`
	Amount        decimal.Decimal      `json:"amount"`
	Currency      valueobject.Currency `json:"currency"`
	SystemID      *uuid.UUID           `json:"system_id,omitempty"`
	SystemName    string               `json:"system_name,omitempty"`
	Remarks       string               `json:"remarks,omitempty"`
}

// NewAllocation creates an allocation draw-down. The line existence,
// capacity and ceiling checks live in the ledger service; this constructor
// enforces row-local invariants, including the one-of-two system reference.
func NewAllocation(
	tenantID uuid.UUID,
	budgetLineKey string,
	vendorName string,
	amount valueobject.Money,
	systemID *uuid.UUID,
	systemName string,
	remarks string,
) (*Allocation, error) {
	if budgetLineKey == "" {
		return nil, shared.NewDomainError("INVALID_SCOPE", "Allocation requires a budget line")
	}
	if vendorName == "" {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor name cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Allocation amount must be positive")
	}
	if (systemID == nil) == (systemName == "") {
		return nil, shared.NewDomainError("INVALID_SYSTEM_REFERENCE",
			"Exactly one of system ID and system name must be provided")
	}

	return &Allocation{
		TenantEntity:  shared.NewTenantEntity(tenantID),
		BudgetLineKey: budgetLineKey,
		VendorName:    vendorName,
		Amount:        amount.Amount(),
		Currency:      amount.Currency(),
		SystemID:      systemID,
		SystemName:    systemName,
		Remarks:       remarks,
	}, nil
}

// AmountMoney returns the allocated amount as Money
func (a *Allocation) AmountMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(a.Amount, a.Currency)
	return m
}
