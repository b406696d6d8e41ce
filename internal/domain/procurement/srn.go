package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/projops/backend/internal/domain/shared"
	"github.com/projops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// SRN is a service receipt note: a draw-down recording delivered value
// against a purchase order, optionally narrowed to a milestone. SRNs and
// consumptions are tracked as separate pools over the same scope.
type SRN struct {
	shared.TenantEntity
	Number          string               `json:"number"`
	PurchaseOrderID uuid.UUID            `json:"purchase_order_id"`
	MilestoneID     *uuid.UUID           `json:"milestone_id,omitempty"`
	Amount          decimal.Decimal      `json:"amount"`
	Currency        valueobject.Currency `json:"currency"`
	ReceivedAt      *time.Time           `json:"received_at,omitempty"`
	Remarks         string               `json:"remarks,omitempty"`
}

// NewSRN creates a receipt-note draw-down. Scope checks live in the ledger
// service.
func NewSRN(
	tenantID uuid.UUID,
	number string,
	purchaseOrderID uuid.UUID,
	milestoneID *uuid.UUID,
	amount valueobject.Money,
	receivedAt *time.Time,
	remarks string,
) (*SRN, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_SRN_NUMBER", "SRN number cannot be empty")
	}
	if purchaseOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SCOPE", "SRN requires a purchase order")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "SRN amount must be positive")
	}

	return &SRN{
		TenantEntity:    shared.NewTenantEntity(tenantID),
		Number:          number,
		PurchaseOrderID: purchaseOrderID,
		MilestoneID:     milestoneID,
		Amount:          amount.Amount(),
		Currency:        amount.Currency(),
		ReceivedAt:      receivedAt,
		Remarks:         remarks,
	}, nil
}

// AmountMoney returns the received amount as Money
func (s *SRN) AmountMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(s.Amount, s.Currency)
	return m
}
