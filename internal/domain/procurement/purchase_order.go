package procurement

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/projops/backend/internal/domain/shared"
	"github.com/projops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PurchaseOrder is a capacity scope: a fixed approved amount that
// consumptions and receipt notes draw down. It never embeds its milestones;
// they reference it by id and are resolved through the repository.
type PurchaseOrder struct {
	shared.TenantEntity
	Number         string               `json:"number"`
	Title          string               `json:"title"`
	VendorName     string               `json:"vendor_name"`
	ApprovedAmount decimal.Decimal      `json:"approved_amount"`
	Currency       valueobject.Currency `json:"currency"`
	IssuedAt       *time.Time           `json:"issued_at,omitempty"`
	Remarks        string               `json:"remarks,omitempty"`
}

// NewPurchaseOrder creates a purchase order scope.
// The currency is immutable after creation.
func NewPurchaseOrder(
	tenantID uuid.UUID,
	number string,
	title string,
	vendorName string,
	approvedAmount valueobject.Money,
	issuedAt *time.Time,
	remarks string,
) (*PurchaseOrder, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_PO_NUMBER", "Purchase order number cannot be empty")
	}
	if len(number) > 50 {
		return nil, shared.NewDomainError("INVALID_PO_NUMBER", "Purchase order number cannot exceed 50 characters")
	}
	if !approvedAmount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Approved amount must be positive")
	}
	if !approvedAmount.Currency().IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", fmt.Sprintf("Unsupported currency %q", approvedAmount.Currency()))
	}

	return &PurchaseOrder{
		TenantEntity:   shared.NewTenantEntity(tenantID),
		Number:         number,
		Title:          title,
		VendorName:     vendorName,
		ApprovedAmount: approvedAmount.Amount(),
		Currency:       approvedAmount.Currency(),
		IssuedAt:       issuedAt,
		Remarks:        remarks,
	}, nil
}

// ApprovedMoney returns the approved amount as Money
func (po *PurchaseOrder) ApprovedMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(po.ApprovedAmount, po.Currency)
	return m
}

// Milestone is an optional narrowing inside a purchase order with its own
// independent ceiling. A draw-down that names a milestone is validated
// against the milestone amount only; an un-narrowed draw-down is validated
// against the order amount only. The two pools are deliberately independent.
type Milestone struct {
	shared.TenantEntity
	PurchaseOrderID uuid.UUID            `json:"purchase_order_id"`
	Name            string               `json:"name"`
	Amount          decimal.Decimal      `json:"amount"`
	Currency        valueobject.Currency `json:"currency"`
	DurationDays    *int                 `json:"duration_days,omitempty"`
	DueDate         *time.Time           `json:"due_date,omitempty"`
}

// NewMilestone creates a milestone under the given purchase order.
// The milestone currency must equal the parent order currency.
func NewMilestone(
	parent *PurchaseOrder,
	name string,
	amount valueobject.Money,
	durationDays *int,
	dueDate *time.Time,
) (*Milestone, error) {
	if parent == nil {
		return nil, shared.NewDomainError("INVALID_PARENT", "Milestone requires a parent purchase order")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_MILESTONE_NAME", "Milestone name cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Milestone amount must be positive")
	}
	if amount.Currency() != parent.Currency {
		return nil, shared.ErrCurrencyMismatch
	}

	return &Milestone{
		TenantEntity:    shared.NewTenantEntity(parent.TenantID),
		PurchaseOrderID: parent.ID,
		Name:            name,
		Amount:          amount.Amount(),
		Currency:        amount.Currency(),
		DurationDays:    durationDays,
		DueDate:         dueDate,
	}, nil
}

// AmountMoney returns the milestone ceiling as Money
func (m *Milestone) AmountMoney() valueobject.Money {
	money, _ := valueobject.NewMoney(m.Amount, m.Currency)
	return money
}
