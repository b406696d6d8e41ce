package models

import (
	"github.com/google/uuid"
	"github.com/projops/backend/internal/domain/budget"
	"github.com/projops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// AllocationModel is the persistence model for budget allocations
type AllocationModel struct {
	TenantModel
	BudgetLineKey string          `gorm:"type:varchar(50);not null;index"`
	VendorName    string          `gorm:"type:varchar(200);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency      string          `gorm:"type:varchar(3);not null"`
	SystemID      *uuid.UUID      `gorm:"type:uuid;index"`
	SystemName    string          `gorm:"type:varchar(200)"`
	Remarks       string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (AllocationModel) TableName() string {
	return "allocations"
}

// ToDomain converts the model to a domain allocation
func (m *AllocationModel) ToDomain() *budget.Allocation {
	return &budget.Allocation{
		TenantEntity:  m.TenantModel.ToDomain(),
		BudgetLineKey: m.BudgetLineKey,
		VendorName:    m.VendorName,
		Amount:        m.Amount,
		Currency:      valueobject.Currency(m.Currency),
		SystemID:      m.SystemID,
		SystemName:    m.SystemName,
		Remarks:       m.Remarks,
	}
}

// FromDomain populates the model from a domain allocation
func (m *AllocationModel) FromDomain(a *budget.Allocation) {
	m.FromDomainTenantEntity(a.TenantEntity)
	m.BudgetLineKey = a.BudgetLineKey
	m.VendorName = a.VendorName
	m.Amount = a.Amount
	m.Currency = string(a.Currency)
	m.SystemID = a.SystemID
	m.SystemName = a.SystemName
	m.Remarks = a.Remarks
}
