package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/projops/backend/internal/domain/procurement"
	"github.com/projops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PurchaseOrderModel is the persistence model for purchase orders
type PurchaseOrderModel struct {
	TenantModel
	Number         string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_po_tenant_number"`
	Title          string          `gorm:"type:varchar(200)"`
	VendorName     string          `gorm:"type:varchar(200)"`
	ApprovedAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency       string          `gorm:"type:varchar(3);not null"`
	IssuedAt       *time.Time
	Remarks        string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PurchaseOrderModel) TableName() string {
	return "purchase_orders"
}

// ToDomain converts the model to a domain purchase order
func (m *PurchaseOrderModel) ToDomain() *procurement.PurchaseOrder {
	return &procurement.PurchaseOrder{
		TenantEntity:   m.TenantModel.ToDomain(),
		Number:         m.Number,
		Title:          m.Title,
		VendorName:     m.VendorName,
		ApprovedAmount: m.ApprovedAmount,
		Currency:       valueobject.Currency(m.Currency),
		IssuedAt:       m.IssuedAt,
		Remarks:        m.Remarks,
	}
}

// FromDomain populates the model from a domain purchase order
func (m *PurchaseOrderModel) FromDomain(po *procurement.PurchaseOrder) {
	m.FromDomainTenantEntity(po.TenantEntity)
	m.Number = po.Number
	m.Title = po.Title
	m.VendorName = po.VendorName
	m.ApprovedAmount = po.ApprovedAmount
	m.Currency = string(po.Currency)
	m.IssuedAt = po.IssuedAt
	m.Remarks = po.Remarks
}

// MilestoneModel is the persistence model for purchase order milestones
type MilestoneModel struct {
	TenantModel
	PurchaseOrderID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_milestone_po_name"`
	Name            string          `gorm:"type:varchar(200);not null;uniqueIndex:idx_milestone_po_name"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency        string          `gorm:"type:varchar(3);not null"`
	DurationDays    *int
	DueDate         *time.Time
}

// TableName returns the table name for GORM
func (MilestoneModel) TableName() string {
	return "milestones"
}

// ToDomain converts the model to a domain milestone
func (m *MilestoneModel) ToDomain() *procurement.Milestone {
	return &procurement.Milestone{
		TenantEntity:    m.TenantModel.ToDomain(),
		PurchaseOrderID: m.PurchaseOrderID,
		Name:            m.Name,
		Amount:          m.Amount,
		Currency:        valueobject.Currency(m.Currency),
		DurationDays:    m.DurationDays,
		DueDate:         m.DueDate,
	}
}

// FromDomain populates the model from a domain milestone
func (m *MilestoneModel) FromDomain(milestone *procurement.Milestone) {
	m.FromDomainTenantEntity(milestone.TenantEntity)
	m.PurchaseOrderID = milestone.PurchaseOrderID
	m.Name = milestone.Name
	m.Amount = milestone.Amount
	m.Currency = string(milestone.Currency)
	m.DurationDays = milestone.DurationDays
	m.DueDate = milestone.DueDate
}

// ConsumptionModel is the persistence model for consumption draw-downs
type ConsumptionModel struct {
	TenantModel
	PurchaseOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	MilestoneID     *uuid.UUID      `gorm:"type:uuid;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency        string          `gorm:"type:varchar(3);not null"`
	Type            string          `gorm:"type:varchar(10);not null"`
	WorkDescription string          `gorm:"type:text"`
	WorkPeriod      string          `gorm:"type:varchar(100)"`
	RecordedBy      string          `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (ConsumptionModel) TableName() string {
	return "consumptions"
}

// ToDomain converts the model to a domain consumption
func (m *ConsumptionModel) ToDomain() *procurement.Consumption {
	return &procurement.Consumption{
		TenantEntity:    m.TenantModel.ToDomain(),
		PurchaseOrderID: m.PurchaseOrderID,
		MilestoneID:     m.MilestoneID,
		Amount:          m.Amount,
		Currency:        valueobject.Currency(m.Currency),
		Type:            procurement.ConsumptionType(m.Type),
		WorkDescription: m.WorkDescription,
		WorkPeriod:      m.WorkPeriod,
		RecordedBy:      m.RecordedBy,
	}
}

// FromDomain populates the model from a domain consumption
func (m *ConsumptionModel) FromDomain(c *procurement.Consumption) {
	m.FromDomainTenantEntity(c.TenantEntity)
	m.PurchaseOrderID = c.PurchaseOrderID
	m.MilestoneID = c.MilestoneID
	m.Amount = c.Amount
	m.Currency = string(c.Currency)
	m.Type = string(c.Type)
	m.WorkDescription = c.WorkDescription
	m.WorkPeriod = c.WorkPeriod
	m.RecordedBy = c.RecordedBy
}

// SRNModel is the persistence model for service receipt notes
type SRNModel struct {
	TenantModel
	Number          string          `gorm:"type:varchar(50);not null;index"`
	PurchaseOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	MilestoneID     *uuid.UUID      `gorm:"type:uuid;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency        string          `gorm:"type:varchar(3);not null"`
	ReceivedAt      *time.Time
	Remarks         string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SRNModel) TableName() string {
	return "srns"
}

// ToDomain converts the model to a domain SRN
func (m *SRNModel) ToDomain() *procurement.SRN {
	return &procurement.SRN{
		TenantEntity:    m.TenantModel.ToDomain(),
		Number:          m.Number,
		PurchaseOrderID: m.PurchaseOrderID,
		MilestoneID:     m.MilestoneID,
		Amount:          m.Amount,
		Currency:        valueobject.Currency(m.Currency),
		ReceivedAt:      m.ReceivedAt,
		Remarks:         m.Remarks,
	}
}

// FromDomain populates the model from a domain SRN
func (m *SRNModel) FromDomain(s *procurement.SRN) {
	m.FromDomainTenantEntity(s.TenantEntity)
	m.Number = s.Number
	m.PurchaseOrderID = s.PurchaseOrderID
	m.MilestoneID = s.MilestoneID
	m.Amount = s.Amount
	m.Currency = string(s.Currency)
	m.ReceivedAt = s.ReceivedAt
	m.Remarks = s.Remarks
}
