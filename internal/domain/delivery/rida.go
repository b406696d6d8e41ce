package delivery

import (
	"time"

	"github.com/google/uuid"
	"github.com/projops/backend/internal/domain/shared"
	"github.com/projops/backend/internal/domain/versioning"
)

// Rida categories: risk, issue, dependency, assumption
const (
	RidaCategoryRisk       = "Risk"
	RidaCategoryIssue      = "Issue"
	RidaCategoryDependency = "Dependency"
	RidaCategoryAssumption = "Assumption"
)

// Rida status values
const (
	RidaStatusOpen      = "Open"
	RidaStatusMitigated = "Mitigated"
	RidaStatusClosed    = "Closed"
)

// Rida is a versioned risk/issue/dependency/assumption entry of a project.
type Rida struct {
	versioning.RecordBase
	ChainKey   string     `gorm:"type:varchar(50);not null;index" json:"chain_key"`
	TenantID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ProjectKey string     `gorm:"type:varchar(50);not null;index" json:"project_key"`
	Category   string     `gorm:"type:varchar(20);not null" json:"category"`
	Title      string     `gorm:"type:varchar(200);not null" json:"title"`
	Status     string     `gorm:"type:varchar(20);not null" json:"status"`
	Severity   string     `gorm:"type:varchar(20)" json:"severity,omitempty"`
	Owner      string     `gorm:"type:varchar(200)" json:"owner,omitempty"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	Mitigation string     `gorm:"type:text" json:"mitigation,omitempty"`
}

// TableName returns the table name for GORM
func (Rida) TableName() string {
	return "ridas"
}

// LogicalKey returns the chain key shared by all versions of the entry
func (r *Rida) LogicalKey() string {
	return r.ChainKey
}

// Tenant returns the owning tenant of the chain
func (r *Rida) Tenant() uuid.UUID {
	return r.TenantID
}

func validRidaCategory(category string) bool {
	switch category {
	case RidaCategoryRisk, RidaCategoryIssue, RidaCategoryDependency, RidaCategoryAssumption:
		return true
	}
	return false
}

// NewRida creates version 1 of a RIDA entry
func NewRida(tenantID uuid.UUID, projectKey, category, title, owner string) (*Rida, error) {
	if projectKey == "" {
		return nil, shared.NewDomainError("INVALID_PROJECT_REFERENCE", "RIDA entry requires a project")
	}
	if !validRidaCategory(category) {
		return nil, shared.NewDomainError("INVALID_RIDA_CATEGORY", "Category must be Risk, Issue, Dependency or Assumption")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_RIDA_TITLE", "RIDA title cannot be empty")
	}

	return &Rida{
		RecordBase: versioning.NewRecordBase(time.Now()),
		ChainKey:   NewChainKey(),
		TenantID:   tenantID,
		ProjectKey: projectKey,
		Category:   category,
		Title:      title,
		Status:     RidaStatusOpen,
		Owner:      owner,
	}, nil
}
