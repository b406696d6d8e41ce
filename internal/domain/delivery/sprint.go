package delivery

import (
	"time"

	"github.com/google/uuid"
	"github.com/projops/backend/internal/domain/shared"
	"github.com/projops/backend/internal/domain/versioning"
)

// Sprint status values
const (
	SprintStatusPlanned = "Planned"
	SprintStatusActive  = "Active"
	SprintStatusClosed  = "Closed"
)

// Sprint is a versioned iteration within a project.
type Sprint struct {
	versioning.RecordBase
	ChainKey   string     `gorm:"type:varchar(50);not null;index" json:"chain_key"`
	TenantID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ProjectKey string     `gorm:"type:varchar(50);not null;index" json:"project_key"`
	Name       string     `gorm:"type:varchar(200);not null" json:"name"`
	Status     string     `gorm:"type:varchar(20);not null" json:"status"`
	Goal       string     `gorm:"type:text" json:"goal,omitempty"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
}

// TableName returns the table name for GORM
func (Sprint) TableName() string {
	return "sprints"
}

// LogicalKey returns the chain key shared by all versions of the sprint
func (s *Sprint) LogicalKey() string {
	return s.ChainKey
}

// Tenant returns the owning tenant of the chain
func (s *Sprint) Tenant() uuid.UUID {
	return s.TenantID
}

// NewSprint creates version 1 of a sprint
func NewSprint(tenantID uuid.UUID, projectKey, name, goal string) (*Sprint, error) {
	if projectKey == "" {
		return nil, shared.NewDomainError("INVALID_PROJECT_REFERENCE", "Sprint requires a project")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_SPRINT_NAME", "Sprint name cannot be empty")
	}

	return &Sprint{
		RecordBase: versioning.NewRecordBase(time.Now()),
		ChainKey:   NewChainKey(),
		TenantID:   tenantID,
		ProjectKey: projectKey,
		Name:       name,
		Status:     SprintStatusPlanned,
		Goal:       goal,
	}, nil
}

// Release is a versioned shippable milestone of a project.
type Release struct {
	versioning.RecordBase
	ChainKey    string     `gorm:"type:varchar(50);not null;index" json:"chain_key"`
	TenantID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ProjectKey  string     `gorm:"type:varchar(50);not null;index" json:"project_key"`
	Name        string     `gorm:"type:varchar(200);not null" json:"name"`
	Version     string     `gorm:"type:varchar(50)" json:"version,omitempty"`
	PlannedDate *time.Time `json:"planned_date,omitempty"`
	ShippedDate *time.Time `json:"shipped_date,omitempty"`
	Notes       string     `gorm:"type:text" json:"notes,omitempty"`
}

// TableName returns the table name for GORM
func (Release) TableName() string {
	return "releases"
}

// LogicalKey returns the chain key shared by all versions of the release
func (r *Release) LogicalKey() string {
	return r.ChainKey
}

// Tenant returns the owning tenant of the chain
func (r *Release) Tenant() uuid.UUID {
	return r.TenantID
}

// NewRelease creates version 1 of a release
func NewRelease(tenantID uuid.UUID, projectKey, name, version string) (*Release, error) {
	if projectKey == "" {
		return nil, shared.NewDomainError("INVALID_PROJECT_REFERENCE", "Release requires a project")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_RELEASE_NAME", "Release name cannot be empty")
	}

	return &Release{
		RecordBase: versioning.NewRecordBase(time.Now()),
		ChainKey:   NewChainKey(),
		TenantID:   tenantID,
		ProjectKey: projectKey,
		Name:       name,
		Version:    version,
	}, nil
}
