package delivery

import (
	"time"

	"github.com/google/uuid"
	"github.com/projops/backend/internal/domain/shared"
	"github.com/projops/backend/internal/domain/versioning"
)

// Project status values
const (
	ProjectStatusActive    = "Active"
	ProjectStatusOnHold    = "OnHold"
	ProjectStatusCompleted = "Completed"
)

// Project is a versioned delivery engagement. Each physical row is one
// version; the chain shares ChainKey.
type Project struct {
	versioning.RecordBase
	ChainKey    string     `gorm:"type:varchar(50);not null;index" json:"chain_key"`
	TenantID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name        string     `gorm:"type:varchar(200);not null" json:"name"`
	CustomerRef string     `gorm:"type:varchar(200)" json:"customer_ref,omitempty"`
	Status      string     `gorm:"type:varchar(20);not null" json:"status"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
}

// TableName returns the table name for GORM
func (Project) TableName() string {
	return "projects"
}

// LogicalKey returns the chain key shared by all versions of the project
func (p *Project) LogicalKey() string {
	return p.ChainKey
}

// Tenant returns the owning tenant of the chain
func (p *Project) Tenant() uuid.UUID {
	return p.TenantID
}

// NewProject creates version 1 of a project
func NewProject(tenantID uuid.UUID, name, customerRef, description string) (*Project, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PROJECT_NAME", "Project name cannot be empty")
	}

	return &Project{
		RecordBase:  versioning.NewRecordBase(time.Now()),
		ChainKey:    NewChainKey(),
		TenantID:    tenantID,
		Name:        name,
		CustomerRef: customerRef,
		Status:      ProjectStatusActive,
		Description: description,
	}, nil
}

// ProjectTeam is a versioned staffing assignment linking a member to a
// project with a role and an allocation percentage.
type ProjectTeam struct {
	versioning.RecordBase
	ChainKey          string     `gorm:"type:varchar(50);not null;index" json:"chain_key"`
	TenantID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ProjectKey        string     `gorm:"type:varchar(50);not null;index" json:"project_key"`
	MemberEmail       string     `gorm:"type:varchar(200);not null" json:"member_email"`
	Role              string     `gorm:"type:varchar(100);not null" json:"role"`
	AllocationPercent int        `gorm:"not null" json:"allocation_percent"`
	JoinedAt          *time.Time `json:"joined_at,omitempty"`
}

// TableName returns the table name for GORM
func (ProjectTeam) TableName() string {
	return "project_teams"
}

// LogicalKey returns the chain key shared by all versions of the assignment
func (t *ProjectTeam) LogicalKey() string {
	return t.ChainKey
}

// Tenant returns the owning tenant of the chain
func (t *ProjectTeam) Tenant() uuid.UUID {
	return t.TenantID
}

// NewProjectTeam creates version 1 of a team assignment
func NewProjectTeam(tenantID uuid.UUID, projectKey, memberEmail, role string, allocationPercent int) (*ProjectTeam, error) {
	if projectKey == "" {
		return nil, shared.NewDomainError("INVALID_PROJECT_REFERENCE", "Team assignment requires a project")
	}
	if memberEmail == "" {
		return nil, shared.NewDomainError("INVALID_MEMBER", "Member email cannot be empty")
	}
	if allocationPercent < 0 || allocationPercent > 100 {
		return nil, shared.NewDomainError("INVALID_ALLOCATION_PERCENT", "Allocation percent must be between 0 and 100")
	}

	return &ProjectTeam{
		RecordBase:        versioning.NewRecordBase(time.Now()),
		ChainKey:          NewChainKey(),
		TenantID:          tenantID,
		ProjectKey:        projectKey,
		MemberEmail:       memberEmail,
		Role:              role,
		AllocationPercent: allocationPercent,
	}, nil
}
