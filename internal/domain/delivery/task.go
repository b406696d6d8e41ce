package delivery

import (
	"time"

	"github.com/google/uuid"
	"github.com/projops/backend/internal/domain/shared"
	"github.com/projops/backend/internal/domain/versioning"
)

// Task status values
const (
	TaskStatusOpen       = "Open"
	TaskStatusInProgress = "InProgress"
	TaskStatusDone       = "Done"
	TaskStatusBlocked    = "Blocked"
)

// Task is a versioned work item keyed by a TASK-###### business id.
type Task struct {
	versioning.RecordBase
	BusinessKey string     `gorm:"type:varchar(20);not null;index" json:"business_key"`
	TenantID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ProjectKey  string     `gorm:"type:varchar(50);index" json:"project_key,omitempty"`
	SprintKey   string     `gorm:"type:varchar(50);index" json:"sprint_key,omitempty"`
	Title       string     `gorm:"type:varchar(200);not null" json:"title"`
	Status      string     `gorm:"type:varchar(20);not null" json:"status"`
	Assignee    string     `gorm:"type:varchar(200)" json:"assignee,omitempty"`
	EstimateHrs *int       `json:"estimate_hrs,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
}

// TableName returns the table name for GORM
func (Task) TableName() string {
	return "tasks"
}

// LogicalKey returns the business key shared by all versions of the task
func (t *Task) LogicalKey() string {
	return t.BusinessKey
}

// Tenant returns the owning tenant of the chain
func (t *Task) Tenant() uuid.UUID {
	return t.TenantID
}

// NewTask creates version 1 of a task. The business key is minted from a
// sequence owned by the persistence layer.
func NewTask(tenantID uuid.UUID, businessKey, projectKey, title, assignee, description string) (*Task, error) {
	if businessKey == "" {
		return nil, shared.NewDomainError("INVALID_BUSINESS_KEY", "Task business key cannot be empty")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TASK_TITLE", "Task title cannot be empty")
	}

	return &Task{
		RecordBase:  versioning.NewRecordBase(time.Now()),
		BusinessKey: businessKey,
		TenantID:    tenantID,
		ProjectKey:  projectKey,
		Title:       title,
		Status:      TaskStatusOpen,
		Assignee:    assignee,
		Description: description,
	}, nil
}
