package delivery

import (
	"time"

	"github.com/google/uuid"
	"github.com/projops/backend/internal/domain/shared"
	"github.com/projops/backend/internal/domain/versioning"
)

// Story status values shared by user and solution stories
const (
	StoryStatusDraft      = "Draft"
	StoryStatusReady      = "Ready"
	StoryStatusInProgress = "InProgress"
	StoryStatusAccepted   = "Accepted"
)

// UserStory is a versioned requirement keyed by a US-###### business id.
type UserStory struct {
	versioning.RecordBase
	BusinessKey        string    `gorm:"type:varchar(20);not null;index" json:"business_key"`
	TenantID           uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ProjectKey         string    `gorm:"type:varchar(50);index" json:"project_key,omitempty"`
	ReleaseKey         string    `gorm:"type:varchar(50);index" json:"release_key,omitempty"`
	Title              string    `gorm:"type:varchar(200);not null" json:"title"`
	Status             string    `gorm:"type:varchar(20);not null" json:"status"`
	StoryPoints        *int      `json:"story_points,omitempty"`
	AcceptanceCriteria string    `gorm:"type:text" json:"acceptance_criteria,omitempty"`
	Description        string    `gorm:"type:text" json:"description,omitempty"`
}

// TableName returns the table name for GORM
func (UserStory) TableName() string {
	return "user_stories"
}

// LogicalKey returns the business key shared by all versions of the story
func (s *UserStory) LogicalKey() string {
	return s.BusinessKey
}

// Tenant returns the owning tenant of the chain
func (s *UserStory) Tenant() uuid.UUID {
	return s.TenantID
}

// NewUserStory creates version 1 of a user story
func NewUserStory(tenantID uuid.UUID, businessKey, projectKey, title, description string) (*UserStory, error) {
	if businessKey == "" {
		return nil, shared.NewDomainError("INVALID_BUSINESS_KEY", "User story business key cannot be empty")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_STORY_TITLE", "User story title cannot be empty")
	}

	return &UserStory{
		RecordBase:  versioning.NewRecordBase(time.Now()),
		BusinessKey: businessKey,
		TenantID:    tenantID,
		ProjectKey:  projectKey,
		Title:       title,
		Status:      StoryStatusDraft,
		Description: description,
	}, nil
}

// SolutionStory is a versioned technical work package keyed by a SS-######
// business id, optionally tracing back to the user story it implements.
type SolutionStory struct {
	versioning.RecordBase
	BusinessKey  string    `gorm:"type:varchar(20);not null;index" json:"business_key"`
	TenantID     uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ProjectKey   string    `gorm:"type:varchar(50);index" json:"project_key,omitempty"`
	UserStoryKey string    `gorm:"type:varchar(20);index" json:"user_story_key,omitempty"`
	Title        string    `gorm:"type:varchar(200);not null" json:"title"`
	Status       string    `gorm:"type:varchar(20);not null" json:"status"`
	Component    string    `gorm:"type:varchar(100)" json:"component,omitempty"`
	Description  string    `gorm:"type:text" json:"description,omitempty"`
}

// TableName returns the table name for GORM
func (SolutionStory) TableName() string {
	return "solution_stories"
}

// LogicalKey returns the business key shared by all versions of the story
func (s *SolutionStory) LogicalKey() string {
	return s.BusinessKey
}

// Tenant returns the owning tenant of the chain
func (s *SolutionStory) Tenant() uuid.UUID {
	return s.TenantID
}

// NewSolutionStory creates version 1 of a solution story
func NewSolutionStory(tenantID uuid.UUID, businessKey, projectKey, userStoryKey, title, description string) (*SolutionStory, error) {
	if businessKey == "" {
		return nil, shared.NewDomainError("INVALID_BUSINESS_KEY", "Solution story business key cannot be empty")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_STORY_TITLE", "Solution story title cannot be empty")
	}

	return &SolutionStory{
		RecordBase:   versioning.NewRecordBase(time.Now()),
		BusinessKey:  businessKey,
		TenantID:     tenantID,
		ProjectKey:   projectKey,
		UserStoryKey: userStoryKey,
		Title:        title,
		Status:       StoryStatusDraft,
		Description:  description,
	}, nil
}
