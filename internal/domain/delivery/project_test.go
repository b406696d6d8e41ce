package delivery

import (
	"testing"

	"github.com/google/uuid"
	"github.com/projops/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestNewProject(t *testing.T) {
	tenantID := uuid.New()

	p, err := NewProject(tenantID, "Apollo", "ACME-42", "platform rebuild")

	assert.NoError(t, err)
	assert.Equal(t, tenantID, p.TenantID)
	assert.NotEmpty(t, p.ChainKey)
	assert.Equal(t, ProjectStatusActive, p.Status)
	assert.True(t, p.IsCurrent())
	assert.Equal(t, p.ChainKey, p.LogicalKey())
}

func TestNewProject_EmptyName(t *testing.T) {
	_, err := NewProject(uuid.New(), "", "", "")

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PROJECT_NAME", domainErr.Code)
}

func TestNewProjectTeam(t *testing.T) {
	tenantID := uuid.New()

	a, err := NewProjectTeam(tenantID, "proj-key", "dev@example.com", "Engineer", 80)

	assert.NoError(t, err)
	assert.Equal(t, "proj-key", a.ProjectKey)
	assert.Equal(t, 80, a.AllocationPercent)
	assert.True(t, a.IsCurrent())
}

func TestNewProjectTeam_InvalidAllocation(t *testing.T) {
	for _, percent := range []int{-1, 101} {
		_, err := NewProjectTeam(uuid.New(), "proj-key", "dev@example.com", "Engineer", percent)

		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_ALLOCATION_PERCENT", domainErr.Code)
	}
}

func TestNewProjectTeam_MissingProject(t *testing.T) {
	_, err := NewProjectTeam(uuid.New(), "", "dev@example.com", "Engineer", 50)

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PROJECT_REFERENCE", domainErr.Code)
}
