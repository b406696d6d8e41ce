package budget

import (
	"testing"

	"github.com/google/uuid"
	"github.com/projops/backend/internal/domain/shared"
	"github.com/projops/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
)

func TestNewAllocation_WithSystemName(t *testing.T) {
	tenantID := uuid.New()

	a, err := NewAllocation(tenantID, "line-1", "Acme", testMoney(t, "1000", valueobject.USD), nil, "Billing Portal", "")

	assert.NoError(t, err)
	assert.Equal(t, tenantID, a.TenantID)
	assert.Equal(t, "line-1", a.BudgetLineKey)
	assert.Nil(t, a.SystemID)
	assert.Equal(t, "Billing Portal", a.SystemName)
}

func TestNewAllocation_WithSystemID(t *testing.T) {
	systemID := uuid.New()

	a, err := NewAllocation(uuid.New(), "line-1", "Acme", testMoney(t, "1000", valueobject.USD), &systemID, "", "")

	assert.NoError(t, err)
	assert.Equal(t, systemID, *a.SystemID)
	assert.Empty(t, a.SystemName)
}

func TestNewAllocation_BothSystemReferences(t *testing.T) {
	systemID := uuid.New()

	_, err := NewAllocation(uuid.New(), "line-1", "Acme", testMoney(t, "1000", valueobject.USD), &systemID, "Billing Portal", "")

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_SYSTEM_REFERENCE", domainErr.Code)
}

func TestNewAllocation_NeitherSystemReference(t *testing.T) {
	_, err := NewAllocation(uuid.New(), "line-1", "Acme", testMoney(t, "1000", valueobject.USD), nil, "", "")

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_SYSTEM_REFERENCE", domainErr.Code)
}

func TestNewAllocation_EmptyVendor(t *testing.T) {
	_, err := NewAllocation(uuid.New(), "line-1", "", testMoney(t, "1000", valueobject.USD), nil, "Billing Portal", "")

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_VENDOR", domainErr.Code)
}

func TestNewAllocation_NonPositiveAmount(t *testing.T) {
	_, err := NewAllocation(uuid.New(), "line-1", "Acme", testMoney(t, "0", valueobject.USD), nil, "Billing Portal", "")

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
}

func TestNewAllocation_MissingLine(t *testing.T) {
	_, err := NewAllocation(uuid.New(), "", "Acme", testMoney(t, "1000", valueobject.USD), nil, "Billing Portal", "")

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_SCOPE", domainErr.Code)
}
