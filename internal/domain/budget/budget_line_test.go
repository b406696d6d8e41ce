package budget

import (
	"testing"

	"github.com/google/uuid"
	"github.com/projops/backend/internal/domain/shared"
	"github.com/projops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMoney(t *testing.T, amount string, currency valueobject.Currency) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyFromString(amount, currency)
	require.NoError(t, err)
	return m
}

func TestNewBudgetLine(t *testing.T) {
	tenantID := uuid.New()

	line, err := NewBudgetLine(tenantID, "Cloud infrastructure", 2026, testMoney(t, "50000", valueobject.USD), "")

	assert.NoError(t, err)
	assert.Equal(t, tenantID, line.TenantID)
	assert.NotEmpty(t, line.LineKey)
	assert.Equal(t, 2026, line.FiscalYear)
	assert.True(t, line.UtilizedAmount.IsZero())
	assert.True(t, line.AvailableAmount.Equal(decimal.NewFromInt(50000)))
	assert.True(t, line.IsCurrent())
	assert.Equal(t, line.LineKey, line.LogicalKey())
}

func TestNewBudgetLine_EmptyName(t *testing.T) {
	_, err := NewBudgetLine(uuid.New(), "", 2026, testMoney(t, "50000", valueobject.USD), "")

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_LINE_NAME", domainErr.Code)
}

func TestNewBudgetLine_NonPositiveAmount(t *testing.T) {
	_, err := NewBudgetLine(uuid.New(), "Cloud", 2026, testMoney(t, "0", valueobject.USD), "")

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
}

func TestNewBudgetLine_UnsupportedCurrency(t *testing.T) {
	_, err := NewBudgetLine(uuid.New(), "Cloud", 2026, testMoney(t, "100", "XXX"), "")

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CURRENCY", domainErr.Code)
}

func TestBudgetLine_Ceiling(t *testing.T) {
	line, err := NewBudgetLine(uuid.New(), "Cloud", 2026, testMoney(t, "50000", valueobject.USD), "")
	require.NoError(t, err)

	assert.True(t, line.Ceiling().Equal(decimal.NewFromInt(500000)), "ceiling is ten times the approved amount")
}
