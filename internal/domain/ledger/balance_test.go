package ledger

import (
	"testing"

	"github.com/projops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewBalance(t *testing.T) {
	capacity := decimal.NewFromInt(10000)
	used := decimal.NewFromInt(3500)

	b := NewBalance(capacity, used, valueobject.USD)

	assert.True(t, b.Capacity.Equal(capacity))
	assert.True(t, b.Used.Equal(used))
	assert.True(t, b.Available.Equal(decimal.NewFromInt(6500)))
	assert.Equal(t, valueobject.USD, b.Currency)
}

func TestNewBalance_Overdrawn(t *testing.T) {
	// A raced overdraw leaves a negative available; the balance reports it
	// as-is instead of clamping to zero.
	b := NewBalance(decimal.NewFromInt(1000), decimal.NewFromInt(1200), valueobject.EUR)

	assert.True(t, b.Available.Equal(decimal.NewFromInt(-200)))
}

func TestBalance_Admits(t *testing.T) {
	b := NewBalance(decimal.NewFromInt(1000), decimal.NewFromInt(400), valueobject.USD)

	assert.True(t, b.Admits(decimal.NewFromInt(600)), "exact fit should be admitted")
	assert.True(t, b.Admits(decimal.NewFromInt(599)))
	assert.False(t, b.Admits(decimal.NewFromInt(601)))
	assert.True(t, b.Admits(decimal.Zero))
}

func TestBalance_Admits_FractionalAmounts(t *testing.T) {
	b := NewBalance(decimal.RequireFromString("100.50"), decimal.RequireFromString("100.49"), valueobject.USD)

	assert.True(t, b.Admits(decimal.RequireFromString("0.01")))
	assert.False(t, b.Admits(decimal.RequireFromString("0.02")))
}

func TestCapacityExceededError_Error(t *testing.T) {
	b := NewBalance(decimal.NewFromInt(1000), decimal.NewFromInt(800), valueobject.USD)
	err := NewCapacityExceededError("PO-2025-001", "", decimal.NewFromInt(500), b)

	assert.Equal(t, "PO-2025-001", err.ScopeKey)
	assert.Empty(t, err.Narrowing)
	assert.True(t, err.Available.Equal(decimal.NewFromInt(200)))
	assert.Contains(t, err.Error(), "PO-2025-001")
	assert.Contains(t, err.Error(), "500.00 USD")
	assert.Contains(t, err.Error(), "200.00 USD")
}

func TestCapacityExceededError_Error_WithNarrowing(t *testing.T) {
	b := NewBalance(decimal.NewFromInt(300), decimal.NewFromInt(250), valueobject.EUR)
	err := NewCapacityExceededError("PO-2025-001", "Phase 1", decimal.NewFromInt(100), b)

	assert.Equal(t, "Phase 1", err.Narrowing)
	assert.Contains(t, err.Error(), "PO-2025-001/Phase 1")
}

func TestCeilingExceededError_Error(t *testing.T) {
	err := &CeilingExceededError{
		ScopeKey:  "line-1",
		Requested: decimal.NewFromInt(200000),
		Ceiling:   decimal.NewFromInt(100000),
	}

	assert.Contains(t, err.Error(), "line-1")
	assert.Contains(t, err.Error(), "200000.00")
	assert.Contains(t, err.Error(), "100000.00")
}
