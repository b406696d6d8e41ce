package budget

import (
	"context"
	"testing"

	"github.com/projops/backend/internal/domain/budget"
	"github.com/projops/backend/internal/domain/versioning"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// BudgetLineService Tests
// =============================================================================

func TestBudgetLineService_CreateBudgetLine_Success(t *testing.T) {
	mockStore := new(MockBudgetLineStore)
	service := NewBudgetLineService(mockStore)

	ctx := context.Background()
	principal := newTestPrincipal()
	stored := createTestLine(t, principal.TenantID, "50000")

	mockStore.On("CreateVersion", mock.Anything, mock.AnythingOfType("*budget.BudgetLine"), mock.AnythingOfType("time.Time")).
		Return(stored, nil)

	result, err := service.CreateBudgetLine(ctx, principal, CreateBudgetLineRequest{
		Name:           "Cloud infrastructure",
		FiscalYear:     2026,
		ApprovedAmount: decimal.NewFromInt(50000),
		Currency:       "USD",
	})

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsCurrent())
	assert.True(t, result.AvailableAmount.Equal(decimal.NewFromInt(50000)))
	// The first version opens at the row's own start marker.
	call := mockStore.Calls[0]
	row := call.Arguments.Get(1).(*budget.BudgetLine)
	at := call.Arguments.Get(2)
	assert.Equal(t, row.StartMarker, at)
	mockStore.AssertExpectations(t)
}

func TestBudgetLineService_CreateBudgetLine_InvalidCurrency(t *testing.T) {
	mockStore := new(MockBudgetLineStore)
	service := NewBudgetLineService(mockStore)

	ctx := context.Background()
	principal := newTestPrincipal()

	result, err := service.CreateBudgetLine(ctx, principal, CreateBudgetLineRequest{
		Name:           "Cloud infrastructure",
		FiscalYear:     2026,
		ApprovedAmount: decimal.NewFromInt(50000),
		Currency:       "XXX",
	})

	assert.Nil(t, result)
	assert.Error(t, err)
	mockStore.AssertNotCalled(t, "CreateVersion", mock.Anything, mock.Anything, mock.Anything)
}

func TestBudgetLineService_GetBudgetLine_ScopedToPrincipalTenant(t *testing.T) {
	mockStore := new(MockBudgetLineStore)
	service := NewBudgetLineService(mockStore)

	ctx := context.Background()
	principal := newTestPrincipal()

	// The lookup carries the principal's tenant, so a key that only exists
	// under another tenant reads as an empty chain.
	mockStore.On("Current", mock.Anything, principal.TenantID, "other-tenant-key").
		Return(nil, versioning.ErrNoCurrentVersion)

	result, err := service.GetBudgetLine(ctx, principal, "other-tenant-key")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, versioning.ErrNoCurrentVersion)
	mockStore.AssertExpectations(t)
}

func TestBudgetLineService_GetBudgetLine_NoCurrentVersion(t *testing.T) {
	mockStore := new(MockBudgetLineStore)
	service := NewBudgetLineService(mockStore)

	ctx := context.Background()
	principal := newTestPrincipal()

	mockStore.On("Current", mock.Anything, principal.TenantID, "missing-key").Return(nil, versioning.ErrNoCurrentVersion)

	result, err := service.GetBudgetLine(ctx, principal, "missing-key")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, versioning.ErrNoCurrentVersion)
}

func TestBudgetLineService_GetBudgetLineHistory_Success(t *testing.T) {
	mockStore := new(MockBudgetLineStore)
	service := NewBudgetLineService(mockStore)

	ctx := context.Background()
	principal := newTestPrincipal()
	line := createTestLine(t, principal.TenantID, "50000")

	mockStore.On("History", mock.Anything, principal.TenantID, line.LineKey).Return([]*budget.BudgetLine{line}, nil)

	history, err := service.GetBudgetLineHistory(ctx, principal, line.LineKey)

	assert.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestBudgetLineService_GetBudgetLineHistory_Empty(t *testing.T) {
	mockStore := new(MockBudgetLineStore)
	service := NewBudgetLineService(mockStore)

	ctx := context.Background()
	principal := newTestPrincipal()

	mockStore.On("History", mock.Anything, principal.TenantID, "missing-key").Return([]*budget.BudgetLine{}, nil)

	history, err := service.GetBudgetLineHistory(ctx, principal, "missing-key")

	assert.Nil(t, history)
	assert.ErrorIs(t, err, versioning.ErrNoCurrentVersion)
}

func TestBudgetLineService_GetBudgetLineBalance(t *testing.T) {
	mockStore := new(MockBudgetLineStore)
	service := NewBudgetLineService(mockStore)

	ctx := context.Background()
	principal := newTestPrincipal()
	line := createTestLine(t, principal.TenantID, "10000")
	line.UtilizedAmount = decimal.NewFromInt(4000)
	line.AvailableAmount = decimal.NewFromInt(6000)

	mockStore.On("Current", mock.Anything, principal.TenantID, line.LineKey).Return(line, nil)

	balance, err := service.GetBudgetLineBalance(ctx, principal, line.LineKey)

	assert.NoError(t, err)
	require.NotNil(t, balance)
	assert.True(t, balance.Capacity.Equal(decimal.NewFromInt(10000)))
	assert.True(t, balance.Used.Equal(decimal.NewFromInt(4000)))
	assert.True(t, balance.Available.Equal(decimal.NewFromInt(6000)))
}

// =============================================================================
// BudgetLineAmountProjector Tests
// =============================================================================

func TestBudgetLineAmountProjector_Refresh(t *testing.T) {
	mockStore := new(MockBudgetLineStore)
	mockRepo := new(MockAllocationRepository)
	projector := NewBudgetLineAmountProjector(mockStore, mockRepo)

	ctx := context.Background()
	principal := newTestPrincipal()
	line := createTestLine(t, principal.TenantID, "10000")

	mockRepo.On("SumActiveAmount", mock.Anything, principal.TenantID, line.LineKey, nilUUIDPtr).
		Return(decimal.NewFromInt(700), nil)
	mockStore.On("Edit", mock.Anything, principal.TenantID, line.LineKey, "editor@example.com", mock.AnythingOfType("func(*budget.BudgetLine)")).
		Return(line, nil)

	result, err := projector.Refresh(ctx, principal, line.LineKey)

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.UtilizedAmount.Equal(decimal.NewFromInt(700)))
	assert.True(t, result.AvailableAmount.Equal(decimal.NewFromInt(9300)), "available is derived from approved minus utilized")
	mockStore.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestBudgetLineAmountProjector_Refresh_SumFails(t *testing.T) {
	mockStore := new(MockBudgetLineStore)
	mockRepo := new(MockAllocationRepository)
	projector := NewBudgetLineAmountProjector(mockStore, mockRepo)

	ctx := context.Background()
	principal := newTestPrincipal()

	mockRepo.On("SumActiveAmount", mock.Anything, principal.TenantID, "line-key", nilUUIDPtr).
		Return(decimal.Zero, assert.AnError)

	result, err := projector.Refresh(ctx, principal, "line-key")

	assert.Nil(t, result)
	assert.Error(t, err)
	mockStore.AssertNotCalled(t, "Edit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
