package procurement

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/projops/backend/internal/domain/ledger"
	"github.com/projops/backend/internal/domain/procurement"
	"github.com/projops/backend/internal/domain/shared"
	"github.com/projops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockPurchaseOrderRepository is a mock implementation of PurchaseOrderRepository
type MockPurchaseOrderRepository struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*procurement.PurchaseOrder, error) {
	args := m.Called(ctx, tenantID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]procurement.PurchaseOrder, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPurchaseOrderRepository) ExistsByNumber(ctx context.Context, tenantID uuid.UUID, number string) (bool, error) {
	args := m.Called(ctx, tenantID, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockPurchaseOrderRepository) Save(ctx context.Context, po *procurement.PurchaseOrder) error {
	args := m.Called(ctx, po)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) FindMilestoneByID(ctx context.Context, tenantID, id uuid.UUID) (*procurement.Milestone, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.Milestone), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindMilestoneByName(ctx context.Context, tenantID, purchaseOrderID uuid.UUID, name string) (*procurement.Milestone, error) {
	args := m.Called(ctx, tenantID, purchaseOrderID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.Milestone), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindMilestones(ctx context.Context, tenantID, purchaseOrderID uuid.UUID) ([]procurement.Milestone, error) {
	args := m.Called(ctx, tenantID, purchaseOrderID)
	return args.Get(0).([]procurement.Milestone), args.Error(1)
}

func (m *MockPurchaseOrderRepository) SaveMilestone(ctx context.Context, milestone *procurement.Milestone) error {
	args := m.Called(ctx, milestone)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) DeleteMilestone(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockConsumptionRepository is a mock implementation of ConsumptionRepository
type MockConsumptionRepository struct {
	mock.Mock
}

func (m *MockConsumptionRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*procurement.Consumption, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.Consumption), args.Error(1)
}

func (m *MockConsumptionRepository) FindByPurchaseOrder(ctx context.Context, tenantID, purchaseOrderID uuid.UUID, filter shared.Filter) ([]procurement.Consumption, error) {
	args := m.Called(ctx, tenantID, purchaseOrderID, filter)
	return args.Get(0).([]procurement.Consumption), args.Error(1)
}

func (m *MockConsumptionRepository) Save(ctx context.Context, c *procurement.Consumption) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockConsumptionRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockConsumptionRepository) SumActiveAmount(ctx context.Context, tenantID, purchaseOrderID uuid.UUID, milestoneID *uuid.UUID, excludeID *uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, purchaseOrderID, milestoneID, excludeID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockSRNRepository is a mock implementation of SRNRepository
type MockSRNRepository struct {
	mock.Mock
}

func (m *MockSRNRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*procurement.SRN, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.SRN), args.Error(1)
}

func (m *MockSRNRepository) FindByPurchaseOrder(ctx context.Context, tenantID, purchaseOrderID uuid.UUID, filter shared.Filter) ([]procurement.SRN, error) {
	args := m.Called(ctx, tenantID, purchaseOrderID, filter)
	return args.Get(0).([]procurement.SRN), args.Error(1)
}

func (m *MockSRNRepository) Save(ctx context.Context, s *procurement.SRN) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSRNRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockSRNRepository) SumActiveAmount(ctx context.Context, tenantID, purchaseOrderID uuid.UUID, milestoneID *uuid.UUID, excludeID *uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, purchaseOrderID, milestoneID, excludeID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// Verify interface compliance
var _ procurement.PurchaseOrderRepository = (*MockPurchaseOrderRepository)(nil)
var _ procurement.ConsumptionRepository = (*MockConsumptionRepository)(nil)
var _ procurement.SRNRepository = (*MockSRNRepository)(nil)

// =============================================================================
// Test Helper Functions
// =============================================================================

func newTestPrincipal() shared.Principal {
	return shared.NewPrincipal(
		uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		"editor@example.com",
	)
}

func createTestPO(t *testing.T, tenantID uuid.UUID, approved string) *procurement.PurchaseOrder {
	t.Helper()
	amount, err := valueobject.NewMoneyFromString(approved, valueobject.USD)
	require.NoError(t, err)
	po, err := procurement.NewPurchaseOrder(tenantID, "PO-2025-001", "Platform build-out", "Acme Consulting", amount, nil, "")
	require.NoError(t, err)
	return po
}

func createTestMilestone(t *testing.T, po *procurement.PurchaseOrder, name, amount string) *procurement.Milestone {
	t.Helper()
	money, err := valueobject.NewMoneyFromString(amount, po.Currency)
	require.NoError(t, err)
	milestone, err := procurement.NewMilestone(po, name, money, nil, nil)
	require.NoError(t, err)
	return milestone
}

var nilUUIDPtr *uuid.UUID

// =============================================================================
// ConsumptionService Tests
// =============================================================================

func TestConsumptionService_AddConsumption_Success(t *testing.T) {
	mockPORepo := new(MockPurchaseOrderRepository)
	mockRepo := new(MockConsumptionRepository)
	service := NewConsumptionService(mockPORepo, mockRepo)

	ctx := context.Background()
	principal := newTestPrincipal()
	po := createTestPO(t, principal.TenantID, "10000")

	mockPORepo.On("FindByNumber", mock.Anything, principal.TenantID, po.Number).Return(po, nil)
	mockRepo.On("SumActiveAmount", mock.Anything, principal.TenantID, po.ID, nilUUIDPtr, nilUUIDPtr).
		Return(decimal.NewFromInt(2000), nil)
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*procurement.Consumption")).Return(nil)

	result, err := service.AddConsumption(ctx, principal, AddConsumptionRequest{
		PONumber: po.Number,
		Amount:   decimal.NewFromInt(3000),
		Currency: "USD",
		Type:     procurement.ConsumptionTypeTM,
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, po.ID, result.PurchaseOrderID)
	assert.Nil(t, result.MilestoneID)
	assert.Equal(t, "editor@example.com", result.RecordedBy)
	mockPORepo.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestConsumptionService_AddConsumption_CapacityExceeded(t *testing.T) {
	mockPORepo := new(MockPurchaseOrderRepository)
	mockRepo := new(MockConsumptionRepository)
	service := NewConsumptionService(mockPORepo, mockRepo)

	ctx := context.Background()
	principal := newTestPrincipal()
	po := createTestPO(t, principal.TenantID, "10000")

	mockPORepo.On("FindByNumber", mock.Anything, principal.TenantID, po.Number).Return(po, nil)
	mockRepo.On("SumActiveAmount", mock.Anything, principal.TenantID, po.ID, nilUUIDPtr, nilUUIDPtr).
		Return(decimal.NewFromInt(8000), nil)

	result, err := service.AddConsumption(ctx, principal, AddConsumptionRequest{
		PONumber: po.Number,
		Amount:   decimal.NewFromInt(3000),
		Currency: "USD",
		Type:     procurement.ConsumptionTypeFixed,
	})

	assert.Nil(t, result)
	var capacityErr *ledger.CapacityExceededError
	require.ErrorAs(t, err, &capacityErr)
	assert.Equal(t, po.Number, capacityErr.ScopeKey)
	assert.Empty(t, capacityErr.Narrowing)
	assert.True(t, capacityErr.Requested.Equal(decimal.NewFromInt(3000)))
	assert.True(t, capacityErr.Available.Equal(decimal.NewFromInt(2000)), "error must carry the remaining amount")
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestConsumptionService_AddConsumption_ExactFit(t *testing.T) {
	mockPORepo := new(MockPurchaseOrderRepository)
	mockRepo := new(MockConsumptionRepository)
	service := NewConsumptionService(mockPORepo, mockRepo)

	ctx := context.Background()
	principal := newTestPrincipal()
	po := createTestPO(t, principal.TenantID, "10000")

	mockPORepo.On("FindByNumber", mock.Anything, principal.TenantID, po.Number).Return(po, nil)
	mockRepo.On("SumActiveAmount", mock.Anything, principal.TenantID, po.ID, nilUUIDPtr, nilUUIDPtr).
		Return(decimal.NewFromInt(8000), nil)
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*procurement.Consumption")).Return(nil)

	result, err := service.AddConsumption(ctx, principal, AddConsumptionRequest{
		PONumber: po.Number,
		Amount:   decimal.NewFromInt(2000),
		Currency: "USD",
		Type:     procurement.ConsumptionTypeFixed,
	})

	assert.NoError(t, err, "a draw-down that lands exactly on the capacity is admitted")
	assert.NotNil(t, result)
}

func TestConsumptionService_AddConsumption_CurrencyMismatch(t *testing.T) {
	mockPORepo := new(MockPurchaseOrderRepository)
	mockRepo := new(MockConsumptionRepository)
	service := NewConsumptionService(mockPORepo, mockRepo)

	ctx := context.Background()
	principal := newTestPrincipal()
	po := createTestPO(t, principal.TenantID, "10000")

	mockPORepo.On("FindByNumber", mock.Anything, principal.TenantID, po.Number).Return(po, nil)

	result, err := service.AddConsumption(ctx, principal, AddConsumptionRequest{
		PONumber: po.Number,
		Amount:   decimal.NewFromInt(100),
		Currency: "EUR",
		Type:     procurement.ConsumptionTypeFixed,
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrCurrencyMismatch)
	mockRepo.AssertNotCalled(t, "SumActiveAmount", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConsumptionService_AddConsumption_ScopeNotFound(t *testing.T) {
	mockPORepo := new(MockPurchaseOrderRepository)
	mockRepo := new(MockConsumptionRepository)
	service := NewConsumptionService(mockPORepo, mockRepo)

	ctx := context.Background()
	principal := newTestPrincipal()

	mockPORepo.On("FindByNumber", mock.Anything, principal.TenantID, "PO-MISSING").Return(nil, nil)

	result, err := service.AddConsumption(ctx, principal, AddConsumptionRequest{
		PONumber: "PO-MISSING",
		Amount:   decimal.NewFromInt(100),
		Currency: "USD",
		Type:     procurement.ConsumptionTypeFixed,
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrScopeNotFound)
}

func TestConsumptionService_AddConsumption_NarrowingNotFound(t *testing.T) {
	mockPORepo := new(MockPurchaseOrderRepository)
	mockRepo := new(MockConsumptionRepository)
	service := NewConsumptionService(mockPORepo, mockRepo)

	ctx := context.Background()
	principal := newTestPrincipal()
	po := createTestPO(t, principal.TenantID, "10000")

	mockPORepo.On("FindByNumber", mock.Anything, principal.TenantID, po.Number).Return(po, nil)
	mockPORepo.On("FindMilestoneByName", mock.Anything, principal.TenantID, po.ID, "Nope").Return(nil, nil)

	result, err := service.AddConsumption(ctx, principal, AddConsumptionRequest{
		PONumber:      po.Number,
		MilestoneName: "Nope",
		Amount:        decimal.NewFromInt(100),
		Currency:      "USD",
		Type:          procurement.ConsumptionTypeFixed,
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNarrowingNotFound)
}

func TestConsumptionService_AddConsumption_MilestonePoolIsIndependent(t *testing.T) {
	mockPORepo := new(MockPurchaseOrderRepository)
	mockRepo := new(MockConsumptionRepository)
	service := NewConsumptionService(mockPORepo, mockRepo)

	ctx := context.Background()
	principal := newTestPrincipal()
	po := createTestPO(t, principal.TenantID, "10000")
	milestone := createTestMilestone(t, po, "Phase 1", "300")

	mockPORepo.On("FindByNumber", mock.Anything, principal.TenantID, po.Number).Return(po, nil)
	mockPORepo.On("FindMilestoneByName", mock.Anything, principal.TenantID, po.ID, "Phase 1").Return(milestone, nil)
	mockRepo.On("SumActiveAmount", mock.Anything, principal.TenantID, po.ID, &milestone.ID, nilUUIDPtr).
		Return(decimal.Zero, nil)

	// The order has plenty of headroom, but the narrowed draw-down is
	// validated against the milestone pool only.
	result, err := service.AddConsumption(ctx, principal, AddConsumptionRequest{
		PONumber:      po.Number,
		MilestoneName: "Phase 1",
		Amount:        decimal.NewFromInt(500),
		Currency:      "USD",
		Type:          procurement.ConsumptionTypeTM,
	})

	assert.Nil(t, result)
	var capacityErr *ledger.CapacityExceededError
	require.ErrorAs(t, err, &capacityErr)
	assert.Equal(t, "Phase 1", capacityErr.Narrowing)
	assert.True(t, capacityErr.Available.Equal(decimal.NewFromInt(300)))
}

func TestConsumptionService_AddConsumption_NarrowedSuccess(t *testing.T) {
	mockPORepo := new(MockPurchaseOrderRepository)
	mockRepo := new(MockConsumptionRepository)
	service := NewConsumptionService(mockPORepo, mockRepo)

	ctx := context.Background()
	principal := newTestPrincipal()
	po := createTestPO(t, principal.TenantID, "10000")
	milestone := createTestMilestone(t, po, "Phase 1", "3000")

	mockPORepo.On("FindByNumber", mock.Anything, principal.TenantID, po.Number).Return(po, nil)
	mockPORepo.On("FindMilestoneByName", mock.Anything, principal.TenantID, po.ID, "Phase 1").Return(milestone, nil)
	mockRepo.On("SumActiveAmount", mock.Anything, principal.TenantID, po.ID, &milestone.ID, nilUUIDPtr).
		Return(decimal.NewFromInt(1000), nil)
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*procurement.Consumption")).Return(nil)

	result, err := service.AddConsumption(ctx, principal, AddConsumptionRequest{
		PONumber:      po.Number,
		MilestoneName: "Phase 1",
		Amount:        decimal.NewFromInt(2000),
		Currency:      "USD",
		Type:          procurement.ConsumptionTypeTM,
	})

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, milestone.ID, *result.MilestoneID)
	mockRepo.AssertExpectations(t)
}

func TestConsumptionService_UpdateConsumption_ExcludesOwnRowFromSum(t *testing.T) {
	mockPORepo := new(MockPurchaseOrderRepository)
	mockRepo := new(MockConsumptionRepository)
	service := NewConsumptionService(mockPORepo, mockRepo)

	ctx := context.Background()
	principal := newTestPrincipal()
	po := createTestPO(t, principal.TenantID, "10000")

	amount, _ := valueobject.NewMoneyFromString("4000", valueobject.USD)
	existing, err := procurement.NewConsumption(principal.TenantID, po.ID, nil, amount, procurement.ConsumptionTypeFixed, "", "")
	require.NoError(t, err)
	id := existing.ID

	mockRepo.On("FindByID", mock.Anything, principal.TenantID, id).Return(existing, nil)
	mockPORepo.On("FindByID", mock.Anything, principal.TenantID, po.ID).Return(po, nil)
	// The sum of the other rows is 5000; growing this row from 4000 to 5000
	// still fits because its old amount is not counted against it.
	mockRepo.On("SumActiveAmount", mock.Anything, principal.TenantID, po.ID, nilUUIDPtr, &id).
		Return(decimal.NewFromInt(5000), nil)
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*procurement.Consumption")).Return(nil)

	result, err := service.UpdateConsumption(ctx, principal, id, UpdateConsumptionRequest{
		Amount: decimal.NewFromInt(5000),
		Type:   procurement.ConsumptionTypeFixed,
	})

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Amount.Equal(decimal.NewFromInt(5000)))
	mockRepo.AssertExpectations(t)
}

func TestConsumptionService_UpdateConsumption_InvalidTypeBeforeAdmission(t *testing.T) {
	mockPORepo := new(MockPurchaseOrderRepository)
	mockRepo := new(MockConsumptionRepository)
	service := NewConsumptionService(mockPORepo, mockRepo)

	ctx := context.Background()
	principal := newTestPrincipal()
	po := createTestPO(t, principal.TenantID, "10000")

	amount, _ := valueobject.NewMoneyFromString("4000", valueobject.USD)
	existing, err := procurement.NewConsumption(principal.TenantID, po.ID, nil, amount, procurement.ConsumptionTypeFixed, "", "")
	require.NoError(t, err)

	mockRepo.On("FindByID", mock.Anything, principal.TenantID, existing.ID).Return(existing, nil)
	mockPORepo.On("FindByID", mock.Anything, principal.TenantID, po.ID).Return(po, nil)

	// The amount would also fail admission, but the type error wins: the
	// request is rejected before the capacity is even consulted.
	result, err := service.UpdateConsumption(ctx, principal, existing.ID, UpdateConsumptionRequest{
		Amount: decimal.NewFromInt(50000),
		Type:   procurement.ConsumptionType("BOGUS"),
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CONSUMPTION_TYPE", domainErr.Code)
	mockRepo.AssertNotCalled(t, "SumActiveAmount", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestConsumptionService_UpdateConsumption_NotFound(t *testing.T) {
	mockPORepo := new(MockPurchaseOrderRepository)
	mockRepo := new(MockConsumptionRepository)
	service := NewConsumptionService(mockPORepo, mockRepo)

	ctx := context.Background()
	principal := newTestPrincipal()
	id := uuid.New()

	mockRepo.On("FindByID", mock.Anything, principal.TenantID, id).Return(nil, nil)

	result, err := service.UpdateConsumption(ctx, principal, id, UpdateConsumptionRequest{
		Amount: decimal.NewFromInt(100),
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestConsumptionService_UpdateConsumption_NonPositiveAmount(t *testing.T) {
	mockPORepo := new(MockPurchaseOrderRepository)
	mockRepo := new(MockConsumptionRepository)
	service := NewConsumptionService(mockPORepo, mockRepo)

	ctx := context.Background()
	principal := newTestPrincipal()
	po := createTestPO(t, principal.TenantID, "10000")

	amount, _ := valueobject.NewMoneyFromString("4000", valueobject.USD)
	existing, err := procurement.NewConsumption(principal.TenantID, po.ID, nil, amount, procurement.ConsumptionTypeFixed, "", "")
	require.NoError(t, err)

	mockRepo.On("FindByID", mock.Anything, principal.TenantID, existing.ID).Return(existing, nil)
	mockPORepo.On("FindByID", mock.Anything, principal.TenantID, po.ID).Return(po, nil)

	result, err := service.UpdateConsumption(ctx, principal, existing.ID, UpdateConsumptionRequest{
		Amount: decimal.Zero,
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
}

func TestConsumptionService_DeleteConsumption_Success(t *testing.T) {
	mockPORepo := new(MockPurchaseOrderRepository)
	mockRepo := new(MockConsumptionRepository)
	service := NewConsumptionService(mockPORepo, mockRepo)

	ctx := context.Background()
	principal := newTestPrincipal()
	po := createTestPO(t, principal.TenantID, "10000")

	amount, _ := valueobject.NewMoneyFromString("4000", valueobject.USD)
	existing, err := procurement.NewConsumption(principal.TenantID, po.ID, nil, amount, procurement.ConsumptionTypeFixed, "", "")
	require.NoError(t, err)

	mockRepo.On("FindByID", mock.Anything, principal.TenantID, existing.ID).Return(existing, nil)
	mockRepo.On("Delete", mock.Anything, principal.TenantID, existing.ID).Return(nil)

	err = service.DeleteConsumption(ctx, principal, existing.ID)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestConsumptionService_DeleteConsumption_NotFound(t *testing.T) {
	mockPORepo := new(MockPurchaseOrderRepository)
	mockRepo := new(MockConsumptionRepository)
	service := NewConsumptionService(mockPORepo, mockRepo)

	ctx := context.Background()
	principal := newTestPrincipal()
	id := uuid.New()

	mockRepo.On("FindByID", mock.Anything, principal.TenantID, id).Return(nil, nil)

	err := service.DeleteConsumption(ctx, principal, id)

	assert.ErrorIs(t, err, shared.ErrNotFound)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}
