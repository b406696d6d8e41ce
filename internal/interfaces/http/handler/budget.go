package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	budgetapp "github.com/projops/backend/internal/application/budget"
	"github.com/projops/backend/internal/domain/shared"
	"github.com/projops/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// BudgetHandler handles budget line and allocation endpoints
type BudgetHandler struct {
	BaseHandler
	lineService       *budgetapp.BudgetLineService
	allocationService *budgetapp.AllocationService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(
	lineService *budgetapp.BudgetLineService,
	allocationService *budgetapp.AllocationService,
) *BudgetHandler {
	return &BudgetHandler{
		lineService:       lineService,
		allocationService: allocationService,
	}
}

// RegisterRoutes registers budget routes
func (h *BudgetHandler) RegisterRoutes(rg *gin.RouterGroup) {
	lines := rg.Group("/budget-lines")
	{
		lines.POST("", h.CreateLine)
		lines.GET("/:key", h.GetLine)
		lines.GET("/:key/history", h.GetLineHistory)
		lines.GET("/:key/balance", h.GetLineBalance)
		lines.POST("/:key/allocations", h.AddAllocation)
		lines.GET("/:key/allocations", h.ListAllocations)
	}

	allocations := rg.Group("/allocations")
	{
		allocations.PUT("/:id", h.UpdateAllocation)
		allocations.DELETE("/:id", h.DeleteAllocation)
	}
}

// CreateBudgetLineRequest represents a request to create a budget line
type CreateBudgetLineRequest struct {
	Name           string          `json:"name" binding:"required,min=1,max=200"`
	FiscalYear     int             `json:"fiscal_year" binding:"required,min=2000,max=2100"`
	ApprovedAmount decimal.Decimal `json:"approved_amount" binding:"required"`
	Currency       string          `json:"currency" binding:"required,len=3"`
	Remarks        string          `json:"remarks"`
}

// CreateLine opens a new budget line chain
func (h *BudgetHandler) CreateLine(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	var req CreateBudgetLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	line, err := h.lineService.CreateBudgetLine(c.Request.Context(), principal, budgetapp.CreateBudgetLineRequest{
		Name:           req.Name,
		FiscalYear:     req.FiscalYear,
		ApprovedAmount: req.ApprovedAmount,
		Currency:       req.Currency,
		Remarks:        req.Remarks,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, line)
}

// GetLine returns the current version of a budget line
func (h *BudgetHandler) GetLine(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	line, err := h.lineService.GetBudgetLine(c.Request.Context(), principal, c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, line)
}

// GetLineBalance returns the admission balance of a budget line
func (h *BudgetHandler) GetLineBalance(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	balance, err := h.lineService.GetBudgetLineBalance(c.Request.Context(), principal, c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, balance)
}

// GetLineHistory returns every version of a budget line ordered by start
// marker
func (h *BudgetHandler) GetLineHistory(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	history, err := h.lineService.GetBudgetLineHistory(c.Request.Context(), principal, c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, history)
}

// AddAllocationRequest represents a request to record an allocation.
// Exactly one of system_id and system_name identifies the target system.
type AddAllocationRequest struct {
	VendorName string          `json:"vendor_name" binding:"required,min=1,max=200"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	SystemID   *uuid.UUID      `json:"system_id"`
	SystemName string          `json:"system_name"`
	Remarks    string          `json:"remarks"`
}

// AddAllocation records an allocation against a budget line
func (h *BudgetHandler) AddAllocation(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	var req AddAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	allocation, err := h.allocationService.AddAllocation(c.Request.Context(), principal, budgetapp.AddAllocationRequest{
		BudgetLineKey: c.Param("key"),
		VendorName:    req.VendorName,
		Amount:        req.Amount,
		SystemID:      req.SystemID,
		SystemName:    req.SystemName,
		Remarks:       req.Remarks,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, allocation)
}

// UpdateAllocationRequest represents a request to edit an allocation
type UpdateAllocationRequest struct {
	VendorName string          `json:"vendor_name" binding:"required,min=1,max=200"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	SystemID   *uuid.UUID      `json:"system_id"`
	SystemName string          `json:"system_name"`
	Remarks    string          `json:"remarks"`
}

// UpdateAllocation edits an allocation, revalidating it against the line
func (h *BudgetHandler) UpdateAllocation(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid allocation id")
		return
	}

	var req UpdateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	allocation, err := h.allocationService.UpdateAllocation(c.Request.Context(), principal, id, budgetapp.UpdateAllocationRequest{
		VendorName: req.VendorName,
		Amount:     req.Amount,
		SystemID:   req.SystemID,
		SystemName: req.SystemName,
		Remarks:    req.Remarks,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, allocation)
}

// DeleteAllocation removes an allocation
func (h *BudgetHandler) DeleteAllocation(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid allocation id")
		return
	}

	if err := h.allocationService.DeleteAllocation(c.Request.Context(), principal, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListAllocations returns the allocations of a budget line
func (h *BudgetHandler) ListAllocations(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	allocations, err := h.allocationService.ListAllocations(c.Request.Context(), principal, c.Param("key"), shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, allocations)
}
