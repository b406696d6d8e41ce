package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	procurementapp "github.com/projops/backend/internal/application/procurement"
	"github.com/projops/backend/internal/domain/shared"
	"github.com/projops/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// PurchaseOrderHandler handles purchase order and milestone endpoints
type PurchaseOrderHandler struct {
	BaseHandler
	poService      *procurementapp.PurchaseOrderService
	balanceService *procurementapp.BalanceService
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler
func NewPurchaseOrderHandler(
	poService *procurementapp.PurchaseOrderService,
	balanceService *procurementapp.BalanceService,
) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{
		poService:      poService,
		balanceService: balanceService,
	}
}

// RegisterRoutes registers purchase order routes
func (h *PurchaseOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/purchase-orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.GET("/:number", h.Get)
		orders.GET("/:number/balance", h.GetBalance)
		orders.POST("/:number/milestones", h.CreateMilestone)
	}
}

// CreatePurchaseOrderRequest represents a request to create a purchase order
type CreatePurchaseOrderRequest struct {
	Number         string          `json:"number" binding:"required,min=1,max=50"`
	Title          string          `json:"title" binding:"max=500"`
	VendorName     string          `json:"vendor_name" binding:"max=200"`
	ApprovedAmount decimal.Decimal `json:"approved_amount" binding:"required"`
	Currency       string          `json:"currency" binding:"required,len=3"`
	IssuedAt       *time.Time      `json:"issued_at"`
	Remarks        string          `json:"remarks"`
}

// Create creates a new purchase order
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	var req CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	po, err := h.poService.CreatePurchaseOrder(c.Request.Context(), principal, procurementapp.CreatePurchaseOrderRequest{
		Number:         req.Number,
		Title:          req.Title,
		VendorName:     req.VendorName,
		ApprovedAmount: req.ApprovedAmount,
		Currency:       req.Currency,
		IssuedAt:       req.IssuedAt,
		Remarks:        req.Remarks,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, po)
}

// Get returns a purchase order by its number
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	po, err := h.poService.GetPurchaseOrder(c.Request.Context(), principal, c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, po)
}

// List returns a page of purchase orders
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.poService.ListPurchaseOrders(c.Request.Context(), principal, shared.Filter{
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

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetBalance returns the remaining capacity of a purchase order pool.
// The milestone query parameter narrows the balance to one milestone;
// kind selects the consumption or srn pool.
func (h *PurchaseOrderHandler) GetBalance(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	kind := procurementapp.DrawDownKind(c.DefaultQuery("kind", string(procurementapp.DrawDownKindConsumption)))
	balance, err := h.balanceService.GetBalance(
		c.Request.Context(),
		principal,
		c.Param("number"),
		c.Query("milestone"),
		kind,
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, balance)
}

// CreateMilestoneRequest represents a request to add a milestone
type CreateMilestoneRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=200"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	DurationDays *int            `json:"duration_days" binding:"omitempty,min=1"`
	DueDate      *time.Time      `json:"due_date"`
}

// CreateMilestone adds a milestone to a purchase order
func (h *PurchaseOrderHandler) CreateMilestone(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	var req CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	milestone, err := h.poService.CreateMilestone(c.Request.Context(), principal, procurementapp.CreateMilestoneRequest{
		PONumber:     c.Param("number"),
		Name:         req.Name,
		Amount:       req.Amount,
		DurationDays: req.DurationDays,
		DueDate:      req.DueDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, milestone)
}
