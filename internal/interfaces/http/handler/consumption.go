package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	procurementapp "github.com/projops/backend/internal/application/procurement"
	"github.com/projops/backend/internal/domain/procurement"
	"github.com/projops/backend/internal/domain/shared"
	"github.com/projops/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// ConsumptionHandler handles consumption draw-down endpoints
type ConsumptionHandler struct {
	BaseHandler
	consumptionService *procurementapp.ConsumptionService
}

// NewConsumptionHandler creates a new ConsumptionHandler
func NewConsumptionHandler(consumptionService *procurementapp.ConsumptionService) *ConsumptionHandler {
	return &ConsumptionHandler{consumptionService: consumptionService}
}

// RegisterRoutes registers consumption routes
func (h *ConsumptionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/purchase-orders/:number/consumptions", h.Add)
	rg.GET("/purchase-orders/:number/consumptions", h.List)

	consumptions := rg.Group("/consumptions")
	{
		consumptions.PUT("/:id", h.Update)
		consumptions.DELETE("/:id", h.Delete)
	}
}

// AddConsumptionRequest represents a request to record a consumption
type AddConsumptionRequest struct {
	MilestoneName   string          `json:"milestone_name"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Currency        string          `json:"currency" binding:"required,len=3"`
	Type            string          `json:"type" binding:"required,oneof=Fixed T&M Mixed"`
	WorkDescription string          `json:"work_description"`
	WorkPeriod      string          `json:"work_period"`
}

// Add records a consumption against a purchase order
func (h *ConsumptionHandler) Add(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	var req AddConsumptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	consumption, err := h.consumptionService.AddConsumption(c.Request.Context(), principal, procurementapp.AddConsumptionRequest{
		PONumber:        c.Param("number"),
		MilestoneName:   req.MilestoneName,
		Amount:          req.Amount,
		Currency:        req.Currency,
		Type:            procurement.ConsumptionType(req.Type),
		WorkDescription: req.WorkDescription,
		WorkPeriod:      req.WorkPeriod,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, consumption)
}

// UpdateConsumptionRequest represents a request to edit a consumption
type UpdateConsumptionRequest struct {
	MilestoneName   string          `json:"milestone_name"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Type            string          `json:"type" binding:"omitempty,oneof=Fixed T&M Mixed"`
	WorkDescription string          `json:"work_description"`
	WorkPeriod      string          `json:"work_period"`
}

// Update edits a consumption, revalidating it against the scope capacity
func (h *ConsumptionHandler) Update(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid consumption id")
		return
	}

	var req UpdateConsumptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	consumption, err := h.consumptionService.UpdateConsumption(c.Request.Context(), principal, id, procurementapp.UpdateConsumptionRequest{
		MilestoneName:   req.MilestoneName,
		Amount:          req.Amount,
		Type:            procurement.ConsumptionType(req.Type),
		WorkDescription: req.WorkDescription,
		WorkPeriod:      req.WorkPeriod,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, consumption)
}

// Delete removes a consumption
func (h *ConsumptionHandler) Delete(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid consumption id")
		return
	}

	if err := h.consumptionService.DeleteConsumption(c.Request.Context(), principal, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// List returns the consumptions of a purchase order
func (h *ConsumptionHandler) List(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	consumptions, err := h.consumptionService.ListConsumptions(c.Request.Context(), principal, c.Param("number"), shared.Filter{
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

	h.Success(c, consumptions)
}
