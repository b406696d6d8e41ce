package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	procurementapp "github.com/projops/backend/internal/application/procurement"
	"github.com/projops/backend/internal/domain/shared"
	"github.com/projops/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// SRNHandler handles service receipt note endpoints
type SRNHandler struct {
	BaseHandler
	srnService *procurementapp.SRNService
}

// NewSRNHandler creates a new SRNHandler
func NewSRNHandler(srnService *procurementapp.SRNService) *SRNHandler {
	return &SRNHandler{srnService: srnService}
}

// RegisterRoutes registers receipt note routes
func (h *SRNHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/purchase-orders/:number/srns", h.Add)
	rg.GET("/purchase-orders/:number/srns", h.List)

	srns := rg.Group("/srns")
	{
		srns.PUT("/:id", h.Update)
		srns.DELETE("/:id", h.Delete)
	}
}

// AddSRNRequest represents a request to record a receipt note
type AddSRNRequest struct {
	Number        string          `json:"number" binding:"required,min=1,max=50"`
	MilestoneName string          `json:"milestone_name"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Currency      string          `json:"currency" binding:"required,len=3"`
	ReceivedAt    *time.Time      `json:"received_at"`
	Remarks       string          `json:"remarks"`
}

// Add records a receipt note against a purchase order
func (h *SRNHandler) Add(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	var req AddSRNRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	srn, err := h.srnService.AddSRN(c.Request.Context(), principal, procurementapp.AddSRNRequest{
		Number:        req.Number,
		PONumber:      c.Param("number"),
		MilestoneName: req.MilestoneName,
		Amount:        req.Amount,
		Currency:      req.Currency,
		ReceivedAt:    req.ReceivedAt,
		Remarks:       req.Remarks,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, srn)
}

// UpdateSRNRequest represents a request to edit a receipt note
type UpdateSRNRequest struct {
	MilestoneName string          `json:"milestone_name"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	ReceivedAt    *time.Time      `json:"received_at"`
	Remarks       string          `json:"remarks"`
}

// Update edits a receipt note, revalidating it against the scope capacity
func (h *SRNHandler) Update(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receipt note id")
		return
	}

	var req UpdateSRNRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	srn, err := h.srnService.UpdateSRN(c.Request.Context(), principal, id, procurementapp.UpdateSRNRequest{
		MilestoneName: req.MilestoneName,
		Amount:        req.Amount,
		ReceivedAt:    req.ReceivedAt,
		Remarks:       req.Remarks,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, srn)
}

// Delete removes a receipt note
func (h *SRNHandler) Delete(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receipt note id")
		return
	}

	if err := h.srnService.DeleteSRN(c.Request.Context(), principal, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// List returns the receipt notes of a purchase order
func (h *SRNHandler) List(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	srns, err := h.srnService.ListSRNs(c.Request.Context(), principal, c.Param("number"), shared.Filter{
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

	h.Success(c, srns)
}
