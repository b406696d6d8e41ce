package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	deliveryapp "github.com/projops/backend/internal/application/delivery"
	"github.com/projops/backend/internal/domain/delivery"
)

// RidaHandler handles the RIDA register endpoints (risks, issues,
// dependencies, assumptions)
type RidaHandler struct {
	BaseHandler
	ridaService *deliveryapp.RecordService[*delivery.Rida]
}

// NewRidaHandler creates a new RidaHandler
func NewRidaHandler(ridaService *deliveryapp.RecordService[*delivery.Rida]) *RidaHandler {
	return &RidaHandler{ridaService: ridaService}
}

// RegisterRoutes registers RIDA routes
func (h *RidaHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ridas := rg.Group("/ridas")
	{
		ridas.POST("", h.Create)
		ridas.GET("/:key", h.Get)
		ridas.GET("/:key/history", h.History)
		ridas.PUT("/:key", h.Edit)
		ridas.DELETE("/:key", h.Delete)
	}
}

// CreateRidaRequest represents a request to create a RIDA entry
type CreateRidaRequest struct {
	ProjectKey string     `json:"project_key" binding:"required"`
	Category   string     `json:"category" binding:"required,oneof=Risk Issue Dependency Assumption"`
	Title      string     `json:"title" binding:"required,min=1,max=200"`
	Severity   string     `json:"severity" binding:"max=20"`
	Owner      string     `json:"owner" binding:"max=200"`
	DueDate    *time.Time `json:"due_date"`
	Mitigation string     `json:"mitigation"`
}

// Create opens a new RIDA chain
func (h *RidaHandler) Create(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	var req CreateRidaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rida, err := delivery.NewRida(principal.TenantID, req.ProjectKey, req.Category, req.Title, req.Owner)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	rida.Severity = req.Severity
	rida.DueDate = req.DueDate
	rida.Mitigation = req.Mitigation

	created, err := h.ridaService.Create(c.Request.Context(), principal, rida)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, created)
}

// Get returns the current version of a RIDA entry
func (h *RidaHandler) Get(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	rida, err := h.ridaService.Get(c.Request.Context(), principal, c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rida)
}

// History returns every version of a RIDA entry
func (h *RidaHandler) History(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	history, err := h.ridaService.History(c.Request.Context(), principal, c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, history)
}

// EditRidaRequest represents a request to edit a RIDA entry
type EditRidaRequest struct {
	Category   *string    `json:"category" binding:"omitempty,oneof=Risk Issue Dependency Assumption"`
	Title      *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Status     *string    `json:"status" binding:"omitempty,oneof=Open Mitigated Closed"`
	Severity   *string    `json:"severity" binding:"omitempty,max=20"`
	Owner      *string    `json:"owner" binding:"omitempty,max=200"`
	DueDate    *time.Time `json:"due_date"`
	Mitigation *string    `json:"mitigation"`
}

// Edit closes the current RIDA version and appends a successor
func (h *RidaHandler) Edit(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	var req EditRidaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rida, err := h.ridaService.Edit(c.Request.Context(), principal, c.Param("key"), func(r *delivery.Rida) {
		if req.Category != nil {
			r.Category = *req.Category
		}
		if req.Title != nil {
			r.Title = *req.Title
		}
		if req.Status != nil {
			r.Status = *req.Status
		}
		if req.Severity != nil {
			r.Severity = *req.Severity
		}
		if req.Owner != nil {
			r.Owner = *req.Owner
		}
		if req.DueDate != nil {
			r.DueDate = req.DueDate
		}
		if req.Mitigation != nil {
			r.Mitigation = *req.Mitigation
		}
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rida)
}

// Delete closes the current RIDA version without a successor
func (h *RidaHandler) Delete(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	if err := h.ridaService.Delete(c.Request.Context(), principal, c.Param("key")); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
