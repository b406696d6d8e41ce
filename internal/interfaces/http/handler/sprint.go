package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	deliveryapp "github.com/projops/backend/internal/application/delivery"
	"github.com/projops/backend/internal/domain/delivery"
)

// SprintHandler handles sprint and release endpoints
type SprintHandler struct {
	BaseHandler
	sprintService  *deliveryapp.RecordService[*delivery.Sprint]
	releaseService *deliveryapp.RecordService[*delivery.Release]
}

// NewSprintHandler creates a new SprintHandler
func NewSprintHandler(
	sprintService *deliveryapp.RecordService[*delivery.Sprint],
	releaseService *deliveryapp.RecordService[*delivery.Release],
) *SprintHandler {
	return &SprintHandler{
		sprintService:  sprintService,
		releaseService: releaseService,
	}
}

// RegisterRoutes registers sprint and release routes
func (h *SprintHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sprints := rg.Group("/sprints")
	{
		sprints.POST("", h.CreateSprint)
		sprints.GET("/:key", h.GetSprint)
		sprints.GET("/:key/history", h.SprintHistory)
		sprints.PUT("/:key", h.EditSprint)
		sprints.DELETE("/:key", h.DeleteSprint)
	}

	releases := rg.Group("/releases")
	{
		releases.POST("", h.CreateRelease)
		releases.GET("/:key", h.GetRelease)
		releases.GET("/:key/history", h.ReleaseHistory)
		releases.PUT("/:key", h.EditRelease)
		releases.DELETE("/:key", h.DeleteRelease)
	}
}

// CreateSprintRequest represents a request to create a sprint
type CreateSprintRequest struct {
	ProjectKey string     `json:"project_key" binding:"required"`
	Name       string     `json:"name" binding:"required,min=1,max=200"`
	Goal       string     `json:"goal"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
}

// CreateSprint opens a new sprint chain
func (h *SprintHandler) CreateSprint(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	var req CreateSprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sprint, err := delivery.NewSprint(principal.TenantID, req.ProjectKey, req.Name, req.Goal)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	sprint.StartDate = req.StartDate
	sprint.EndDate = req.EndDate

	created, err := h.sprintService.Create(c.Request.Context(), principal, sprint)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, created)
}

// GetSprint returns the current version of a sprint
func (h *SprintHandler) GetSprint(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	sprint, err := h.sprintService.Get(c.Request.Context(), principal, c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sprint)
}

// SprintHistory returns every version of a sprint
func (h *SprintHandler) SprintHistory(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	history, err := h.sprintService.History(c.Request.Context(), principal, c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, history)
}

// EditSprintRequest represents a request to edit a sprint
type EditSprintRequest struct {
	Name      *string    `json:"name" binding:"omitempty,min=1,max=200"`
	Status    *string    `json:"status" binding:"omitempty,oneof=Planned Active Closed"`
	Goal      *string    `json:"goal"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// EditSprint closes the current sprint version and appends a successor
func (h *SprintHandler) EditSprint(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	var req EditSprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sprint, err := h.sprintService.Edit(c.Request.Context(), principal, c.Param("key"), func(s *delivery.Sprint) {
		if req.Name != nil {
			s.Name = *req.Name
		}
		if req.Status != nil {
			s.Status = *req.Status
		}
		if req.Goal != nil {
			s.Goal = *req.Goal
		}
		if req.StartDate != nil {
			s.StartDate = req.StartDate
		}
		if req.EndDate != nil {
			s.EndDate = req.EndDate
		}
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sprint)
}

// DeleteSprint closes the current sprint version without a successor
func (h *SprintHandler) DeleteSprint(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	if err := h.sprintService.Delete(c.Request.Context(), principal, c.Param("key")); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateReleaseRequest represents a request to create a release
type CreateReleaseRequest struct {
	ProjectKey  string     `json:"project_key" binding:"required"`
	Name        string     `json:"name" binding:"required,min=1,max=200"`
	Version     string     `json:"version" binding:"max=50"`
	PlannedDate *time.Time `json:"planned_date"`
	Notes       string     `json:"notes"`
}

// CreateRelease opens a new release chain
func (h *SprintHandler) CreateRelease(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	var req CreateReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	release, err := delivery.NewRelease(principal.TenantID, req.ProjectKey, req.Name, req.Version)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	release.PlannedDate = req.PlannedDate
	release.Notes = req.Notes

	created, err := h.releaseService.Create(c.Request.Context(), principal, release)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, created)
}

// GetRelease returns the current version of a release
func (h *SprintHandler) GetRelease(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	release, err := h.releaseService.Get(c.Request.Context(), principal, c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, release)
}

// ReleaseHistory returns every version of a release
func (h *SprintHandler) ReleaseHistory(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	history, err := h.releaseService.History(c.Request.Context(), principal, c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, history)
}

// EditReleaseRequest represents a request to edit a release
type EditReleaseRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=200"`
	Version     *string    `json:"version" binding:"omitempty,max=50"`
	PlannedDate *time.Time `json:"planned_date"`
	ShippedDate *time.Time `json:"shipped_date"`
	Notes       *string    `json:"notes"`
}

// EditRelease closes the current release version and appends a successor
func (h *SprintHandler) EditRelease(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	var req EditReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	release, err := h.releaseService.Edit(c.Request.Context(), principal, c.Param("key"), func(r *delivery.Release) {
		if req.Name != nil {
			r.Name = *req.Name
		}
		if req.Version != nil {
			r.Version = *req.Version
		}
		if req.PlannedDate != nil {
			r.PlannedDate = req.PlannedDate
		}
		if req.ShippedDate != nil {
			r.ShippedDate = req.ShippedDate
		}
		if req.Notes != nil {
			r.Notes = *req.Notes
		}
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, release)
}

// DeleteRelease closes the current release version without a successor
func (h *SprintHandler) DeleteRelease(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	if err := h.releaseService.Delete(c.Request.Context(), principal, c.Param("key")); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
