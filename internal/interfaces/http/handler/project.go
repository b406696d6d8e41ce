package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	deliveryapp "github.com/projops/backend/internal/application/delivery"
	"github.com/projops/backend/internal/domain/delivery"
)

// ProjectHandler handles project and team assignment endpoints. Both types
// are versioned records: edits append a new version, deletes close the
// chain, and history stays queryable.
type ProjectHandler struct {
	BaseHandler
	projectService *deliveryapp.RecordService[*delivery.Project]
	teamService    *deliveryapp.RecordService[*delivery.ProjectTeam]
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(
	projectService *deliveryapp.RecordService[*delivery.Project],
	teamService *deliveryapp.RecordService[*delivery.ProjectTeam],
) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		teamService:    teamService,
	}
}

// RegisterRoutes registers project routes
func (h *ProjectHandler) RegisterRoutes(rg *gin.RouterGroup) {
	projects := rg.Group("/projects")
	{
		projects.POST("", h.Create)
		projects.GET("/:key", h.Get)
		projects.GET("/:key/history", h.History)
		projects.PUT("/:key", h.Edit)
		projects.DELETE("/:key", h.Delete)
	}

	teams := rg.Group("/project-teams")
	{
		teams.POST("", h.CreateTeam)
		teams.GET("/:key", h.GetTeam)
		teams.GET("/:key/history", h.TeamHistory)
		teams.PUT("/:key", h.EditTeam)
		teams.DELETE("/:key", h.DeleteTeam)
	}
}

// CreateProjectRequest represents a request to create a project
type CreateProjectRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=200"`
	CustomerRef string     `json:"customer_ref" binding:"max=200"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Description string     `json:"description"`
}

// Create opens a new project chain
func (h *ProjectHandler) Create(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	project, err := delivery.NewProject(principal.TenantID, req.Name, req.CustomerRef, req.Description)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	project.StartDate = req.StartDate
	project.EndDate = req.EndDate

	created, err := h.projectService.Create(c.Request.Context(), principal, project)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, created)
}

// Get returns the current version of a project
func (h *ProjectHandler) Get(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	project, err := h.projectService.Get(c.Request.Context(), principal, c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, project)
}

// History returns every version of a project ordered by start marker
func (h *ProjectHandler) History(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	history, err := h.projectService.History(c.Request.Context(), principal, c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, history)
}

// EditProjectRequest represents a request to edit a project. Only the
// provided fields change; omitted fields carry over from the current
// version.
type EditProjectRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=200"`
	CustomerRef *string    `json:"customer_ref" binding:"omitempty,max=200"`
	Status      *string    `json:"status" binding:"omitempty,oneof=Active OnHold Completed"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Description *string    `json:"description"`
}

// Edit closes the current project version and appends an updated successor
func (h *ProjectHandler) Edit(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	var req EditProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Edit(c.Request.Context(), principal, c.Param("key"), func(p *delivery.Project) {
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.CustomerRef != nil {
			p.CustomerRef = *req.CustomerRef
		}
		if req.Status != nil {
			p.Status = *req.Status
		}
		if req.StartDate != nil {
			p.StartDate = req.StartDate
		}
		if req.EndDate != nil {
			p.EndDate = req.EndDate
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, project)
}

// Delete closes the current project version without a successor
func (h *ProjectHandler) Delete(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), principal, c.Param("key")); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateProjectTeamRequest represents a request to create a team assignment
type CreateProjectTeamRequest struct {
	ProjectKey        string     `json:"project_key" binding:"required"`
	MemberEmail       string     `json:"member_email" binding:"required,email,max=200"`
	Role              string     `json:"role" binding:"max=100"`
	AllocationPercent int        `json:"allocation_percent" binding:"min=0,max=100"`
	JoinedAt          *time.Time `json:"joined_at"`
}

// CreateTeam opens a new team assignment chain
func (h *ProjectHandler) CreateTeam(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	var req CreateProjectTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	team, err := delivery.NewProjectTeam(principal.TenantID, req.ProjectKey, req.MemberEmail, req.Role, req.AllocationPercent)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	team.JoinedAt = req.JoinedAt

	created, err := h.teamService.Create(c.Request.Context(), principal, team)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, created)
}

// GetTeam returns the current version of a team assignment
func (h *ProjectHandler) GetTeam(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	team, err := h.teamService.Get(c.Request.Context(), principal, c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, team)
}

// TeamHistory returns every version of a team assignment
func (h *ProjectHandler) TeamHistory(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	history, err := h.teamService.History(c.Request.Context(), principal, c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, history)
}

// EditProjectTeamRequest represents a request to edit a team assignment
type EditProjectTeamRequest struct {
	Role              *string    `json:"role" binding:"omitempty,max=100"`
	AllocationPercent *int       `json:"allocation_percent" binding:"omitempty,min=0,max=100"`
	JoinedAt          *time.Time `json:"joined_at"`
}

// EditTeam closes the current assignment version and appends a successor
func (h *ProjectHandler) EditTeam(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	var req EditProjectTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	team, err := h.teamService.Edit(c.Request.Context(), principal, c.Param("key"), func(t *delivery.ProjectTeam) {
		if req.Role != nil {
			t.Role = *req.Role
		}
		if req.AllocationPercent != nil {
			t.AllocationPercent = *req.AllocationPercent
		}
		if req.JoinedAt != nil {
			t.JoinedAt = req.JoinedAt
		}
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, team)
}

// DeleteTeam closes the current assignment version without a successor
func (h *ProjectHandler) DeleteTeam(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	if err := h.teamService.Delete(c.Request.Context(), principal, c.Param("key")); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
