package handler

import (
	"github.com/gin-gonic/gin"
	deliveryapp "github.com/projops/backend/internal/application/delivery"
	"github.com/projops/backend/internal/domain/delivery"
)

// StoryHandler handles user story and solution story endpoints. Both are
// versioned records keyed by sequential business keys (US-000042,
// SS-000042).
type StoryHandler struct {
	BaseHandler
	userStoryService     *deliveryapp.RecordService[*delivery.UserStory]
	solutionStoryService *deliveryapp.RecordService[*delivery.SolutionStory]
	keys                 delivery.KeySequence
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(
	userStoryService *deliveryapp.RecordService[*delivery.UserStory],
	solutionStoryService *deliveryapp.RecordService[*delivery.SolutionStory],
	keys delivery.KeySequence,
) *StoryHandler {
	return &StoryHandler{
		userStoryService:     userStoryService,
		solutionStoryService: solutionStoryService,
		keys:                 keys,
	}
}

// RegisterRoutes registers story routes
func (h *StoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	userStories := rg.Group("/user-stories")
	{
		userStories.POST("", h.CreateUserStory)
		userStories.GET("/:key", h.GetUserStory)
		userStories.GET("/:key/history", h.UserStoryHistory)
		userStories.PUT("/:key", h.EditUserStory)
		userStories.DELETE("/:key", h.DeleteUserStory)
	}

	solutionStories := rg.Group("/solution-stories")
	{
		solutionStories.POST("", h.CreateSolutionStory)
		solutionStories.GET("/:key", h.GetSolutionStory)
		solutionStories.GET("/:key/history", h.SolutionStoryHistory)
		solutionStories.PUT("/:key", h.EditSolutionStory)
		solutionStories.DELETE("/:key", h.DeleteSolutionStory)
	}
}

// CreateUserStoryRequest represents a request to create a user story
type CreateUserStoryRequest struct {
	ProjectKey         string `json:"project_key"`
	ReleaseKey         string `json:"release_key"`
	Title              string `json:"title" binding:"required,min=1,max=200"`
	StoryPoints        *int   `json:"story_points" binding:"omitempty,min=0"`
	AcceptanceCriteria string `json:"acceptance_criteria"`
	Description        string `json:"description"`
}

// CreateUserStory mints a business key and opens a new user story chain
func (h *StoryHandler) CreateUserStory(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	var req CreateUserStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	seq, err := h.keys.Next(c.Request.Context(), principal.TenantID, "user_story")
	if err != nil {
		h.InternalError(c, "Failed to allocate user story key")
		return
	}

	story, err := delivery.NewUserStory(
		principal.TenantID,
		delivery.FormatUserStoryKey(seq),
		req.ProjectKey,
		req.Title,
		req.Description,
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	story.ReleaseKey = req.ReleaseKey
	story.StoryPoints = req.StoryPoints
	story.AcceptanceCriteria = req.AcceptanceCriteria

	created, err := h.userStoryService.Create(c.Request.Context(), principal, story)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, created)
}

// GetUserStory returns the current version of a user story
func (h *StoryHandler) GetUserStory(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	story, err := h.userStoryService.Get(c.Request.Context(), principal, c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, story)
}

// UserStoryHistory returns every version of a user story
func (h *StoryHandler) UserStoryHistory(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	history, err := h.userStoryService.History(c.Request.Context(), principal, c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, history)
}

// EditUserStoryRequest represents a request to edit a user story
type EditUserStoryRequest struct {
	ReleaseKey         *string `json:"release_key"`
	Title              *string `json:"title" binding:"omitempty,min=1,max=200"`
	Status             *string `json:"status" binding:"omitempty,oneof=Draft Ready InProgress Accepted"`
	StoryPoints        *int    `json:"story_points" binding:"omitempty,min=0"`
	AcceptanceCriteria *string `json:"acceptance_criteria"`
	Description        *string `json:"description"`
}

// EditUserStory closes the current version and appends a successor
func (h *StoryHandler) EditUserStory(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	var req EditUserStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	story, err := h.userStoryService.Edit(c.Request.Context(), principal, c.Param("key"), func(s *delivery.UserStory) {
		if req.ReleaseKey != nil {
			s.ReleaseKey = *req.ReleaseKey
		}
		if req.Title != nil {
			s.Title = *req.Title
		}
		if req.Status != nil {
			s.Status = *req.Status
		}
		if req.StoryPoints != nil {
			s.StoryPoints = req.StoryPoints
		}
		if req.AcceptanceCriteria != nil {
			s.AcceptanceCriteria = *req.AcceptanceCriteria
		}
		if req.Description != nil {
			s.Description = *req.Description
		}
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, story)
}

// DeleteUserStory closes the current version without a successor
func (h *StoryHandler) DeleteUserStory(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	if err := h.userStoryService.Delete(c.Request.Context(), principal, c.Param("key")); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateSolutionStoryRequest represents a request to create a solution story
type CreateSolutionStoryRequest struct {
	ProjectKey   string `json:"project_key"`
	UserStoryKey string `json:"user_story_key"`
	Title        string `json:"title" binding:"required,min=1,max=200"`
	Component    string `json:"component" binding:"max=100"`
	Description  string `json:"description"`
}

// CreateSolutionStory mints a business key and opens a new solution story
// chain
func (h *StoryHandler) CreateSolutionStory(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	var req CreateSolutionStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	seq, err := h.keys.Next(c.Request.Context(), principal.TenantID, "solution_story")
	if err != nil {
		h.InternalError(c, "Failed to allocate solution story key")
		return
	}

	story, err := delivery.NewSolutionStory(
		principal.TenantID,
		delivery.FormatSolutionStoryKey(seq),
		req.ProjectKey,
		req.UserStoryKey,
		req.Title,
		req.Description,
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	story.Component = req.Component

	created, err := h.solutionStoryService.Create(c.Request.Context(), principal, story)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, created)
}

// GetSolutionStory returns the current version of a solution story
func (h *StoryHandler) GetSolutionStory(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	story, err := h.solutionStoryService.Get(c.Request.Context(), principal, c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, story)
}

// SolutionStoryHistory returns every version of a solution story
func (h *StoryHandler) SolutionStoryHistory(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	history, err := h.solutionStoryService.History(c.Request.Context(), principal, c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, history)
}

// EditSolutionStoryRequest represents a request to edit a solution story
type EditSolutionStoryRequest struct {
	UserStoryKey *string `json:"user_story_key"`
	Title        *string `json:"title" binding:"omitempty,min=1,max=200"`
	Status       *string `json:"status" binding:"omitempty,oneof=Draft Ready InProgress Accepted"`
	Component    *string `json:"component" binding:"omitempty,max=100"`
	Description  *string `json:"description"`
}

// EditSolutionStory closes the current version and appends a successor
func (h *StoryHandler) EditSolutionStory(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	var req EditSolutionStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	story, err := h.solutionStoryService.Edit(c.Request.Context(), principal, c.Param("key"), func(s *delivery.SolutionStory) {
		if req.UserStoryKey != nil {
			s.UserStoryKey = *req.UserStoryKey
		}
		if req.Title != nil {
			s.Title = *req.Title
		}
		if req.Status != nil {
			s.Status = *req.Status
		}
		if req.Component != nil {
			s.Component = *req.Component
		}
		if req.Description != nil {
			s.Description = *req.Description
		}
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, story)
}

// DeleteSolutionStory closes the current version without a successor
func (h *StoryHandler) DeleteSolutionStory(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	if err := h.solutionStoryService.Delete(c.Request.Context(), principal, c.Param("key")); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
