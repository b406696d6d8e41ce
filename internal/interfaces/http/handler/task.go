package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	deliveryapp "github.com/projops/backend/internal/application/delivery"
	"github.com/projops/backend/internal/domain/delivery"
)

// TaskHandler handles task endpoints. Tasks are versioned records keyed by
// a sequential business key (TASK-000123).
type TaskHandler struct {
	BaseHandler
	taskService *deliveryapp.RecordService[*delivery.Task]
	keys        delivery.KeySequence
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *deliveryapp.RecordService[*delivery.Task], keys delivery.KeySequence) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		keys:        keys,
	}
}

// RegisterRoutes registers task routes
func (h *TaskHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tasks := rg.Group("/tasks")
	{
		tasks.POST("", h.Create)
		tasks.GET("/:key", h.Get)
		tasks.GET("/:key/history", h.History)
		tasks.PUT("/:key", h.Edit)
		tasks.DELETE("/:key", h.Delete)
	}
}

// CreateTaskRequest represents a request to create a task
type CreateTaskRequest struct {
	ProjectKey  string     `json:"project_key"`
	SprintKey   string     `json:"sprint_key"`
	Title       string     `json:"title" binding:"required,min=1,max=200"`
	Assignee    string     `json:"assignee" binding:"max=200"`
	EstimateHrs *int       `json:"estimate_hrs" binding:"omitempty,min=0"`
	DueDate     *time.Time `json:"due_date"`
	Description string     `json:"description"`
}

// Create mints a business key and opens a new task chain
func (h *TaskHandler) Create(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	seq, err := h.keys.Next(c.Request.Context(), principal.TenantID, "task")
	if err != nil {
		h.InternalError(c, "Failed to allocate task key")
		return
	}

	task, err := delivery.NewTask(
		principal.TenantID,
		delivery.FormatTaskKey(seq),
		req.ProjectKey,
		req.Title,
		req.Assignee,
		req.Description,
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	task.SprintKey = req.SprintKey
	task.EstimateHrs = req.EstimateHrs
	task.DueDate = req.DueDate

	created, err := h.taskService.Create(c.Request.Context(), principal, task)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, created)
}

// Get returns the current version of a task
func (h *TaskHandler) Get(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	task, err := h.taskService.Get(c.Request.Context(), principal, c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, task)
}

// History returns every version of a task ordered by start marker
func (h *TaskHandler) History(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	history, err := h.taskService.History(c.Request.Context(), principal, c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, history)
}

// EditTaskRequest represents a request to edit a task. Only the provided
// fields change.
type EditTaskRequest struct {
	SprintKey   *string    `json:"sprint_key"`
	Title       *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Status      *string    `json:"status" binding:"omitempty,oneof=Open InProgress Done Blocked"`
	Assignee    *string    `json:"assignee" binding:"omitempty,max=200"`
	EstimateHrs *int       `json:"estimate_hrs" binding:"omitempty,min=0"`
	DueDate     *time.Time `json:"due_date"`
	Description *string    `json:"description"`
}

// Edit closes the current task version and appends an updated successor
func (h *TaskHandler) Edit(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	var req EditTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.Edit(c.Request.Context(), principal, c.Param("key"), func(t *delivery.Task) {
		if req.SprintKey != nil {
			t.SprintKey = *req.SprintKey
		}
		if req.Title != nil {
			t.Title = *req.Title
		}
		if req.Status != nil {
			t.Status = *req.Status
		}
		if req.Assignee != nil {
			t.Assignee = *req.Assignee
		}
		if req.EstimateHrs != nil {
			t.EstimateHrs = req.EstimateHrs
		}
		if req.DueDate != nil {
			t.DueDate = req.DueDate
		}
		if req.Description != nil {
			t.Description = *req.Description
		}
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, task)
}

// Delete closes the current task version without a successor
func (h *TaskHandler) Delete(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), principal, c.Param("key")); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
