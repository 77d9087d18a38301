package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reliefops/disaster-relief-api/internal/dto"
	apierrors "github.com/reliefops/disaster-relief-api/internal/errors"
	"github.com/reliefops/disaster-relief-api/internal/middleware"
	"github.com/reliefops/disaster-relief-api/internal/models"
	"github.com/reliefops/disaster-relief-api/internal/services"
	"github.com/reliefops/disaster-relief-api/internal/utils"
)

// TaskHandler coordinates task catalog HTTP handlers, including applications.
type TaskHandler struct {
	taskService       *services.TaskService
	allocationService *services.AllocationService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *services.TaskService, allocationService *services.AllocationService) *TaskHandler {
	return &TaskHandler{
		taskService:       taskService,
		allocationService: allocationService,
	}
}

// CreateTask publishes a new relief task.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Title              string     `json:"title" binding:"required,max=100"`
		Description        string     `json:"description" binding:"required,max=1000"`
		Category           string     `json:"category" binding:"required,taskcategory"`
		Priority           string     `json:"priority" binding:"required,taskpriority"`
		Location           string     `json:"location" binding:"required,max=200"`
		StartDate          *time.Time `json:"start_date"`
		EndDate            *time.Time `json:"end_date"`
		RequiredVolunteers int        `json:"required_volunteers" binding:"required,min=1"`
		RequiredSkills     string     `json:"required_skills" binding:"max=200"`
		Equipment          string     `json:"equipment" binding:"max=200"`
		EstimatedHours     *int       `json:"estimated_hours"`
		Notes              string     `json:"notes" binding:"max=500"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:              req.Title,
		Description:        req.Description,
		Category:           models.TaskCategory(req.Category),
		Priority:           models.TaskPriority(req.Priority),
		Location:           req.Location,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		RequiredVolunteers: req.RequiredVolunteers,
		RequiredSkills:     req.RequiredSkills,
		Equipment:          req.Equipment,
		EstimatedHours:     req.EstimatedHours,
		Notes:              req.Notes,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// ListTasks lists tasks with optional status/category filtering.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var status *models.TaskStatus
	if s := c.Query("status"); s != "" {
		ts := models.TaskStatus(s)
		if !ts.IsValid() {
			apierrors.BadRequest(c, "Invalid status filter")
			return
		}
		status = &ts
	}

	var category *models.TaskCategory
	if s := c.Query("category"); s != "" {
		tc := models.TaskCategory(s)
		category = &tc
	}

	tasks, total, err := h.taskService.ListTasks(status, category, params.Page, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "Failed to list tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetTask returns a task with its assignments.
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetTask(id)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTask updates a task's descriptive fields. Admin only.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type UpdateTaskRequest struct {
		Title          *string    `json:"title"`
		Description    *string    `json:"description"`
		Category       *string    `json:"category" binding:"omitempty,taskcategory"`
		Priority       *string    `json:"priority" binding:"omitempty,taskpriority"`
		Location       *string    `json:"location"`
		StartDate      *time.Time `json:"start_date"`
		EndDate        *time.Time `json:"end_date"`
		RequiredSkills *string    `json:"required_skills"`
		Equipment      *string    `json:"equipment"`
		EstimatedHours *int       `json:"estimated_hours"`
		Notes          *string    `json:"notes"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		RequiredSkills: req.RequiredSkills,
		Equipment:      req.Equipment,
		EstimatedHours: req.EstimatedHours,
		Notes:          req.Notes,
	}
	if req.Category != nil {
		category := models.TaskCategory(*req.Category)
		input.Category = &category
	}
	if req.Priority != nil {
		priority := models.TaskPriority(*req.Priority)
		input.Priority = &priority
	}

	task, err := h.taskService.UpdateTask(id, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task. Admin only.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	if err := h.taskService.DeleteTask(id); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// Apply submits the caller's application to a task through the allocation
// engine. Every rejection carries its own code so clients can distinguish
// an ineligible profile from a full or closed task.
func (h *TaskHandler) Apply(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	assignment, err := h.allocationService.Apply(userID, taskID)
	if err != nil {
		respondApplyError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAssignmentDTO(*assignment))
}

// MyAssignments lists the caller's assignments, newest first.
func (h *TaskHandler) MyAssignments(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	assignments, total, err := h.allocationService.ListMyAssignments(userID, params.Page, params.Limit)
	if err != nil {
		respondApplyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assignments": dto.ToAssignmentDTOs(assignments),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// respondTaskError maps task service errors to HTTP responses.
func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrDescriptionRequired),
		errors.Is(err, services.ErrLocationRequired),
		errors.Is(err, services.ErrInvalidCapacity),
		errors.Is(err, services.ErrInvalidTaskStatus):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskStatusTransition),
		errors.Is(err, services.ErrTaskStatusInconsistent):
		apierrors.UnprocessableWithCode(c, apierrors.ErrCodeInvalidInput, err.Error())
	case errors.Is(err, services.ErrTaskHasHistory):
		apierrors.Conflict(c, "Task has assignment history and cannot be deleted")
	default:
		apierrors.InternalError(c, "")
	}
}

// respondApplyError maps allocation engine rejections to HTTP responses.
func respondApplyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoVolunteerProfile):
		apierrors.UnprocessableWithCode(c, apierrors.ErrCodeNoProfile,
			"Register as a volunteer before applying for tasks")
	case errors.Is(err, services.ErrVolunteerNotEligible):
		apierrors.UnprocessableWithCode(c, apierrors.ErrCodeNotEligible,
			"Your volunteer application must be approved before you can apply for tasks")
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrAlreadyApplied):
		apierrors.ConflictWithCode(c, apierrors.ErrCodeAlreadyApplied,
			"You have already applied for this task")
	case errors.Is(err, services.ErrTaskClosed):
		apierrors.ConflictWithCode(c, apierrors.ErrCodeTaskClosed,
			"This task is no longer accepting applications")
	case errors.Is(err, services.ErrTaskFull):
		apierrors.ConflictWithCode(c, apierrors.ErrCodeTaskFull,
			"This task has reached its maximum number of volunteers")
	case errors.Is(err, services.ErrTaskBusy):
		apierrors.Busy(c, "")
	default:
		apierrors.InternalError(c, "")
	}
}
