package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/reliefops/disaster-relief-api/internal/dto"
	apierrors "github.com/reliefops/disaster-relief-api/internal/errors"
	"github.com/reliefops/disaster-relief-api/internal/middleware"
	"github.com/reliefops/disaster-relief-api/internal/models"
	"github.com/reliefops/disaster-relief-api/internal/services"
)

// AssignmentHandler coordinates assignment lifecycle HTTP handlers.
type AssignmentHandler struct {
	assignmentService *services.AssignmentService
}

// NewAssignmentHandler creates a new AssignmentHandler
func NewAssignmentHandler(assignmentService *services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
	}
}

// GetAssignment returns an assignment with its task and volunteer.
func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid assignment ID")
		return
	}

	assignment, err := h.assignmentService.GetAssignment(id)
	if err != nil {
		respondAssignmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAssignmentDTO(*assignment))
}

// Accept moves an assignment from Assigned to Accepted.
func (h *AssignmentHandler) Accept(c *gin.Context) {
	h.transition(c, models.AssignmentStatusAccepted)
}

// Start moves an assignment to InProgress.
func (h *AssignmentHandler) Start(c *gin.Context) {
	h.transition(c, models.AssignmentStatusInProgress)
}

// Cancel cancels an assignment. The task keeps its fill counter; capacity is
// never released back.
func (h *AssignmentHandler) Cancel(c *gin.Context) {
	h.transition(c, models.AssignmentStatusCancelled)
}

// NoShow marks an assignment as a no-show.
func (h *AssignmentHandler) NoShow(c *gin.Context) {
	h.transition(c, models.AssignmentStatusNoShow)
}

// Complete finishes an assignment with its outcome data.
func (h *AssignmentHandler) Complete(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid assignment ID")
		return
	}

	type CompleteRequest struct {
		HoursWorked int    `json:"hours_worked" binding:"min=0"`
		Feedback    string `json:"feedback" binding:"max=500"`
		Rating      *int   `json:"rating"`
	}

	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	assignment, err := h.assignmentService.Complete(id, userID, middleware.IsAdmin(c), services.CompleteInput{
		HoursWorked: req.HoursWorked,
		Feedback:    req.Feedback,
		Rating:      req.Rating,
	})
	if err != nil {
		respondAssignmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAssignmentDTO(*assignment))
}

func (h *AssignmentHandler) transition(c *gin.Context, target models.AssignmentStatus) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid assignment ID")
		return
	}

	assignment, err := h.assignmentService.Transition(id, userID, middleware.IsAdmin(c), target)
	if err != nil {
		respondAssignmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAssignmentDTO(*assignment))
}

// respondAssignmentError maps assignment service errors to HTTP responses.
func respondAssignmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAssignmentNotFound):
		apierrors.NotFound(c, "Assignment not found")
	case errors.Is(err, services.ErrNotAssignmentOwner):
		apierrors.Forbidden(c, "Only the assigned volunteer can perform this action")
	case errors.Is(err, services.ErrAssignmentTransition):
		apierrors.UnprocessableWithCode(c, apierrors.ErrCodeInvalidInput, "Status transition not allowed")
	case errors.Is(err, services.ErrHoursRequired),
		errors.Is(err, services.ErrInvalidRating),
		errors.Is(err, services.ErrOutcomeOnlyOnCompletion):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
