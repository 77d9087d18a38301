package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/reliefops/disaster-relief-api/internal/database"
	"github.com/reliefops/disaster-relief-api/internal/dto"
	apierrors "github.com/reliefops/disaster-relief-api/internal/errors"
	"github.com/reliefops/disaster-relief-api/internal/models"
	"github.com/reliefops/disaster-relief-api/internal/services"
)

// AdminHandler coordinates the administrator approval workflow handlers.
type AdminHandler struct {
	adminService *services.AdminService
	taskService  *services.TaskService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService *services.AdminService, taskService *services.TaskService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		taskService:  taskService,
	}
}

// ApproveVolunteer approves a pending volunteer.
func (h *AdminHandler) ApproveVolunteer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid volunteer ID")
		return
	}

	volunteer, err := h.adminService.ApproveVolunteer(id)
	if err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVolunteerDTO(*volunteer))
}

// RejectVolunteer suspends a volunteer.
func (h *AdminHandler) RejectVolunteer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid volunteer ID")
		return
	}

	volunteer, err := h.adminService.RejectVolunteer(id)
	if err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVolunteerDTO(*volunteer))
}

// SetVolunteerStatus applies an administrator volunteer status change.
func (h *AdminHandler) SetVolunteerStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid volunteer ID")
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	volunteer, err := h.adminService.SetVolunteerStatus(id, models.VolunteerStatus(req.Status))
	if err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVolunteerDTO(*volunteer))
}

// SetTaskStatus applies an administrator task status change, validated against
// the task's fill counter.
func (h *AdminHandler) SetTaskStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.SetStatus(id, models.TaskStatus(req.Status))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// SetIncidentStatus applies an administrator incident status change.
func (h *AdminHandler) SetIncidentStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid incident ID")
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	incident, err := h.adminService.SetIncidentStatus(id, models.IncidentStatus(req.Status))
	if err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, incident)
}

// SetDonationStatus applies an administrator donation status change.
func (h *AdminHandler) SetDonationStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid donation ID")
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	donation, err := h.adminService.SetDonationStatus(id, models.DonationStatus(req.Status))
	if err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, donation)
}

// Dashboard returns headline counts for the admin overview.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	db := database.GetDB()

	var stats struct {
		TotalVolunteers    int64 `json:"total_volunteers"`
		PendingVolunteers  int64 `json:"pending_volunteers"`
		ApprovedVolunteers int64 `json:"approved_volunteers"`
		TotalTasks         int64 `json:"total_tasks"`
		OpenTasks          int64 `json:"open_tasks"`
		TotalIncidents     int64 `json:"total_incidents"`
		ActiveIncidents    int64 `json:"active_incidents"`
		TotalDonations     int64 `json:"total_donations"`
		PendingDonations   int64 `json:"pending_donations"`
	}

	db.Model(&models.Volunteer{}).Count(&stats.TotalVolunteers)
	db.Model(&models.Volunteer{}).
		Where("status = ?", models.VolunteerStatusPending).
		Count(&stats.PendingVolunteers)
	db.Model(&models.Volunteer{}).
		Where("status IN ?", []models.VolunteerStatus{models.VolunteerStatusApproved, models.VolunteerStatusActive}).
		Count(&stats.ApprovedVolunteers)
	db.Model(&models.Task{}).Count(&stats.TotalTasks)
	db.Model(&models.Task{}).
		Where("status = ?", models.TaskStatusOpen).
		Count(&stats.OpenTasks)
	db.Model(&models.Incident{}).Count(&stats.TotalIncidents)
	db.Model(&models.Incident{}).
		Where("status IN ?", []models.IncidentStatus{models.IncidentStatusUnderReview, models.IncidentStatusInProgress}).
		Count(&stats.ActiveIncidents)
	db.Model(&models.Donation{}).Count(&stats.TotalDonations)
	db.Model(&models.Donation{}).
		Where("status = ?", models.DonationStatusPending).
		Count(&stats.PendingDonations)

	c.JSON(http.StatusOK, stats)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// respondAdminError maps admin workflow errors to HTTP responses.
func respondAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrVolunteerNotFound):
		apierrors.NotFound(c, "Volunteer not found")
	case errors.Is(err, services.ErrIncidentNotFound):
		apierrors.NotFound(c, "Incident not found")
	case errors.Is(err, services.ErrDonationNotFound):
		apierrors.NotFound(c, "Donation not found")
	case errors.Is(err, services.ErrInvalidVolunteerStatus),
		errors.Is(err, services.ErrInvalidIncidentStatus),
		errors.Is(err, services.ErrInvalidDonationStatus):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrVolunteerStatusTransition):
		apierrors.UnprocessableWithCode(c, apierrors.ErrCodeInvalidInput, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
