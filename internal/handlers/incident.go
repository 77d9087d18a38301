package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apierrors "github.com/reliefops/disaster-relief-api/internal/errors"
	"github.com/reliefops/disaster-relief-api/internal/middleware"
	"github.com/reliefops/disaster-relief-api/internal/models"
	"github.com/reliefops/disaster-relief-api/internal/services"
	"github.com/reliefops/disaster-relief-api/internal/utils"
)

// IncidentHandler coordinates incident record HTTP handlers.
type IncidentHandler struct {
	incidentService *services.IncidentService
}

// NewIncidentHandler creates a new IncidentHandler
func NewIncidentHandler(incidentService *services.IncidentService) *IncidentHandler {
	return &IncidentHandler{
		incidentService: incidentService,
	}
}

type incidentRequest struct {
	Title                   string    `json:"title" binding:"required,max=100"`
	Description             string    `json:"description" binding:"required,max=1000"`
	Type                    string    `json:"type" binding:"required,disastertype"`
	Severity                string    `json:"severity" binding:"required,incidentseverity"`
	Location                string    `json:"location" binding:"required,max=200"`
	City                    string    `json:"city" binding:"required,max=50"`
	State                   string    `json:"state" binding:"required,max=50"`
	PostalCode              string    `json:"postal_code" binding:"required,max=20"`
	Latitude                *float64  `json:"latitude"`
	Longitude               *float64  `json:"longitude"`
	IncidentDate            time.Time `json:"incident_date" binding:"required"`
	AdditionalNotes         string    `json:"additional_notes" binding:"max=500"`
	EstimatedAffectedPeople *int      `json:"estimated_affected_people"`
}

func (r *incidentRequest) toInput() services.IncidentInput {
	return services.IncidentInput{
		Title:                   r.Title,
		Description:             r.Description,
		Type:                    models.DisasterType(r.Type),
		Severity:                models.IncidentSeverity(r.Severity),
		Location:                r.Location,
		City:                    r.City,
		State:                   r.State,
		PostalCode:              r.PostalCode,
		Latitude:                r.Latitude,
		Longitude:               r.Longitude,
		IncidentDate:            r.IncidentDate,
		AdditionalNotes:         r.AdditionalNotes,
		EstimatedAffectedPeople: r.EstimatedAffectedPeople,
	}
}

// ReportIncident records a new incident for the caller.
func (h *IncidentHandler) ReportIncident(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req incidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	incident, err := h.incidentService.ReportIncident(userID, req.toInput())
	if err != nil {
		respondIncidentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, incident)
}

// ListIncidents lists incidents, most recently reported first.
func (h *IncidentHandler) ListIncidents(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	incidents, total, err := h.incidentService.ListIncidents(params.Page, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "Failed to list incidents")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"incidents": incidents,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetIncident returns an incident by ID.
func (h *IncidentHandler) GetIncident(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid incident ID")
		return
	}

	incident, err := h.incidentService.GetIncident(id)
	if err != nil {
		respondIncidentError(c, err)
		return
	}

	c.JSON(http.StatusOK, incident)
}

// UpdateIncident updates an incident's descriptive fields.
func (h *IncidentHandler) UpdateIncident(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid incident ID")
		return
	}

	var req incidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	incident, err := h.incidentService.UpdateIncident(id, userID, middleware.IsAdmin(c), req.toInput())
	if err != nil {
		respondIncidentError(c, err)
		return
	}

	c.JSON(http.StatusOK, incident)
}

// DeleteIncident deletes an incident.
func (h *IncidentHandler) DeleteIncident(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid incident ID")
		return
	}

	if err := h.incidentService.DeleteIncident(id, userID, middleware.IsAdmin(c)); err != nil {
		respondIncidentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Incident deleted"})
}

// respondIncidentError maps incident service errors to HTTP responses.
func respondIncidentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrIncidentNotFound):
		apierrors.NotFound(c, "Incident not found")
	case errors.Is(err, services.ErrNotIncidentReporter):
		apierrors.Forbidden(c, "Only the reporter can perform this action")
	case errors.Is(err, services.ErrIncidentTitleRequired),
		errors.Is(err, services.ErrIncidentLocationRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
