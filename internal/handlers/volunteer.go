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

// VolunteerHandler coordinates volunteer registry HTTP handlers.
type VolunteerHandler struct {
	volunteerService *services.VolunteerService
}

// NewVolunteerHandler creates a new VolunteerHandler
func NewVolunteerHandler(volunteerService *services.VolunteerService) *VolunteerHandler {
	return &VolunteerHandler{
		volunteerService: volunteerService,
	}
}

// profileRequest is the JSON shape shared by create and update.
type profileRequest struct {
	FirstName             string     `json:"first_name" binding:"required,max=100"`
	LastName              string     `json:"last_name" binding:"required,max=100"`
	Email                 string     `json:"email" binding:"required,email"`
	PhoneNumber           string     `json:"phone_number" binding:"required,max=30"`
	Address               string     `json:"address" binding:"max=200"`
	City                  string     `json:"city" binding:"max=50"`
	State                 string     `json:"state" binding:"max=50"`
	PostalCode            string     `json:"postal_code" binding:"max=20"`
	DateOfBirth           *time.Time `json:"date_of_birth"`
	EmergencyContactName  string     `json:"emergency_contact_name" binding:"max=50"`
	EmergencyContactPhone string     `json:"emergency_contact_phone" binding:"max=30"`
	Skills                string     `json:"skills" binding:"max=200"`
	Interests             string     `json:"interests" binding:"max=200"`
	Availability          string     `json:"availability" binding:"max=100"`
	Notes                 string     `json:"notes" binding:"max=500"`
}

func (r *profileRequest) toInput() services.ProfileInput {
	return services.ProfileInput{
		FirstName:             r.FirstName,
		LastName:              r.LastName,
		Email:                 r.Email,
		PhoneNumber:           r.PhoneNumber,
		Address:               r.Address,
		City:                  r.City,
		State:                 r.State,
		PostalCode:            r.PostalCode,
		DateOfBirth:           r.DateOfBirth,
		EmergencyContactName:  r.EmergencyContactName,
		EmergencyContactPhone: r.EmergencyContactPhone,
		Skills:                r.Skills,
		Interests:             r.Interests,
		Availability:          r.Availability,
		Notes:                 r.Notes,
	}
}

// CreateProfile registers the caller's volunteer profile.
func (h *VolunteerHandler) CreateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	volunteer, err := h.volunteerService.CreateProfile(userID, req.toInput())
	if err != nil {
		respondVolunteerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToVolunteerDTO(*volunteer))
}

// GetMyProfile returns the caller's volunteer profile.
func (h *VolunteerHandler) GetMyProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	volunteer, err := h.volunteerService.GetProfileByUser(userID)
	if err != nil {
		respondVolunteerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVolunteerDTO(*volunteer))
}

// GetVolunteer returns a volunteer by ID.
func (h *VolunteerHandler) GetVolunteer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid volunteer ID")
		return
	}

	volunteer, err := h.volunteerService.GetVolunteer(id)
	if err != nil {
		respondVolunteerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVolunteerDTO(*volunteer))
}

// UpdateProfile updates the caller's own volunteer profile fields.
func (h *VolunteerHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	profile, err := h.volunteerService.GetProfileByUser(userID)
	if err != nil {
		respondVolunteerError(c, err)
		return
	}

	volunteer, err := h.volunteerService.UpdateProfile(profile.ID, userID, req.toInput())
	if err != nil {
		respondVolunteerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVolunteerDTO(*volunteer))
}

// DeleteProfile deletes the caller's own volunteer profile.
func (h *VolunteerHandler) DeleteProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	profile, err := h.volunteerService.GetProfileByUser(userID)
	if err != nil {
		respondVolunteerError(c, err)
		return
	}

	if err := h.volunteerService.DeleteProfile(profile.ID, userID); err != nil {
		respondVolunteerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Volunteer profile deleted"})
}

// ListVolunteers lists volunteers with optional status filtering. Admin only.
func (h *VolunteerHandler) ListVolunteers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var status *models.VolunteerStatus
	if s := c.Query("status"); s != "" {
		vs := models.VolunteerStatus(s)
		if !vs.IsValid() {
			apierrors.BadRequest(c, "Invalid status filter")
			return
		}
		status = &vs
	}

	volunteers, total, err := h.volunteerService.ListVolunteers(status, params.Page, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "Failed to list volunteers")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"volunteers": dto.ToVolunteerDTOs(volunteers),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// respondVolunteerError maps volunteer service errors to HTTP responses.
func respondVolunteerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProfileAlreadyExists):
		apierrors.ConflictWithCode(c, apierrors.ErrCodeAlreadyExists, "A volunteer profile already exists for this account")
	case errors.Is(err, services.ErrVolunteerNotFound):
		apierrors.NotFound(c, "Volunteer not found")
	case errors.Is(err, services.ErrNotProfileOwner):
		apierrors.Forbidden(c, "Only the profile owner can perform this action")
	case errors.Is(err, services.ErrVolunteerHasHistory):
		apierrors.Conflict(c, "Volunteer has assignment history and cannot be deleted")
	case errors.Is(err, services.ErrFirstNameRequired),
		errors.Is(err, services.ErrLastNameRequired),
		errors.Is(err, services.ErrContactEmailRequired),
		errors.Is(err, services.ErrPhoneNumberRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
