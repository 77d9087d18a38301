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

// DonationHandler coordinates donation record HTTP handlers.
type DonationHandler struct {
	donationService *services.DonationService
}

// NewDonationHandler creates a new DonationHandler
func NewDonationHandler(donationService *services.DonationService) *DonationHandler {
	return &DonationHandler{
		donationService: donationService,
	}
}

type donationRequest struct {
	ItemName       string     `json:"item_name" binding:"required,max=100"`
	Description    string     `json:"description" binding:"max=500"`
	Quantity       int        `json:"quantity" binding:"required,min=1"`
	Unit           string     `json:"unit" binding:"required,max=30"`
	EstimatedValue *float64   `json:"estimated_value"`
	Type           string     `json:"type" binding:"required,donationtype"`
	CategoryID     uint64     `json:"category_id" binding:"required"`
	PickupLocation string     `json:"pickup_location" binding:"max=200"`
	PickupDate     *time.Time `json:"pickup_date"`
	Notes          string     `json:"notes" binding:"max=500"`
	IsUrgent       bool       `json:"is_urgent"`
	ExpiryDate     *time.Time `json:"expiry_date"`
}

func (r *donationRequest) toInput() services.DonationInput {
	return services.DonationInput{
		ItemName:       r.ItemName,
		Description:    r.Description,
		Quantity:       r.Quantity,
		Unit:           r.Unit,
		EstimatedValue: r.EstimatedValue,
		Type:           models.DonationType(r.Type),
		CategoryID:     r.CategoryID,
		PickupLocation: r.PickupLocation,
		PickupDate:     r.PickupDate,
		Notes:          r.Notes,
		IsUrgent:       r.IsUrgent,
		ExpiryDate:     r.ExpiryDate,
	}
}

// RecordDonation records a new donation pledge for the caller.
func (h *DonationHandler) RecordDonation(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req donationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	donation, err := h.donationService.RecordDonation(userID, req.toInput())
	if err != nil {
		respondDonationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, donation)
}

// ListDonations lists donations, newest first.
func (h *DonationHandler) ListDonations(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	donations, total, err := h.donationService.ListDonations(params.Page, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "Failed to list donations")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"donations": donations,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// ListCategories lists the donation categories.
func (h *DonationHandler) ListCategories(c *gin.Context) {
	categories, err := h.donationService.ListCategories()
	if err != nil {
		apierrors.InternalError(c, "Failed to list donation categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetDonation returns a donation by ID.
func (h *DonationHandler) GetDonation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid donation ID")
		return
	}

	donation, err := h.donationService.GetDonation(id)
	if err != nil {
		respondDonationError(c, err)
		return
	}

	c.JSON(http.StatusOK, donation)
}

// UpdateDonation updates a donation's descriptive fields.
func (h *DonationHandler) UpdateDonation(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid donation ID")
		return
	}

	var req donationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	donation, err := h.donationService.UpdateDonation(id, userID, middleware.IsAdmin(c), req.toInput())
	if err != nil {
		respondDonationError(c, err)
		return
	}

	c.JSON(http.StatusOK, donation)
}

// DeleteDonation deletes a donation.
func (h *DonationHandler) DeleteDonation(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid donation ID")
		return
	}

	if err := h.donationService.DeleteDonation(id, userID, middleware.IsAdmin(c)); err != nil {
		respondDonationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Donation deleted"})
}

// respondDonationError maps donation service errors to HTTP responses.
func respondDonationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrDonationNotFound):
		apierrors.NotFound(c, "Donation not found")
	case errors.Is(err, services.ErrNotDonationOwner):
		apierrors.Forbidden(c, "Only the donor can perform this action")
	case errors.Is(err, services.ErrDonationCategoryUnknown):
		apierrors.BadRequest(c, "Donation category not found")
	case errors.Is(err, services.ErrDonationItemRequired),
		errors.Is(err, services.ErrDonationUnitRequired),
		errors.Is(err, services.ErrInvalidQuantity):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
