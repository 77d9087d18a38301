package services

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/reliefops/disaster-relief-api/internal/logger"
	"github.com/reliefops/disaster-relief-api/internal/models"
	"github.com/reliefops/disaster-relief-api/internal/repository"
)

var (
	ErrIncidentNotFound          = errors.New("incident not found")
	ErrDonationNotFound          = errors.New("donation not found")
	ErrInvalidVolunteerStatus    = errors.New("unknown volunteer status")
	ErrInvalidIncidentStatus     = errors.New("unknown incident status")
	ErrInvalidDonationStatus     = errors.New("unknown donation status")
	ErrVolunteerStatusTransition = errors.New("volunteer status transition not allowed")
)

// AdminService implements the administrator approval workflow: volunteer
// approval and suspension plus incident and donation status updates. These
// operations perform no cross-entity validation.
type AdminService struct {
	volunteerRepo repository.VolunteerRepository
	incidentRepo  repository.IncidentRepository
	donationRepo  repository.DonationRepository
}

// NewAdminService creates a new AdminService
func NewAdminService(
	volunteerRepo repository.VolunteerRepository,
	incidentRepo repository.IncidentRepository,
	donationRepo repository.DonationRepository,
) *AdminService {
	return &AdminService{
		volunteerRepo: volunteerRepo,
		incidentRepo:  incidentRepo,
		donationRepo:  donationRepo,
	}
}

// ApproveVolunteer moves a pending volunteer to Approved and stamps their
// last active date.
func (s *AdminService) ApproveVolunteer(volunteerID uint64) (*models.Volunteer, error) {
	return s.SetVolunteerStatus(volunteerID, models.VolunteerStatusApproved)
}

// RejectVolunteer suspends a volunteer. Suspension is terminal and leaves any
// existing assignments untouched.
func (s *AdminService) RejectVolunteer(volunteerID uint64) (*models.Volunteer, error) {
	return s.SetVolunteerStatus(volunteerID, models.VolunteerStatusSuspended)
}

// SetVolunteerStatus applies an administrator status change, enforcing the
// volunteer transition table.
func (s *AdminService) SetVolunteerStatus(volunteerID uint64, status models.VolunteerStatus) (*models.Volunteer, error) {
	if !status.IsValid() {
		return nil, ErrInvalidVolunteerStatus
	}

	volunteer, err := s.volunteerRepo.FindByID(volunteerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVolunteerNotFound
		}
		return nil, fmt.Errorf("failed to find volunteer: %w", err)
	}

	if status == volunteer.Status {
		return volunteer, nil
	}

	if !volunteer.Status.CanTransitionTo(status) {
		return nil, ErrVolunteerStatusTransition
	}

	volunteer.Status = status
	if status == models.VolunteerStatusApproved || status == models.VolunteerStatusActive {
		now := time.Now().UTC()
		volunteer.LastActiveDate = &now
	}

	if err := s.volunteerRepo.Update(volunteer); err != nil {
		return nil, fmt.Errorf("failed to update volunteer status: %w", err)
	}

	logger.L().Info("volunteer status changed",
		zap.Uint64("volunteer_id", volunteer.ID),
		zap.String("status", string(status)),
	)

	return volunteer, nil
}

// SetIncidentStatus writes an incident status.
func (s *AdminService) SetIncidentStatus(incidentID uint64, status models.IncidentStatus) (*models.Incident, error) {
	if !status.IsValid() {
		return nil, ErrInvalidIncidentStatus
	}

	incident, err := s.incidentRepo.FindByID(incidentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIncidentNotFound
		}
		return nil, fmt.Errorf("failed to find incident: %w", err)
	}

	incident.Status = status
	if err := s.incidentRepo.Update(incident); err != nil {
		return nil, fmt.Errorf("failed to update incident status: %w", err)
	}

	return incident, nil
}

// SetDonationStatus writes a donation status and its status-linked timestamps.
func (s *AdminService) SetDonationStatus(donationID uint64, status models.DonationStatus) (*models.Donation, error) {
	if !status.IsValid() {
		return nil, ErrInvalidDonationStatus
	}

	donation, err := s.donationRepo.FindByID(donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, fmt.Errorf("failed to find donation: %w", err)
	}

	donation.Status = status
	now := time.Now().UTC()
	switch status {
	case models.DonationStatusCollected:
		donation.PickupDate = &now
	case models.DonationStatusDistributed:
		donation.DistributionDate = &now
	}

	if err := s.donationRepo.Update(donation); err != nil {
		return nil, fmt.Errorf("failed to update donation status: %w", err)
	}

	return donation, nil
}
