package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/reliefops/disaster-relief-api/internal/models"
	"github.com/reliefops/disaster-relief-api/internal/repository"
)

var (
	ErrProfileAlreadyExists  = errors.New("a volunteer profile already exists for this user")
	ErrVolunteerNotFound     = errors.New("volunteer not found")
	ErrNotProfileOwner       = errors.New("only the profile owner can perform this action")
	ErrVolunteerHasHistory   = errors.New("volunteer has assignment history and cannot be deleted")
	ErrFirstNameRequired     = errors.New("first name is required")
	ErrLastNameRequired      = errors.New("last name is required")
	ErrContactEmailRequired  = errors.New("contact email is required")
	ErrPhoneNumberRequired   = errors.New("phone number is required")
)

// VolunteerService handles volunteer registry business logic. Status changes
// are reserved for the admin workflow; profile owners touch profile fields only.
type VolunteerService struct {
	volunteerRepo repository.VolunteerRepository
}

// NewVolunteerService creates a new VolunteerService
func NewVolunteerService(volunteerRepo repository.VolunteerRepository) *VolunteerService {
	return &VolunteerService{
		volunteerRepo: volunteerRepo,
	}
}

// ProfileInput holds the owner-editable volunteer profile fields.
type ProfileInput struct {
	FirstName             string
	LastName              string
	Email                 string
	PhoneNumber           string
	Address               string
	City                  string
	State                 string
	PostalCode            string
	DateOfBirth           *time.Time
	EmergencyContactName  string
	EmergencyContactPhone string
	Skills                string
	Interests             string
	Availability          string
	Notes                 string
}

func (in *ProfileInput) validate() error {
	if strings.TrimSpace(in.FirstName) == "" {
		return ErrFirstNameRequired
	}
	if strings.TrimSpace(in.LastName) == "" {
		return ErrLastNameRequired
	}
	if strings.TrimSpace(in.Email) == "" {
		return ErrContactEmailRequired
	}
	if strings.TrimSpace(in.PhoneNumber) == "" {
		return ErrPhoneNumberRequired
	}
	return nil
}

func (in *ProfileInput) applyTo(v *models.Volunteer) {
	v.FirstName = strings.TrimSpace(in.FirstName)
	v.LastName = strings.TrimSpace(in.LastName)
	v.Email = strings.TrimSpace(in.Email)
	v.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	v.Address = in.Address
	v.City = in.City
	v.State = in.State
	v.PostalCode = in.PostalCode
	v.DateOfBirth = in.DateOfBirth
	v.EmergencyContactName = in.EmergencyContactName
	v.EmergencyContactPhone = in.EmergencyContactPhone
	v.Skills = in.Skills
	v.Interests = in.Interests
	v.Availability = in.Availability
	v.Notes = in.Notes
}

// CreateProfile registers a volunteer profile for the user. One profile per
// account; new profiles always start Pending.
func (s *VolunteerService) CreateProfile(userID uint64, input ProfileInput) (*models.Volunteer, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	if _, err := s.volunteerRepo.FindByUserID(userID); err == nil {
		return nil, ErrProfileAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing profile: %w", err)
	}

	volunteer := &models.Volunteer{
		UserID:           userID,
		Status:           models.VolunteerStatusPending,
		RegistrationDate: time.Now().UTC(),
	}
	input.applyTo(volunteer)

	if err := s.volunteerRepo.Create(volunteer); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrProfileAlreadyExists
		}
		return nil, fmt.Errorf("failed to create volunteer profile: %w", err)
	}

	return volunteer, nil
}

// GetProfileByUser returns the volunteer profile owned by the user.
func (s *VolunteerService) GetProfileByUser(userID uint64) (*models.Volunteer, error) {
	volunteer, err := s.volunteerRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVolunteerNotFound
		}
		return nil, fmt.Errorf("failed to find volunteer profile: %w", err)
	}
	return volunteer, nil
}

// GetVolunteer returns a volunteer by ID.
func (s *VolunteerService) GetVolunteer(id uint64) (*models.Volunteer, error) {
	volunteer, err := s.volunteerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVolunteerNotFound
		}
		return nil, fmt.Errorf("failed to find volunteer: %w", err)
	}
	return volunteer, nil
}

// UpdateProfile updates profile fields on the caller's own volunteer profile.
// Status and the hours accumulator are never touched here.
func (s *VolunteerService) UpdateProfile(volunteerID, callerID uint64, input ProfileInput) (*models.Volunteer, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	volunteer, err := s.volunteerRepo.FindByID(volunteerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVolunteerNotFound
		}
		return nil, fmt.Errorf("failed to find volunteer: %w", err)
	}

	if volunteer.UserID != callerID {
		return nil, ErrNotProfileOwner
	}

	input.applyTo(volunteer)

	if err := s.volunteerRepo.Update(volunteer); err != nil {
		return nil, fmt.Errorf("failed to update volunteer profile: %w", err)
	}

	return volunteer, nil
}

// DeleteProfile deletes the caller's own volunteer profile. Profiles with
// assignment history are kept; deletion is rejected rather than cascaded.
func (s *VolunteerService) DeleteProfile(volunteerID, callerID uint64) error {
	volunteer, err := s.volunteerRepo.FindByID(volunteerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVolunteerNotFound
		}
		return fmt.Errorf("failed to find volunteer: %w", err)
	}

	if volunteer.UserID != callerID {
		return ErrNotProfileOwner
	}

	if err := s.volunteerRepo.Delete(volunteerID); err != nil {
		if errors.Is(err, repository.ErrVolunteerHasAssignments) {
			return ErrVolunteerHasHistory
		}
		return fmt.Errorf("failed to delete volunteer: %w", err)
	}

	return nil
}

// ListVolunteers lists volunteers with optional status filtering, newest first.
func (s *VolunteerService) ListVolunteers(status *models.VolunteerStatus, page, pageSize int) ([]models.Volunteer, int64, error) {
	volunteers, total, err := s.volunteerRepo.List(repository.VolunteerFilter{
		Status:   status,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list volunteers: %w", err)
	}
	return volunteers, total, nil
}
