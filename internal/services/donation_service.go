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
	ErrNotDonationOwner        = errors.New("only the donor can perform this action")
	ErrDonationItemRequired    = errors.New("item name is required")
	ErrDonationUnitRequired    = errors.New("unit is required")
	ErrInvalidQuantity         = errors.New("quantity must be at least 1")
	ErrDonationCategoryUnknown = errors.New("donation category not found")
)

// DonationService handles donation record keeping.
type DonationService struct {
	donationRepo repository.DonationRepository
}

// NewDonationService creates a new DonationService
func NewDonationService(donationRepo repository.DonationRepository) *DonationService {
	return &DonationService{
		donationRepo: donationRepo,
	}
}

// DonationInput holds the donor-editable donation fields.
type DonationInput struct {
	ItemName       string
	Description    string
	Quantity       int
	Unit           string
	EstimatedValue *float64
	Type           models.DonationType
	CategoryID     uint64
	PickupLocation string
	PickupDate     *time.Time
	Notes          string
	IsUrgent       bool
	ExpiryDate     *time.Time
}

func (in *DonationInput) validate() error {
	if strings.TrimSpace(in.ItemName) == "" {
		return ErrDonationItemRequired
	}
	if strings.TrimSpace(in.Unit) == "" {
		return ErrDonationUnitRequired
	}
	if in.Quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}

// RecordDonation records a new donation pledge for the donor.
func (s *DonationService) RecordDonation(donorID uint64, input DonationInput) (*models.Donation, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	if _, err := s.donationRepo.FindCategoryByID(input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonationCategoryUnknown
		}
		return nil, fmt.Errorf("failed to check donation category: %w", err)
	}

	donation := &models.Donation{
		ItemName:       strings.TrimSpace(input.ItemName),
		Description:    input.Description,
		Quantity:       input.Quantity,
		Unit:           strings.TrimSpace(input.Unit),
		EstimatedValue: input.EstimatedValue,
		Type:           input.Type,
		CategoryID:     input.CategoryID,
		DonorID:        donorID,
		DonationDate:   time.Now().UTC(),
		Status:         models.DonationStatusPending,
		PickupLocation: input.PickupLocation,
		PickupDate:     input.PickupDate,
		Notes:          input.Notes,
		IsUrgent:       input.IsUrgent,
		ExpiryDate:     input.ExpiryDate,
	}

	if err := s.donationRepo.Create(donation); err != nil {
		return nil, fmt.Errorf("failed to create donation: %w", err)
	}

	return donation, nil
}

// GetDonation returns a donation by ID.
func (s *DonationService) GetDonation(id uint64) (*models.Donation, error) {
	donation, err := s.donationRepo.FindByID(id, "Category", "Donor")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, fmt.Errorf("failed to find donation: %w", err)
	}
	return donation, nil
}

// ListDonations lists donations, newest first.
func (s *DonationService) ListDonations(page, pageSize int) ([]models.Donation, int64, error) {
	donations, total, err := s.donationRepo.List(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list donations: %w", err)
	}
	return donations, total, nil
}

// ListCategories lists all donation categories.
func (s *DonationService) ListCategories() ([]models.DonationCategory, error) {
	categories, err := s.donationRepo.ListCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to list donation categories: %w", err)
	}
	return categories, nil
}

// UpdateDonation updates a donation's descriptive fields. Only the donor or an
// admin may edit; status is not touched here.
func (s *DonationService) UpdateDonation(id, actorUserID uint64, actorIsAdmin bool, input DonationInput) (*models.Donation, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	donation, err := s.donationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, fmt.Errorf("failed to find donation: %w", err)
	}

	if !actorIsAdmin && donation.DonorID != actorUserID {
		return nil, ErrNotDonationOwner
	}

	if input.CategoryID != donation.CategoryID {
		if _, err := s.donationRepo.FindCategoryByID(input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDonationCategoryUnknown
			}
			return nil, fmt.Errorf("failed to check donation category: %w", err)
		}
	}

	donation.ItemName = strings.TrimSpace(input.ItemName)
	donation.Description = input.Description
	donation.Quantity = input.Quantity
	donation.Unit = strings.TrimSpace(input.Unit)
	donation.EstimatedValue = input.EstimatedValue
	donation.Type = input.Type
	donation.CategoryID = input.CategoryID
	donation.PickupLocation = input.PickupLocation
	donation.PickupDate = input.PickupDate
	donation.Notes = input.Notes
	donation.IsUrgent = input.IsUrgent
	donation.ExpiryDate = input.ExpiryDate

	if err := s.donationRepo.Update(donation); err != nil {
		return nil, fmt.Errorf("failed to update donation: %w", err)
	}

	return donation, nil
}

// DeleteDonation deletes a donation. Only the donor or an admin may delete.
func (s *DonationService) DeleteDonation(id, actorUserID uint64, actorIsAdmin bool) error {
	donation, err := s.donationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDonationNotFound
		}
		return fmt.Errorf("failed to find donation: %w", err)
	}

	if !actorIsAdmin && donation.DonorID != actorUserID {
		return ErrNotDonationOwner
	}

	if err := s.donationRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete donation: %w", err)
	}

	return nil
}
