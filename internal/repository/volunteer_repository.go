package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/reliefops/disaster-relief-api/internal/database"
	"github.com/reliefops/disaster-relief-api/internal/models"
)

// ErrVolunteerHasAssignments is returned when deleting a volunteer that still
// holds ledger rows. Deletion is rejected rather than cascaded so the
// assignment history stays intact.
var ErrVolunteerHasAssignments = errors.New("volunteer repository: volunteer has assignments")

// GormVolunteerRepository is a GORM implementation of VolunteerRepository
type GormVolunteerRepository struct {
	db *gorm.DB
}

// NewVolunteerRepository creates a new VolunteerRepository
func NewVolunteerRepository(db *gorm.DB) VolunteerRepository {
	return &GormVolunteerRepository{db: db}
}

// Create creates a new volunteer profile
func (r *GormVolunteerRepository) Create(volunteer *models.Volunteer) error {
	return r.db.Create(volunteer).Error
}

// FindByID finds a volunteer by ID with optional preloading
func (r *GormVolunteerRepository) FindByID(id uint64, preload ...string) (*models.Volunteer, error) {
	var volunteer models.Volunteer
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&volunteer, id).Error; err != nil {
		return nil, err
	}
	return &volunteer, nil
}

// FindByUserID finds the volunteer profile owned by a user
func (r *GormVolunteerRepository) FindByUserID(userID uint64) (*models.Volunteer, error) {
	var volunteer models.Volunteer
	if err := r.db.Where("user_id = ?", userID).First(&volunteer).Error; err != nil {
		return nil, err
	}
	return &volunteer, nil
}

// List retrieves volunteers with optional status filtering and pagination
func (r *GormVolunteerRepository) List(filter VolunteerFilter) ([]models.Volunteer, int64, error) {
	var volunteers []models.Volunteer

	query := r.db.Model(&models.Volunteer{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("registration_date DESC").
		Scopes(database.Paginate(filter.Page, filter.PageSize)).
		Find(&volunteers).Error; err != nil {
		return nil, 0, err
	}

	return volunteers, total, nil
}

// Update updates a volunteer profile
func (r *GormVolunteerRepository) Update(volunteer *models.Volunteer) error {
	return r.db.Save(volunteer).Error
}

// Delete soft deletes a volunteer profile. The delete is rejected while
// assignment rows reference the volunteer.
func (r *GormVolunteerRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Assignment{}).
			Where("volunteer_id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrVolunteerHasAssignments
		}

		return tx.Delete(&models.Volunteer{}, id).Error
	})
}

// CountAssignments counts assignment rows referencing a volunteer
func (r *GormVolunteerRepository) CountAssignments(volunteerID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Assignment{}).
		Where("volunteer_id = ?", volunteerID).
		Count(&count).Error
	return count, err
}
