package repository

import (
	"gorm.io/gorm"

	"github.com/reliefops/disaster-relief-api/internal/database"
	"github.com/reliefops/disaster-relief-api/internal/models"
)

// GormAssignmentRepository is a GORM implementation of AssignmentRepository
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// FindByID finds an assignment by ID with optional preloading
func (r *GormAssignmentRepository) FindByID(id uint64, preload ...string) (*models.Assignment, error) {
	var assignment models.Assignment
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&assignment, id).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// FindByVolunteerAndTask finds the assignment for a (volunteer, task) pair
func (r *GormAssignmentRepository) FindByVolunteerAndTask(volunteerID, taskID uint64) (*models.Assignment, error) {
	var assignment models.Assignment
	if err := r.db.Where("volunteer_id = ? AND task_id = ?", volunteerID, taskID).
		First(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// ListByVolunteer lists a volunteer's assignments, newest first
func (r *GormAssignmentRepository) ListByVolunteer(volunteerID uint64, page, pageSize int) ([]models.Assignment, int64, error) {
	var assignments []models.Assignment

	query := r.db.Model(&models.Assignment{}).Where("volunteer_id = ?", volunteerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("assigned_date DESC").
		Scopes(database.Paginate(page, pageSize)).
		Preload("Task").
		Find(&assignments).Error; err != nil {
		return nil, 0, err
	}

	return assignments, total, nil
}

// Update updates an assignment
func (r *GormAssignmentRepository) Update(assignment *models.Assignment) error {
	return r.db.Save(assignment).Error
}

// Complete writes the completed assignment and adds the worked hours to the
// volunteer's running total in the same transaction, keeping the accumulator
// consistent with the ledger.
func (r *GormAssignmentRepository) Complete(assignment *models.Assignment, hours int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(assignment).Error; err != nil {
			return err
		}

		return tx.Model(&models.Volunteer{}).
			Where("id = ?", assignment.VolunteerID).
			Update("total_hours_volunteered", gorm.Expr("total_hours_volunteered + ?", hours)).
			Error
	})
}
