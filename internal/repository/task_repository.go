package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/reliefops/disaster-relief-api/internal/database"
	"github.com/reliefops/disaster-relief-api/internal/models"
)

var (
	// ErrApplyAlreadyApplied is returned when an assignment already exists for
	// the (volunteer, task) pair. Any prior assignment blocks re-application,
	// regardless of its status.
	ErrApplyAlreadyApplied = errors.New("task repository: volunteer already applied")

	// ErrApplyTaskClosed is returned when the task is not accepting applications.
	ErrApplyTaskClosed = errors.New("task repository: task not open")

	// ErrApplyTaskFull is returned when the task has reached its capacity.
	ErrApplyTaskFull = errors.New("task repository: task full")

	// ErrApplyConflict is returned when a concurrent applicant invalidated the
	// capacity check between the read and the guarded write. The caller
	// re-reads and re-classifies before giving up.
	ErrApplyConflict = errors.New("task repository: concurrent application conflict")

	// ErrTaskHasAssignments is returned when deleting a task that still holds
	// ledger rows.
	ErrTaskHasAssignments = errors.New("task repository: task has assignments")
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks with filtering and pagination, newest first
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_date DESC").
		Scopes(database.Paginate(filter.Page, filter.PageSize)).
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// UpdateStatus writes a task status value
func (r *GormTaskRepository) UpdateStatus(id uint64, status models.TaskStatus) error {
	return r.db.Model(&models.Task{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// Delete soft deletes a task. The delete is rejected while assignment rows
// reference the task.
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Assignment{}).
			Where("task_id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrTaskHasAssignments
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}

// CountAssignments counts assignment rows referencing a task
func (r *GormTaskRepository) CountAssignments(taskID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Assignment{}).
		Where("task_id = ?", taskID).
		Count(&count).Error
	return count, err
}

// Apply records one assignment and advances the task fill counter as a single
// atomic unit. The capacity check rides on a guarded UPDATE whose WHERE clause
// re-asserts the open status and remaining capacity, so two applications that
// both read capacity before either wrote cannot both succeed: the loser's
// update matches zero rows and the transaction rolls back with ErrApplyConflict.
// The unique index on (volunteer_id, task_id) backstops the duplicate check.
func (r *GormTaskRepository) Apply(volunteerID, taskID uint64, now time.Time) (*models.Assignment, error) {
	var assignment *models.Assignment

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.First(&task, taskID).Error; err != nil {
			return err
		}

		var prior int64
		if err := tx.Model(&models.Assignment{}).
			Where("volunteer_id = ? AND task_id = ?", volunteerID, taskID).
			Count(&prior).Error; err != nil {
			return err
		}
		if prior > 0 {
			return ErrApplyAlreadyApplied
		}

		if task.Status != models.TaskStatusOpen {
			return ErrApplyTaskClosed
		}
		if task.IsFull() {
			return ErrApplyTaskFull
		}

		assignment = &models.Assignment{
			VolunteerID:  volunteerID,
			TaskID:       taskID,
			AssignedDate: now,
			Status:       models.AssignmentStatusAssigned,
		}
		if err := tx.Create(assignment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrApplyAlreadyApplied
			}
			return err
		}

		res := tx.Model(&models.Task{}).
			Where("id = ? AND status = ? AND current_volunteers < required_volunteers",
				taskID, models.TaskStatusOpen).
			Update("current_volunteers", gorm.Expr("current_volunteers + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrApplyConflict
		}

		// Flip to Assigned in the same transaction when this increment
		// filled the task, so no reader observes a full task still Open.
		if err := tx.Model(&models.Task{}).
			Where("id = ? AND current_volunteers >= required_volunteers", taskID).
			Update("status", models.TaskStatusAssigned).Error; err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return assignment, nil
}
