package repository

import (
	"time"

	"github.com/reliefops/disaster-relief-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// VolunteerRepository defines the interface for volunteer profile data access
type VolunteerRepository interface {
	// Create creates a new volunteer profile
	Create(volunteer *models.Volunteer) error

	// FindByID finds a volunteer by ID
	FindByID(id uint64, preload ...string) (*models.Volunteer, error)

	// FindByUserID finds the volunteer profile owned by a user
	FindByUserID(userID uint64) (*models.Volunteer, error)

	// List retrieves volunteers with optional status filtering and pagination
	List(filter VolunteerFilter) ([]models.Volunteer, int64, error)

	// Update updates a volunteer profile
	Update(volunteer *models.Volunteer) error

	// Delete soft deletes a volunteer profile; fails while assignments exist
	Delete(id uint64) error

	// CountAssignments counts assignment rows referencing a volunteer
	CountAssignments(volunteerID uint64) (int64, error)
}

// VolunteerFilter holds filtering options for listing volunteers
type VolunteerFilter struct {
	Status   *models.VolunteerStatus
	Page     int
	PageSize int
}

// TaskRepository defines the interface for task data access, including the
// atomic application unit used by the allocation engine.
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// UpdateStatus writes a task status value
	UpdateStatus(id uint64, status models.TaskStatus) error

	// Delete soft deletes a task; fails while assignments exist
	Delete(id uint64) error

	// CountAssignments counts assignment rows referencing a task
	CountAssignments(taskID uint64) (int64, error)

	// Apply atomically records one assignment and advances the task fill
	// counter, flipping the status to Assigned when the task fills.
	Apply(volunteerID, taskID uint64, now time.Time) (*models.Assignment, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Status   *models.TaskStatus
	Category *models.TaskCategory
	Page     int
	PageSize int
}

// AssignmentRepository defines the interface for assignment ledger access
type AssignmentRepository interface {
	// FindByID finds an assignment by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Assignment, error)

	// FindByVolunteerAndTask finds the assignment for a (volunteer, task) pair
	FindByVolunteerAndTask(volunteerID, taskID uint64) (*models.Assignment, error)

	// ListByVolunteer lists a volunteer's assignments, newest first
	ListByVolunteer(volunteerID uint64, page, pageSize int) ([]models.Assignment, int64, error)

	// Update updates an assignment
	Update(assignment *models.Assignment) error

	// Complete writes the completed assignment and adds the worked hours to
	// the volunteer's accumulated total within one transaction.
	Complete(assignment *models.Assignment, hours int) error
}

// IncidentRepository defines the interface for incident record access
type IncidentRepository interface {
	Create(incident *models.Incident) error
	FindByID(id uint64, preload ...string) (*models.Incident, error)
	List(page, pageSize int) ([]models.Incident, int64, error)
	Update(incident *models.Incident) error
	Delete(id uint64) error
}

// DonationRepository defines the interface for donation record access
type DonationRepository interface {
	Create(donation *models.Donation) error
	FindByID(id uint64, preload ...string) (*models.Donation, error)
	List(page, pageSize int) ([]models.Donation, int64, error)
	ListCategories() ([]models.DonationCategory, error)
	FindCategoryByID(id uint64) (*models.DonationCategory, error)
	Update(donation *models.Donation) error
	Delete(id uint64) error
}
