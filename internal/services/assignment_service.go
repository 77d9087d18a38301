package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/reliefops/disaster-relief-api/internal/constants"
	"github.com/reliefops/disaster-relief-api/internal/models"
	"github.com/reliefops/disaster-relief-api/internal/repository"
)

var (
	ErrAssignmentNotFound         = errors.New("assignment not found")
	ErrNotAssignmentOwner         = errors.New("only the assigned volunteer can perform this action")
	ErrAssignmentTransition       = errors.New("assignment status transition not allowed")
	ErrHoursRequired              = errors.New("hours worked must be provided and non-negative")
	ErrInvalidRating              = errors.New("rating must be between 1 and 5")
	ErrOutcomeOnlyOnCompletion    = errors.New("hours, feedback and rating can only be set on completion")
)

// AssignmentService drives the assignment ledger's lifecycle after creation.
// Cancelling or no-showing never releases the task's fill counter.
type AssignmentService struct {
	assignmentRepo repository.AssignmentRepository
	volunteerRepo  repository.VolunteerRepository
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(
	assignmentRepo repository.AssignmentRepository,
	volunteerRepo repository.VolunteerRepository,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		volunteerRepo:  volunteerRepo,
	}
}

// CompleteInput carries the outcome data recorded when an assignment finishes.
type CompleteInput struct {
	HoursWorked int
	Feedback    string
	Rating      *int
}

// GetAssignment returns an assignment with its task and volunteer.
func (s *AssignmentService) GetAssignment(id uint64) (*models.Assignment, error) {
	assignment, err := s.assignmentRepo.FindByID(id, "Task", "Volunteer")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}
	return assignment, nil
}

// Transition moves an assignment to the target status on behalf of the acting
// user. Admins may drive any allowed transition; the owning volunteer may
// drive their own. Completion goes through Complete instead, since it carries
// outcome data.
func (s *AssignmentService) Transition(assignmentID, actorUserID uint64, actorIsAdmin bool, target models.AssignmentStatus) (*models.Assignment, error) {
	if target == models.AssignmentStatusCompleted {
		return nil, ErrOutcomeOnlyOnCompletion
	}

	assignment, err := s.authorize(assignmentID, actorUserID, actorIsAdmin)
	if err != nil {
		return nil, err
	}

	if !assignment.Status.CanTransitionTo(target) {
		return nil, ErrAssignmentTransition
	}

	assignment.Status = target
	if target == models.AssignmentStatusInProgress && assignment.StartDate == nil {
		now := time.Now().UTC()
		assignment.StartDate = &now
	}

	if err := s.assignmentRepo.Update(assignment); err != nil {
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}

	return assignment, nil
}

// Complete finishes an assignment and records its outcome. The worked hours
// are added to the volunteer's running total in the same transaction as the
// status write.
func (s *AssignmentService) Complete(assignmentID, actorUserID uint64, actorIsAdmin bool, input CompleteInput) (*models.Assignment, error) {
	if input.HoursWorked < 0 {
		return nil, ErrHoursRequired
	}
	if input.Rating != nil && (*input.Rating < constants.MinRating || *input.Rating > constants.MaxRating) {
		return nil, ErrInvalidRating
	}

	assignment, err := s.authorize(assignmentID, actorUserID, actorIsAdmin)
	if err != nil {
		return nil, err
	}

	if !assignment.Status.CanTransitionTo(models.AssignmentStatusCompleted) {
		return nil, ErrAssignmentTransition
	}

	now := time.Now().UTC()
	assignment.Status = models.AssignmentStatusCompleted
	assignment.CompletionDate = &now
	assignment.HoursWorked = &input.HoursWorked
	assignment.Feedback = input.Feedback
	assignment.Rating = input.Rating

	if err := s.assignmentRepo.Complete(assignment, input.HoursWorked); err != nil {
		return nil, fmt.Errorf("failed to complete assignment: %w", err)
	}

	return assignment, nil
}

// authorize loads the assignment and checks the actor may act on it.
func (s *AssignmentService) authorize(assignmentID, actorUserID uint64, actorIsAdmin bool) (*models.Assignment, error) {
	assignment, err := s.assignmentRepo.FindByID(assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}

	if actorIsAdmin {
		return assignment, nil
	}

	volunteer, err := s.volunteerRepo.FindByID(assignment.VolunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find assignment volunteer: %w", err)
	}
	if volunteer.UserID != actorUserID {
		return nil, ErrNotAssignmentOwner
	}

	return assignment, nil
}
