package services

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/reliefops/disaster-relief-api/internal/constants"
	"github.com/reliefops/disaster-relief-api/internal/logger"
	"github.com/reliefops/disaster-relief-api/internal/models"
	"github.com/reliefops/disaster-relief-api/internal/repository"
)

var (
	ErrNoVolunteerProfile   = errors.New("no volunteer profile exists for this user")
	ErrVolunteerNotEligible = errors.New("volunteer is not approved for task applications")
	ErrTaskNotFound         = errors.New("task not found")
	ErrAlreadyApplied       = errors.New("volunteer already applied for this task")
	ErrTaskClosed           = errors.New("task is no longer accepting applications")
	ErrTaskFull             = errors.New("task has reached its required number of volunteers")
	ErrTaskBusy             = errors.New("task is receiving concurrent applications, retry")
)

// AllocationService decides whether a volunteer's application to a task is
// admissible and records it. It is the only writer of a task's fill counter.
type AllocationService struct {
	volunteerRepo  repository.VolunteerRepository
	taskRepo       repository.TaskRepository
	assignmentRepo repository.AssignmentRepository
}

// NewAllocationService creates a new AllocationService
func NewAllocationService(
	volunteerRepo repository.VolunteerRepository,
	taskRepo repository.TaskRepository,
	assignmentRepo repository.AssignmentRepository,
) *AllocationService {
	return &AllocationService{
		volunteerRepo:  volunteerRepo,
		taskRepo:       taskRepo,
		assignmentRepo: assignmentRepo,
	}
}

// Apply runs the admission checks for the user's volunteer profile against the
// task and, when all of them hold, records the assignment and advances the
// task's fill counter atomically. The checks are ordered so each failure maps
// to one distinct rejection:
//
//	no profile -> ErrNoVolunteerProfile
//	status not Approved/Active -> ErrVolunteerNotEligible
//	task missing -> ErrTaskNotFound
//	prior assignment -> ErrAlreadyApplied
//	task not Open -> ErrTaskClosed
//	capacity reached -> ErrTaskFull
//
// A lost race on the final capacity check is retried once by re-running the
// transactional apply, which re-reads and re-classifies; a second loss
// surfaces as ErrTaskBusy.
func (s *AllocationService) Apply(userID, taskID uint64) (*models.Assignment, error) {
	volunteer, err := s.volunteerRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoVolunteerProfile
		}
		return nil, fmt.Errorf("failed to find volunteer profile: %w", err)
	}

	if !volunteer.Status.CanApply() {
		return nil, ErrVolunteerNotEligible
	}

	var assignment *models.Assignment
	for attempt := 1; attempt <= constants.ApplyMaxAttempts; attempt++ {
		assignment, err = s.taskRepo.Apply(volunteer.ID, taskID, time.Now().UTC())
		if err == nil {
			logger.L().Info("volunteer assigned to task",
				zap.Uint64("volunteer_id", volunteer.ID),
				zap.Uint64("task_id", taskID),
				zap.Uint64("assignment_id", assignment.ID),
			)
			return assignment, nil
		}

		if errors.Is(err, repository.ErrApplyConflict) {
			logger.L().Warn("concurrent application conflict, retrying",
				zap.Uint64("volunteer_id", volunteer.ID),
				zap.Uint64("task_id", taskID),
				zap.Int("attempt", attempt),
			)
			continue
		}

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrTaskNotFound
		case errors.Is(err, repository.ErrApplyAlreadyApplied):
			return nil, ErrAlreadyApplied
		case errors.Is(err, repository.ErrApplyTaskClosed):
			return nil, ErrTaskClosed
		case errors.Is(err, repository.ErrApplyTaskFull):
			return nil, ErrTaskFull
		default:
			return nil, fmt.Errorf("failed to apply for task: %w", err)
		}
	}

	return nil, ErrTaskBusy
}

// ListMyAssignments lists the assignments of the user's volunteer profile,
// most recent first.
func (s *AllocationService) ListMyAssignments(userID uint64, page, pageSize int) ([]models.Assignment, int64, error) {
	volunteer, err := s.volunteerRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrNoVolunteerProfile
		}
		return nil, 0, fmt.Errorf("failed to find volunteer profile: %w", err)
	}

	assignments, total, err := s.assignmentRepo.ListByVolunteer(volunteer.ID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list assignments: %w", err)
	}

	return assignments, total, nil
}
