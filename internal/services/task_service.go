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
	ErrTitleRequired          = errors.New("title is required")
	ErrDescriptionRequired    = errors.New("description is required")
	ErrLocationRequired       = errors.New("location is required")
	ErrInvalidCapacity        = errors.New("required volunteers must be at least 1")
	ErrTaskHasHistory         = errors.New("task has assignment history and cannot be deleted")
	ErrInvalidTaskStatus      = errors.New("unknown task status")
	ErrTaskStatusTransition   = errors.New("status transition not allowed")
	ErrTaskStatusInconsistent = errors.New("status contradicts the current volunteer count")
)

// TaskService handles task catalog business logic. The fill counter and the
// Open -> Assigned flip belong to the allocation engine, never to this service.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// CreateTaskInput represents input for publishing a task
type CreateTaskInput struct {
	Title              string
	Description        string
	Category           models.TaskCategory
	Priority           models.TaskPriority
	Location           string
	StartDate          *time.Time
	EndDate            *time.Time
	RequiredVolunteers int
	RequiredSkills     string
	Equipment          string
	EstimatedHours     *int
	Notes              string
}

// UpdateTaskInput holds the editable descriptive task fields. Status, capacity
// and the fill counter are excluded deliberately.
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	Category       *models.TaskCategory
	Priority       *models.TaskPriority
	Location       *string
	StartDate      *time.Time
	EndDate        *time.Time
	RequiredSkills *string
	Equipment      *string
	EstimatedHours *int
	Notes          *string
}

// CreateTask publishes a new relief task. Capacity is fixed at creation and
// must be at least one; tasks always start Open with an empty fill counter.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, ErrDescriptionRequired
	}
	if strings.TrimSpace(input.Location) == "" {
		return nil, ErrLocationRequired
	}
	if input.RequiredVolunteers < 1 {
		return nil, ErrInvalidCapacity
	}

	task := &models.Task{
		Title:              strings.TrimSpace(input.Title),
		Description:        input.Description,
		Category:           input.Category,
		Priority:           input.Priority,
		Location:           strings.TrimSpace(input.Location),
		StartDate:          input.StartDate,
		EndDate:            input.EndDate,
		CreatedDate:        time.Now().UTC(),
		Status:             models.TaskStatusOpen,
		RequiredVolunteers: input.RequiredVolunteers,
		CurrentVolunteers:  0,
		RequiredSkills:     input.RequiredSkills,
		Equipment:          input.Equipment,
		EstimatedHours:     input.EstimatedHours,
		Notes:              input.Notes,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// GetTask returns a task with its assignments
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Assignments", "Assignments.Volunteer")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// ListTasks lists tasks with optional filtering, newest first
func (s *TaskService) ListTasks(status *models.TaskStatus, category *models.TaskCategory, page, pageSize int) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.List(repository.TaskFilter{
		Status:   status,
		Category: category,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// UpdateTask updates the descriptive fields of a task.
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleRequired
		}
		task.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Category != nil {
		task.Category = *input.Category
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.Location != nil {
		task.Location = strings.TrimSpace(*input.Location)
	}
	if input.StartDate != nil {
		task.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		task.EndDate = input.EndDate
	}
	if input.RequiredSkills != nil {
		task.RequiredSkills = *input.RequiredSkills
	}
	if input.Equipment != nil {
		task.Equipment = *input.Equipment
	}
	if input.EstimatedHours != nil {
		task.EstimatedHours = input.EstimatedHours
	}
	if input.Notes != nil {
		task.Notes = *input.Notes
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// SetStatus applies a manual status edit. Edits follow the transition table
// and must agree with the fill counter; an Open task cannot be declared
// Assigned short of capacity, nor reopened once full.
func (s *TaskService) SetStatus(taskID uint64, status models.TaskStatus) (*models.Task, error) {
	if !status.IsValid() {
		return nil, ErrInvalidTaskStatus
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if status == task.Status {
		return task, nil
	}

	if !task.Status.CanTransitionTo(status) {
		return nil, ErrTaskStatusTransition
	}
	if !task.StatusConsistentWithFill(status) {
		return nil, ErrTaskStatusInconsistent
	}

	if err := s.taskRepo.UpdateStatus(taskID, status); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	task.Status = status
	return task, nil
}

// DeleteTask deletes a task. Tasks with assignment history are kept; deletion
// is rejected rather than cascaded.
func (s *TaskService) DeleteTask(taskID uint64) error {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		if errors.Is(err, repository.ErrTaskHasAssignments) {
			return ErrTaskHasHistory
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}
