package dto

import (
	"time"

	"github.com/reliefops/disaster-relief-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID                 uint64              `json:"id"`
	Title              string              `json:"title"`
	Description        string              `json:"description"`
	Category           models.TaskCategory `json:"category"`
	Priority           models.TaskPriority `json:"priority"`
	Location           string              `json:"location"`
	StartDate          *time.Time          `json:"start_date,omitempty"`
	EndDate            *time.Time          `json:"end_date,omitempty"`
	CreatedDate        time.Time           `json:"created_date"`
	Status             models.TaskStatus   `json:"status"`
	RequiredVolunteers int                 `json:"required_volunteers"`
	CurrentVolunteers  int                 `json:"current_volunteers"`
	RequiredSkills     string              `json:"required_skills,omitempty"`
	Equipment          string              `json:"equipment,omitempty"`
	EstimatedHours     *int                `json:"estimated_hours,omitempty"`
	Notes              string              `json:"notes,omitempty"`
	Assignments        []AssignmentDTO     `json:"assignments,omitempty"`
}

// AssignmentDTO represents an assignment ledger row in API responses
type AssignmentDTO struct {
	ID             uint64                  `json:"id"`
	VolunteerID    uint64                  `json:"volunteer_id"`
	TaskID         uint64                  `json:"task_id"`
	AssignedDate   time.Time               `json:"assigned_date"`
	StartDate      *time.Time              `json:"start_date,omitempty"`
	CompletionDate *time.Time              `json:"completion_date,omitempty"`
	Status         models.AssignmentStatus `json:"status"`
	HoursWorked    *int                    `json:"hours_worked,omitempty"`
	Feedback       string                  `json:"feedback,omitempty"`
	Rating         *int                    `json:"rating,omitempty"`
	Volunteer      *VolunteerDTO           `json:"volunteer,omitempty"`
	Task           *TaskDTO                `json:"task,omitempty"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:                 task.ID,
		Title:              task.Title,
		Description:        task.Description,
		Category:           task.Category,
		Priority:           task.Priority,
		Location:           task.Location,
		StartDate:          task.StartDate,
		EndDate:            task.EndDate,
		CreatedDate:        task.CreatedDate,
		Status:             task.Status,
		RequiredVolunteers: task.RequiredVolunteers,
		CurrentVolunteers:  task.CurrentVolunteers,
		RequiredSkills:     task.RequiredSkills,
		Equipment:          task.Equipment,
		EstimatedHours:     task.EstimatedHours,
		Notes:              task.Notes,
	}

	// Include assignments if preloaded
	if len(task.Assignments) > 0 {
		dto.Assignments = make([]AssignmentDTO, len(task.Assignments))
		for i, a := range task.Assignments {
			dto.Assignments[i] = ToAssignmentDTO(a)
		}
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = ToTaskDTO(t)
	}
	return dtos
}

// ToAssignmentDTO converts an Assignment model to AssignmentDTO
func ToAssignmentDTO(a models.Assignment) AssignmentDTO {
	dto := AssignmentDTO{
		ID:             a.ID,
		VolunteerID:    a.VolunteerID,
		TaskID:         a.TaskID,
		AssignedDate:   a.AssignedDate,
		StartDate:      a.StartDate,
		CompletionDate: a.CompletionDate,
		Status:         a.Status,
		HoursWorked:    a.HoursWorked,
		Feedback:       a.Feedback,
		Rating:         a.Rating,
	}

	// Include volunteer if preloaded
	if a.Volunteer.ID != 0 {
		volunteer := ToVolunteerDTO(a.Volunteer)
		dto.Volunteer = &volunteer
	}

	// Include task if preloaded
	if a.Task.ID != 0 {
		task := ToTaskDTO(a.Task)
		dto.Task = &task
	}

	return dto
}

// ToAssignmentDTOs converts a slice of assignments
func ToAssignmentDTOs(assignments []models.Assignment) []AssignmentDTO {
	dtos := make([]AssignmentDTO, len(assignments))
	for i, a := range assignments {
		dtos[i] = ToAssignmentDTO(a)
	}
	return dtos
}
