package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskCategory string

const (
	TaskCategoryReliefDistribution TaskCategory = "ReliefDistribution"
	TaskCategorySearchAndRescue    TaskCategory = "SearchAndRescue"
	TaskCategoryMedicalSupport     TaskCategory = "MedicalSupport"
	TaskCategoryLogistics          TaskCategory = "Logistics"
	TaskCategoryCommunication      TaskCategory = "Communication"
	TaskCategoryFundraising        TaskCategory = "Fundraising"
	TaskCategoryAdministrative     TaskCategory = "Administrative"
	TaskCategoryCleanup            TaskCategory = "Cleanup"
	TaskCategoryTransportation     TaskCategory = "Transportation"
	TaskCategoryOther              TaskCategory = "Other"
)

type TaskPriority string

const (
	TaskPriorityLow      TaskPriority = "Low"
	TaskPriorityMedium   TaskPriority = "Medium"
	TaskPriorityHigh     TaskPriority = "High"
	TaskPriorityCritical TaskPriority = "Critical"
)

type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "Open"
	TaskStatusAssigned   TaskStatus = "Assigned"
	TaskStatusInProgress TaskStatus = "InProgress"
	TaskStatusCompleted  TaskStatus = "Completed"
	TaskStatusCancelled  TaskStatus = "Cancelled"
)

// taskTransitions covers manual status edits. Open -> Assigned is reserved for
// the allocation engine, which flips it inside the apply transaction. Cancelled
// tasks may be reopened, subject to the fill consistency check.
var taskTransitions = map[TaskStatus][]TaskStatus{
	TaskStatusOpen:       {TaskStatusCancelled},
	TaskStatusAssigned:   {TaskStatusInProgress, TaskStatusCancelled},
	TaskStatusInProgress: {TaskStatusCompleted, TaskStatusCancelled},
	TaskStatusCancelled:  {TaskStatusOpen},
}

// IsValid reports whether the value is a known task status.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusOpen, TaskStatusAssigned, TaskStatusInProgress,
		TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a manual edit may move the status to target.
func (s TaskStatus) CanTransitionTo(target TaskStatus) bool {
	for _, allowed := range taskTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

type Task struct {
	ID                  uint64         `gorm:"primarykey" json:"id"`
	Title               string         `gorm:"type:varchar(100);not null" json:"title"`
	Description         string         `gorm:"type:text;not null" json:"description"`
	Category            TaskCategory   `gorm:"type:varchar(30);not null" json:"category"`
	Priority            TaskPriority   `gorm:"type:varchar(20);not null" json:"priority"`
	Location            string         `gorm:"type:varchar(200);not null" json:"location"`
	StartDate           *time.Time     `json:"start_date"`
	EndDate             *time.Time     `json:"end_date"`
	CreatedDate         time.Time      `gorm:"not null" json:"created_date"`
	Status              TaskStatus     `gorm:"type:varchar(20);not null;default:'Open'" json:"status"`
	RequiredVolunteers  int            `gorm:"not null" json:"required_volunteers"`
	CurrentVolunteers   int            `gorm:"not null;default:0" json:"current_volunteers"`
	AssignedVolunteerID *uint64        `json:"assigned_volunteer_id"`
	RequiredSkills      string         `gorm:"type:varchar(200)" json:"required_skills"`
	Equipment           string         `gorm:"type:varchar(200)" json:"equipment"`
	EstimatedHours      *int           `json:"estimated_hours"`
	Notes               string         `gorm:"type:varchar(500)" json:"notes"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	AssignedVolunteer *Volunteer   `gorm:"foreignKey:AssignedVolunteerID" json:"assigned_volunteer,omitempty"`
	Assignments       []Assignment `gorm:"foreignKey:TaskID" json:"assignments,omitempty"`
}

// IsFull reports whether the task has reached its capacity.
func (t *Task) IsFull() bool {
	return t.CurrentVolunteers >= t.RequiredVolunteers
}

// StatusConsistentWithFill reports whether a status value agrees with the fill
// counter. Open and Assigned are the two states the counter derives; the rest
// carry no fill semantics.
func (t *Task) StatusConsistentWithFill(status TaskStatus) bool {
	switch status {
	case TaskStatusOpen:
		return !t.IsFull()
	case TaskStatusAssigned:
		return t.IsFull()
	default:
		return true
	}
}
