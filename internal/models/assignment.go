package models

import "time"

type AssignmentStatus string

const (
	AssignmentStatusAssigned   AssignmentStatus = "Assigned"
	AssignmentStatusAccepted   AssignmentStatus = "Accepted"
	AssignmentStatusInProgress AssignmentStatus = "InProgress"
	AssignmentStatusCompleted  AssignmentStatus = "Completed"
	AssignmentStatusCancelled  AssignmentStatus = "Cancelled"
	AssignmentStatusNoShow     AssignmentStatus = "NoShow"
)

var assignmentTransitions = map[AssignmentStatus][]AssignmentStatus{
	AssignmentStatusAssigned:   {AssignmentStatusAccepted, AssignmentStatusCancelled, AssignmentStatusNoShow},
	AssignmentStatusAccepted:   {AssignmentStatusInProgress, AssignmentStatusCancelled, AssignmentStatusNoShow},
	AssignmentStatusInProgress: {AssignmentStatusCompleted, AssignmentStatusCancelled},
}

// IsValid reports whether the value is a known assignment status.
func (s AssignmentStatus) IsValid() bool {
	switch s {
	case AssignmentStatusAssigned, AssignmentStatusAccepted, AssignmentStatusInProgress,
		AssignmentStatusCompleted, AssignmentStatusCancelled, AssignmentStatusNoShow:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status may move to the target state.
func (s AssignmentStatus) CanTransitionTo(target AssignmentStatus) bool {
	for _, allowed := range assignmentTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions exist from this status.
func (s AssignmentStatus) IsTerminal() bool {
	return len(assignmentTransitions[s]) == 0
}

type Assignment struct {
	ID             uint64           `gorm:"primarykey" json:"id"`
	VolunteerID    uint64           `gorm:"not null;uniqueIndex:idx_assignments_volunteer_task" json:"volunteer_id"`
	TaskID         uint64           `gorm:"not null;uniqueIndex:idx_assignments_volunteer_task" json:"task_id"`
	AssignedDate   time.Time        `gorm:"not null" json:"assigned_date"`
	StartDate      *time.Time       `json:"start_date"`
	CompletionDate *time.Time       `json:"completion_date"`
	Status         AssignmentStatus `gorm:"type:varchar(20);not null;default:'Assigned'" json:"status"`
	HoursWorked    *int             `json:"hours_worked"`
	Notes          string           `gorm:"type:varchar(500)" json:"notes"`
	Feedback       string           `gorm:"type:varchar(500)" json:"feedback"`
	Rating         *int             `json:"rating"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`

	// Relations
	Volunteer Volunteer `gorm:"foreignKey:VolunteerID" json:"volunteer,omitempty"`
	Task      Task      `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}
