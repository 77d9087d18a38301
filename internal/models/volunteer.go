package models

import (
	"time"

	"gorm.io/gorm"
)

type VolunteerStatus string

const (
	VolunteerStatusPending   VolunteerStatus = "Pending"
	VolunteerStatusApproved  VolunteerStatus = "Approved"
	VolunteerStatusActive    VolunteerStatus = "Active"
	VolunteerStatusInactive  VolunteerStatus = "Inactive"
	VolunteerStatusSuspended VolunteerStatus = "Suspended"
)

// volunteerTransitions is the allowed status transition table. Suspension is
// reachable from every state; nothing leads out of Suspended.
var volunteerTransitions = map[VolunteerStatus][]VolunteerStatus{
	VolunteerStatusPending:  {VolunteerStatusApproved, VolunteerStatusSuspended},
	VolunteerStatusApproved: {VolunteerStatusActive, VolunteerStatusSuspended},
	VolunteerStatusActive:   {VolunteerStatusApproved, VolunteerStatusInactive, VolunteerStatusSuspended},
	VolunteerStatusInactive: {VolunteerStatusSuspended},
}

// IsValid reports whether the value is a known volunteer status.
func (s VolunteerStatus) IsValid() bool {
	switch s {
	case VolunteerStatusPending, VolunteerStatusApproved, VolunteerStatusActive,
		VolunteerStatusInactive, VolunteerStatusSuspended:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status may move to the target state.
func (s VolunteerStatus) CanTransitionTo(target VolunteerStatus) bool {
	for _, allowed := range volunteerTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// CanApply reports whether a volunteer with this status may apply to tasks.
func (s VolunteerStatus) CanApply() bool {
	return s == VolunteerStatusApproved || s == VolunteerStatusActive
}

type Volunteer struct {
	ID                    uint64          `gorm:"primarykey" json:"id"`
	UserID                uint64          `gorm:"uniqueIndex;not null" json:"user_id"`
	FirstName             string          `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName              string          `gorm:"type:varchar(100);not null" json:"last_name"`
	Email                 string          `gorm:"type:varchar(255);not null" json:"email"`
	PhoneNumber           string          `gorm:"type:varchar(30);not null" json:"phone_number"`
	Address               string          `gorm:"type:varchar(200)" json:"address"`
	City                  string          `gorm:"type:varchar(50)" json:"city"`
	State                 string          `gorm:"type:varchar(50)" json:"state"`
	PostalCode            string          `gorm:"type:varchar(20)" json:"postal_code"`
	DateOfBirth           *time.Time      `json:"date_of_birth"`
	EmergencyContactName  string          `gorm:"type:varchar(50)" json:"emergency_contact_name"`
	EmergencyContactPhone string          `gorm:"type:varchar(30)" json:"emergency_contact_phone"`
	Skills                string          `gorm:"type:varchar(200)" json:"skills"`
	Interests             string          `gorm:"type:varchar(200)" json:"interests"`
	Availability          string          `gorm:"type:varchar(100)" json:"availability"`
	Status                VolunteerStatus `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	RegistrationDate      time.Time       `gorm:"not null" json:"registration_date"`
	LastActiveDate        *time.Time      `json:"last_active_date"`
	HasBackgroundCheck    bool            `gorm:"not null;default:false" json:"has_background_check"`
	BackgroundCheckDate   *time.Time      `json:"background_check_date"`
	TotalHoursVolunteered int             `gorm:"not null;default:0" json:"total_hours_volunteered"`
	Notes                 string          `gorm:"type:varchar(500)" json:"notes"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
	DeletedAt             gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relations
	User        User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Assignments []Assignment `gorm:"foreignKey:VolunteerID" json:"assignments,omitempty"`
}
