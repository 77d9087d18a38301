package dto

import (
	"time"

	"github.com/reliefops/disaster-relief-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64          `json:"id"`
	Email     string          `json:"email"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Role      models.UserRole `json:"role"`
}

// VolunteerDTO represents a volunteer profile in API responses
type VolunteerDTO struct {
	ID                    uint64                 `json:"id"`
	UserID                uint64                 `json:"user_id"`
	FirstName             string                 `json:"first_name"`
	LastName              string                 `json:"last_name"`
	Email                 string                 `json:"email"`
	PhoneNumber           string                 `json:"phone_number"`
	Address               string                 `json:"address,omitempty"`
	City                  string                 `json:"city,omitempty"`
	State                 string                 `json:"state,omitempty"`
	PostalCode            string                 `json:"postal_code,omitempty"`
	DateOfBirth           *time.Time             `json:"date_of_birth,omitempty"`
	EmergencyContactName  string                 `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string                 `json:"emergency_contact_phone,omitempty"`
	Skills                string                 `json:"skills,omitempty"`
	Interests             string                 `json:"interests,omitempty"`
	Availability          string                 `json:"availability,omitempty"`
	Status                models.VolunteerStatus `json:"status"`
	RegistrationDate      time.Time              `json:"registration_date"`
	LastActiveDate        *time.Time             `json:"last_active_date,omitempty"`
	TotalHoursVolunteered int                    `json:"total_hours_volunteered"`
	Notes                 string                 `json:"notes,omitempty"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
	}
}

// ToVolunteerDTO converts a Volunteer model to VolunteerDTO
func ToVolunteerDTO(v models.Volunteer) VolunteerDTO {
	return VolunteerDTO{
		ID:                    v.ID,
		UserID:                v.UserID,
		FirstName:             v.FirstName,
		LastName:              v.LastName,
		Email:                 v.Email,
		PhoneNumber:           v.PhoneNumber,
		Address:               v.Address,
		City:                  v.City,
		State:                 v.State,
		PostalCode:            v.PostalCode,
		DateOfBirth:           v.DateOfBirth,
		EmergencyContactName:  v.EmergencyContactName,
		EmergencyContactPhone: v.EmergencyContactPhone,
		Skills:                v.Skills,
		Interests:             v.Interests,
		Availability:          v.Availability,
		Status:                v.Status,
		RegistrationDate:      v.RegistrationDate,
		LastActiveDate:        v.LastActiveDate,
		TotalHoursVolunteered: v.TotalHoursVolunteered,
		Notes:                 v.Notes,
	}
}

// ToVolunteerDTOs converts a slice of volunteers
func ToVolunteerDTOs(volunteers []models.Volunteer) []VolunteerDTO {
	dtos := make([]VolunteerDTO, len(volunteers))
	for i, v := range volunteers {
		dtos[i] = ToVolunteerDTO(v)
	}
	return dtos
}
