package models

import (
	"time"

	"gorm.io/gorm"
)

type DisasterType string

const (
	DisasterTypeFlood      DisasterType = "Flood"
	DisasterTypeFire       DisasterType = "Fire"
	DisasterTypeEarthquake DisasterType = "Earthquake"
	DisasterTypeHurricane  DisasterType = "Hurricane"
	DisasterTypeTornado    DisasterType = "Tornado"
	DisasterTypeDrought    DisasterType = "Drought"
	DisasterTypePandemic   DisasterType = "Pandemic"
	DisasterTypeOther      DisasterType = "Other"
)

type IncidentSeverity string

const (
	IncidentSeverityLow      IncidentSeverity = "Low"
	IncidentSeverityMedium   IncidentSeverity = "Medium"
	IncidentSeverityHigh     IncidentSeverity = "High"
	IncidentSeverityCritical IncidentSeverity = "Critical"
)

type IncidentStatus string

const (
	IncidentStatusReported    IncidentStatus = "Reported"
	IncidentStatusUnderReview IncidentStatus = "UnderReview"
	IncidentStatusInProgress  IncidentStatus = "InProgress"
	IncidentStatusResolved    IncidentStatus = "Resolved"
	IncidentStatusClosed      IncidentStatus = "Closed"
)

// IsValid reports whether the value is a known incident status.
func (s IncidentStatus) IsValid() bool {
	switch s {
	case IncidentStatusReported, IncidentStatusUnderReview, IncidentStatusInProgress,
		IncidentStatusResolved, IncidentStatusClosed:
		return true
	}
	return false
}

type Incident struct {
	ID                      uint64           `gorm:"primarykey" json:"id"`
	Title                   string           `gorm:"type:varchar(100);not null" json:"title"`
	Description             string           `gorm:"type:text;not null" json:"description"`
	Type                    DisasterType     `gorm:"type:varchar(20);not null" json:"type"`
	Severity                IncidentSeverity `gorm:"type:varchar(20);not null" json:"severity"`
	Location                string           `gorm:"type:varchar(200);not null" json:"location"`
	City                    string           `gorm:"type:varchar(50);not null" json:"city"`
	State                   string           `gorm:"type:varchar(50);not null" json:"state"`
	PostalCode              string           `gorm:"type:varchar(20);not null" json:"postal_code"`
	Latitude                *float64         `json:"latitude"`
	Longitude               *float64         `json:"longitude"`
	IncidentDate            time.Time        `gorm:"not null" json:"incident_date"`
	ReportedDate            time.Time        `gorm:"not null" json:"reported_date"`
	ReporterID              uint64           `gorm:"not null;index" json:"reporter_id"`
	Status                  IncidentStatus   `gorm:"type:varchar(20);not null;default:'Reported'" json:"status"`
	AdditionalNotes         string           `gorm:"type:varchar(500)" json:"additional_notes"`
	EstimatedAffectedPeople *int             `json:"estimated_affected_people"`
	CreatedAt               time.Time        `json:"created_at"`
	UpdatedAt               time.Time        `json:"updated_at"`
	DeletedAt               gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relations
	Reporter User `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
}
