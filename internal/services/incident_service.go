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
	ErrNotIncidentReporter      = errors.New("only the reporter can perform this action")
	ErrIncidentTitleRequired    = errors.New("title is required")
	ErrIncidentLocationRequired = errors.New("location is required")
)

// IncidentService handles incident record keeping. Incidents carry a status
// label but no derived state; admin status changes go through AdminService.
type IncidentService struct {
	incidentRepo repository.IncidentRepository
}

// NewIncidentService creates a new IncidentService
func NewIncidentService(incidentRepo repository.IncidentRepository) *IncidentService {
	return &IncidentService{
		incidentRepo: incidentRepo,
	}
}

// IncidentInput holds the reporter-editable incident fields.
type IncidentInput struct {
	Title                   string
	Description             string
	Type                    models.DisasterType
	Severity                models.IncidentSeverity
	Location                string
	City                    string
	State                   string
	PostalCode              string
	Latitude                *float64
	Longitude               *float64
	IncidentDate            time.Time
	AdditionalNotes         string
	EstimatedAffectedPeople *int
}

func (in *IncidentInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrIncidentTitleRequired
	}
	if strings.TrimSpace(in.Location) == "" {
		return ErrIncidentLocationRequired
	}
	return nil
}

// ReportIncident records a new incident for the reporting user.
func (s *IncidentService) ReportIncident(reporterID uint64, input IncidentInput) (*models.Incident, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	incident := &models.Incident{
		Title:                   strings.TrimSpace(input.Title),
		Description:             input.Description,
		Type:                    input.Type,
		Severity:                input.Severity,
		Location:                strings.TrimSpace(input.Location),
		City:                    input.City,
		State:                   input.State,
		PostalCode:              input.PostalCode,
		Latitude:                input.Latitude,
		Longitude:               input.Longitude,
		IncidentDate:            input.IncidentDate,
		ReportedDate:            time.Now().UTC(),
		ReporterID:              reporterID,
		Status:                  models.IncidentStatusReported,
		AdditionalNotes:         input.AdditionalNotes,
		EstimatedAffectedPeople: input.EstimatedAffectedPeople,
	}

	if err := s.incidentRepo.Create(incident); err != nil {
		return nil, fmt.Errorf("failed to create incident: %w", err)
	}

	return incident, nil
}

// GetIncident returns an incident by ID.
func (s *IncidentService) GetIncident(id uint64) (*models.Incident, error) {
	incident, err := s.incidentRepo.FindByID(id, "Reporter")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIncidentNotFound
		}
		return nil, fmt.Errorf("failed to find incident: %w", err)
	}
	return incident, nil
}

// ListIncidents lists incidents, most recently reported first.
func (s *IncidentService) ListIncidents(page, pageSize int) ([]models.Incident, int64, error) {
	incidents, total, err := s.incidentRepo.List(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list incidents: %w", err)
	}
	return incidents, total, nil
}

// UpdateIncident updates an incident's descriptive fields. Only the reporter
// or an admin may edit; status is not touched here.
func (s *IncidentService) UpdateIncident(id, actorUserID uint64, actorIsAdmin bool, input IncidentInput) (*models.Incident, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	incident, err := s.incidentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIncidentNotFound
		}
		return nil, fmt.Errorf("failed to find incident: %w", err)
	}

	if !actorIsAdmin && incident.ReporterID != actorUserID {
		return nil, ErrNotIncidentReporter
	}

	incident.Title = strings.TrimSpace(input.Title)
	incident.Description = input.Description
	incident.Type = input.Type
	incident.Severity = input.Severity
	incident.Location = strings.TrimSpace(input.Location)
	incident.City = input.City
	incident.State = input.State
	incident.PostalCode = input.PostalCode
	incident.Latitude = input.Latitude
	incident.Longitude = input.Longitude
	incident.IncidentDate = input.IncidentDate
	incident.AdditionalNotes = input.AdditionalNotes
	incident.EstimatedAffectedPeople = input.EstimatedAffectedPeople

	if err := s.incidentRepo.Update(incident); err != nil {
		return nil, fmt.Errorf("failed to update incident: %w", err)
	}

	return incident, nil
}

// DeleteIncident deletes an incident. Only the reporter or an admin may delete.
func (s *IncidentService) DeleteIncident(id, actorUserID uint64, actorIsAdmin bool) error {
	incident, err := s.incidentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrIncidentNotFound
		}
		return fmt.Errorf("failed to find incident: %w", err)
	}

	if !actorIsAdmin && incident.ReporterID != actorUserID {
		return ErrNotIncidentReporter
	}

	if err := s.incidentRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete incident: %w", err)
	}

	return nil
}
