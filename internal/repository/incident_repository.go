package repository

import (
	"gorm.io/gorm"

	"github.com/reliefops/disaster-relief-api/internal/database"
	"github.com/reliefops/disaster-relief-api/internal/models"
)

// GormIncidentRepository is a GORM implementation of IncidentRepository
type GormIncidentRepository struct {
	db *gorm.DB
}

// NewIncidentRepository creates a new IncidentRepository
func NewIncidentRepository(db *gorm.DB) IncidentRepository {
	return &GormIncidentRepository{db: db}
}

func (r *GormIncidentRepository) Create(incident *models.Incident) error {
	return r.db.Create(incident).Error
}

func (r *GormIncidentRepository) FindByID(id uint64, preload ...string) (*models.Incident, error) {
	var incident models.Incident
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&incident, id).Error; err != nil {
		return nil, err
	}
	return &incident, nil
}

// List retrieves incidents, most recently reported first
func (r *GormIncidentRepository) List(page, pageSize int) ([]models.Incident, int64, error) {
	var incidents []models.Incident

	query := r.db.Model(&models.Incident{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("reported_date DESC").
		Scopes(database.Paginate(page, pageSize)).
		Find(&incidents).Error; err != nil {
		return nil, 0, err
	}

	return incidents, total, nil
}

func (r *GormIncidentRepository) Update(incident *models.Incident) error {
	return r.db.Save(incident).Error
}

func (r *GormIncidentRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Incident{}, id).Error
}
