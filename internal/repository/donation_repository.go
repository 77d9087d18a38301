package repository

import (
	"gorm.io/gorm"

	"github.com/reliefops/disaster-relief-api/internal/database"
	"github.com/reliefops/disaster-relief-api/internal/models"
)

// GormDonationRepository is a GORM implementation of DonationRepository
type GormDonationRepository struct {
	db *gorm.DB
}

// NewDonationRepository creates a new DonationRepository
func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &GormDonationRepository{db: db}
}

func (r *GormDonationRepository) Create(donation *models.Donation) error {
	return r.db.Create(donation).Error
}

func (r *GormDonationRepository) FindByID(id uint64, preload ...string) (*models.Donation, error) {
	var donation models.Donation
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&donation, id).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

// List retrieves donations, newest first
func (r *GormDonationRepository) List(page, pageSize int) ([]models.Donation, int64, error) {
	var donations []models.Donation

	query := r.db.Model(&models.Donation{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("donation_date DESC").
		Scopes(database.Paginate(page, pageSize)).
		Preload("Category").
		Find(&donations).Error; err != nil {
		return nil, 0, err
	}

	return donations, total, nil
}

// ListCategories lists all donation categories by name
func (r *GormDonationRepository) ListCategories() ([]models.DonationCategory, error) {
	var categories []models.DonationCategory
	if err := r.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindCategoryByID finds a donation category by ID
func (r *GormDonationRepository) FindCategoryByID(id uint64) (*models.DonationCategory, error) {
	var category models.DonationCategory
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormDonationRepository) Update(donation *models.Donation) error {
	return r.db.Save(donation).Error
}

func (r *GormDonationRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Donation{}, id).Error
}
