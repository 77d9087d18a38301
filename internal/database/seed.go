package database

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/reliefops/disaster-relief-api/internal/models"
)

// defaultDonationCategories matches the categories relief coordinators track
// out of the box. Seeding is idempotent on the category name.
var defaultDonationCategories = []models.DonationCategory{
	{Name: "Food & Water", Description: "Non-perishable food, bottled water, baby formula"},
	{Name: "Clothing & Bedding", Description: "Clothes, blankets, sleeping bags"},
	{Name: "Medical Supplies", Description: "First aid kits, medication, hygiene products"},
	{Name: "Shelter Materials", Description: "Tents, tarps, building materials"},
	{Name: "Tools & Equipment", Description: "Generators, torches, cleanup tools"},
	{Name: "Other", Description: "Anything that does not fit the above"},
}

// Seed inserts baseline reference data.
func Seed(db *gorm.DB) error {
	categories := make([]models.DonationCategory, len(defaultDonationCategories))
	copy(categories, defaultDonationCategories)

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&categories).Error
	if err != nil {
		return fmt.Errorf("failed to seed donation categories: %w", err)
	}
	return nil
}
