package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/reliefops/disaster-relief-api/internal/database"
	"github.com/reliefops/disaster-relief-api/internal/models"
	"github.com/reliefops/disaster-relief-api/internal/repository"
)

// AdminServiceTestSuite defines the test suite for AdminService
type AdminServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AdminService
}

// SetupTest runs before each test
func (suite *AdminServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	suite.Require().NoError(err)

	err = database.AutoMigrate(suite.db)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	suite.service = NewAdminService(
		repository.NewVolunteerRepository(suite.db),
		repository.NewIncidentRepository(suite.db),
		repository.NewDonationRepository(suite.db),
	)
}

// TearDownTest runs after each test
func (suite *AdminServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *AdminServiceTestSuite) createTestVolunteer(status models.VolunteerStatus) *models.Volunteer {
	user := &models.User{
		Email:        "volunteer@example.com",
		PasswordHash: "hashedpassword",
		Role:         models.RoleUser,
	}
	suite.db.Create(user)

	volunteer := &models.Volunteer{
		UserID:           user.ID,
		FirstName:        "Test",
		LastName:         "Volunteer",
		Email:            user.Email,
		PhoneNumber:      "0123456789",
		Status:           status,
		RegistrationDate: time.Now().UTC(),
	}
	suite.db.Create(volunteer)
	return volunteer
}

func (suite *AdminServiceTestSuite) TestApproveVolunteer() {
	volunteer := suite.createTestVolunteer(models.VolunteerStatusPending)

	approved, err := suite.service.ApproveVolunteer(volunteer.ID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.VolunteerStatusApproved, approved.Status)
	assert.NotNil(suite.T(), approved.LastActiveDate)
}

func (suite *AdminServiceTestSuite) TestRejectVolunteer() {
	volunteer := suite.createTestVolunteer(models.VolunteerStatusPending)

	rejected, err := suite.service.RejectVolunteer(volunteer.ID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.VolunteerStatusSuspended, rejected.Status)
}

func (suite *AdminServiceTestSuite) TestSetVolunteerStatus_RejectsDisallowedTransition() {
	volunteer := suite.createTestVolunteer(models.VolunteerStatusPending)

	// Pending cannot jump straight to Active
	_, err := suite.service.SetVolunteerStatus(volunteer.ID, models.VolunteerStatusActive)

	assert.ErrorIs(suite.T(), err, ErrVolunteerStatusTransition)
}

func (suite *AdminServiceTestSuite) TestSetVolunteerStatus_SuspensionIsTerminal() {
	volunteer := suite.createTestVolunteer(models.VolunteerStatusSuspended)

	_, err := suite.service.SetVolunteerStatus(volunteer.ID, models.VolunteerStatusApproved)

	assert.ErrorIs(suite.T(), err, ErrVolunteerStatusTransition)
}

func (suite *AdminServiceTestSuite) TestSetVolunteerStatus_NoOpOnSameStatus() {
	volunteer := suite.createTestVolunteer(models.VolunteerStatusApproved)

	updated, err := suite.service.SetVolunteerStatus(volunteer.ID, models.VolunteerStatusApproved)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.VolunteerStatusApproved, updated.Status)
}

func (suite *AdminServiceTestSuite) TestSetVolunteerStatus_UnknownStatus() {
	volunteer := suite.createTestVolunteer(models.VolunteerStatusPending)

	_, err := suite.service.SetVolunteerStatus(volunteer.ID, models.VolunteerStatus("Banned"))

	assert.ErrorIs(suite.T(), err, ErrInvalidVolunteerStatus)
}

func (suite *AdminServiceTestSuite) TestSetVolunteerStatus_NotFound() {
	_, err := suite.service.SetVolunteerStatus(9999, models.VolunteerStatusApproved)

	assert.ErrorIs(suite.T(), err, ErrVolunteerNotFound)
}

func (suite *AdminServiceTestSuite) TestSetIncidentStatus() {
	user := &models.User{
		Email:        "reporter@example.com",
		PasswordHash: "hashedpassword",
		Role:         models.RoleUser,
	}
	suite.db.Create(user)

	incident := &models.Incident{
		Title:        "Flooded road",
		Description:  "Main access road under water",
		Type:         models.DisasterTypeFlood,
		Severity:     models.IncidentSeverityHigh,
		Location:     "Route 7",
		City:         "Riverside",
		State:        "Western Cape",
		PostalCode:   "8000",
		IncidentDate: time.Now().UTC(),
		ReportedDate: time.Now().UTC(),
		ReporterID:   user.ID,
		Status:       models.IncidentStatusReported,
	}
	suite.db.Create(incident)

	updated, err := suite.service.SetIncidentStatus(incident.ID, models.IncidentStatusUnderReview)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.IncidentStatusUnderReview, updated.Status)
}

func (suite *AdminServiceTestSuite) TestSetDonationStatus_StampsDates() {
	user := &models.User{
		Email:        "donor@example.com",
		PasswordHash: "hashedpassword",
		Role:         models.RoleUser,
	}
	suite.db.Create(user)

	category := &models.DonationCategory{Name: "Food"}
	suite.db.Create(category)

	donation := &models.Donation{
		ItemName:     "Canned goods",
		Quantity:     20,
		Unit:         "boxes",
		Type:         models.DonationTypePhysical,
		CategoryID:   category.ID,
		DonorID:      user.ID,
		DonationDate: time.Now().UTC(),
		Status:       models.DonationStatusPending,
	}
	suite.db.Create(donation)

	collected, err := suite.service.SetDonationStatus(donation.ID, models.DonationStatusCollected)
	suite.Require().NoError(err)
	assert.NotNil(suite.T(), collected.PickupDate)
	assert.Nil(suite.T(), collected.DistributionDate)

	distributed, err := suite.service.SetDonationStatus(donation.ID, models.DonationStatusDistributed)
	suite.Require().NoError(err)
	assert.NotNil(suite.T(), distributed.DistributionDate)
}

func TestAdminServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AdminServiceTestSuite))
}
