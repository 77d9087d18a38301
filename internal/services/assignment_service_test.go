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

// AssignmentServiceTestSuite defines the test suite for AssignmentService
type AssignmentServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AssignmentService
}

// SetupTest runs before each test
func (suite *AssignmentServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	suite.Require().NoError(err)

	err = database.AutoMigrate(suite.db)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	suite.service = NewAssignmentService(
		repository.NewAssignmentRepository(suite.db),
		repository.NewVolunteerRepository(suite.db),
	)
}

// TearDownTest runs after each test
func (suite *AssignmentServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// fixture returns a user, their volunteer profile, a task and an assignment
// between them in the given status.
func (suite *AssignmentServiceTestSuite) fixture(status models.AssignmentStatus) (*models.User, *models.Volunteer, *models.Assignment) {
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
		Status:           models.VolunteerStatusApproved,
		RegistrationDate: time.Now().UTC(),
	}
	suite.db.Create(volunteer)

	task := &models.Task{
		Title:              "Test Task",
		Description:        "Test Description",
		Category:           models.TaskCategoryLogistics,
		Priority:           models.TaskPriorityMedium,
		Location:           "Test Location",
		CreatedDate:        time.Now().UTC(),
		Status:             models.TaskStatusAssigned,
		RequiredVolunteers: 1,
		CurrentVolunteers:  1,
	}
	suite.db.Create(task)

	assignment := &models.Assignment{
		VolunteerID:  volunteer.ID,
		TaskID:       task.ID,
		AssignedDate: time.Now().UTC(),
		Status:       status,
	}
	suite.db.Create(assignment)

	return user, volunteer, assignment
}

func (suite *AssignmentServiceTestSuite) TestTransition_OwnerAccepts() {
	user, _, assignment := suite.fixture(models.AssignmentStatusAssigned)

	updated, err := suite.service.Transition(assignment.ID, user.ID, false, models.AssignmentStatusAccepted)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.AssignmentStatusAccepted, updated.Status)
}

func (suite *AssignmentServiceTestSuite) TestTransition_StartStampsStartDate() {
	user, _, assignment := suite.fixture(models.AssignmentStatusAccepted)

	updated, err := suite.service.Transition(assignment.ID, user.ID, false, models.AssignmentStatusInProgress)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.AssignmentStatusInProgress, updated.Status)
	assert.NotNil(suite.T(), updated.StartDate)
}

func (suite *AssignmentServiceTestSuite) TestTransition_RejectsSkippingAhead() {
	user, _, assignment := suite.fixture(models.AssignmentStatusAssigned)

	_, err := suite.service.Transition(assignment.ID, user.ID, false, models.AssignmentStatusInProgress)

	assert.ErrorIs(suite.T(), err, ErrAssignmentTransition)
}

func (suite *AssignmentServiceTestSuite) TestTransition_RejectsCompletedTarget() {
	user, _, assignment := suite.fixture(models.AssignmentStatusInProgress)

	_, err := suite.service.Transition(assignment.ID, user.ID, false, models.AssignmentStatusCompleted)

	assert.ErrorIs(suite.T(), err, ErrOutcomeOnlyOnCompletion)
}

func (suite *AssignmentServiceTestSuite) TestTransition_StrangerForbidden() {
	_, _, assignment := suite.fixture(models.AssignmentStatusAssigned)

	stranger := &models.User{
		Email:        "stranger@example.com",
		PasswordHash: "hashedpassword",
		Role:         models.RoleUser,
	}
	suite.db.Create(stranger)

	_, err := suite.service.Transition(assignment.ID, stranger.ID, false, models.AssignmentStatusAccepted)

	assert.ErrorIs(suite.T(), err, ErrNotAssignmentOwner)
}

func (suite *AssignmentServiceTestSuite) TestTransition_AdminMayDriveAnyAssignment() {
	_, _, assignment := suite.fixture(models.AssignmentStatusAssigned)

	updated, err := suite.service.Transition(assignment.ID, 9999, true, models.AssignmentStatusNoShow)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.AssignmentStatusNoShow, updated.Status)
}

func (suite *AssignmentServiceTestSuite) TestTransition_CancelDoesNotReleaseCapacity() {
	user, _, assignment := suite.fixture(models.AssignmentStatusAssigned)

	_, err := suite.service.Transition(assignment.ID, user.ID, false, models.AssignmentStatusCancelled)
	suite.Require().NoError(err)

	var task models.Task
	suite.db.First(&task, assignment.TaskID)
	assert.Equal(suite.T(), 1, task.CurrentVolunteers)
	assert.Equal(suite.T(), models.TaskStatusAssigned, task.Status)
}

func (suite *AssignmentServiceTestSuite) TestComplete_Success() {
	user, volunteer, assignment := suite.fixture(models.AssignmentStatusInProgress)

	rating := 5
	updated, err := suite.service.Complete(assignment.ID, user.ID, false, CompleteInput{
		HoursWorked: 6,
		Feedback:    "Great coordination on site",
		Rating:      &rating,
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.AssignmentStatusCompleted, updated.Status)
	assert.NotNil(suite.T(), updated.CompletionDate)
	assert.Equal(suite.T(), 6, *updated.HoursWorked)
	assert.Equal(suite.T(), 5, *updated.Rating)

	// Hours land on the volunteer's running total
	var reloaded models.Volunteer
	suite.db.First(&reloaded, volunteer.ID)
	assert.Equal(suite.T(), 6, reloaded.TotalHoursVolunteered)
}

func (suite *AssignmentServiceTestSuite) TestComplete_AccumulatesHours() {
	user, volunteer, assignment := suite.fixture(models.AssignmentStatusInProgress)
	suite.db.Model(volunteer).Update("total_hours_volunteered", 10)

	_, err := suite.service.Complete(assignment.ID, user.ID, false, CompleteInput{HoursWorked: 4})
	suite.Require().NoError(err)

	var reloaded models.Volunteer
	suite.db.First(&reloaded, volunteer.ID)
	assert.Equal(suite.T(), 14, reloaded.TotalHoursVolunteered)
}

func (suite *AssignmentServiceTestSuite) TestComplete_RejectsNegativeHours() {
	user, _, assignment := suite.fixture(models.AssignmentStatusInProgress)

	_, err := suite.service.Complete(assignment.ID, user.ID, false, CompleteInput{HoursWorked: -1})

	assert.ErrorIs(suite.T(), err, ErrHoursRequired)
}

func (suite *AssignmentServiceTestSuite) TestComplete_RejectsOutOfRangeRating() {
	user, _, assignment := suite.fixture(models.AssignmentStatusInProgress)

	rating := 6
	_, err := suite.service.Complete(assignment.ID, user.ID, false, CompleteInput{
		HoursWorked: 2,
		Rating:      &rating,
	})

	assert.ErrorIs(suite.T(), err, ErrInvalidRating)
}

func (suite *AssignmentServiceTestSuite) TestComplete_RequiresInProgress() {
	user, _, assignment := suite.fixture(models.AssignmentStatusAssigned)

	_, err := suite.service.Complete(assignment.ID, user.ID, false, CompleteInput{HoursWorked: 2})

	assert.ErrorIs(suite.T(), err, ErrAssignmentTransition)
}

func (suite *AssignmentServiceTestSuite) TestComplete_NotFound() {
	_, err := suite.service.Complete(9999, 1, true, CompleteInput{HoursWorked: 2})

	assert.ErrorIs(suite.T(), err, ErrAssignmentNotFound)
}

func TestAssignmentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AssignmentServiceTestSuite))
}
