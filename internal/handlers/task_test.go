package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/reliefops/disaster-relief-api/internal/constants"
	"github.com/reliefops/disaster-relief-api/internal/database"
	"github.com/reliefops/disaster-relief-api/internal/middleware"
	"github.com/reliefops/disaster-relief-api/internal/models"
	"github.com/reliefops/disaster-relief-api/internal/repository"
	"github.com/reliefops/disaster-relief-api/internal/services"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TaskHandler
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	suite.Require().NoError(err)

	// Run migrations
	err = database.AutoMigrate(suite.db)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	taskRepo := repository.NewTaskRepository(suite.db)
	volunteerRepo := repository.NewVolunteerRepository(suite.db)
	assignmentRepo := repository.NewAssignmentRepository(suite.db)

	suite.handler = NewTaskHandler(
		services.NewTaskService(taskRepo),
		services.NewAllocationService(volunteerRepo, taskRepo, assignmentRepo),
	)

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper function to create test data
func (suite *TaskHandlerTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		Email:        email,
		PasswordHash: "hashedpassword",
		Role:         models.RoleUser,
	}
	suite.db.Create(user)
	return user
}

func (suite *TaskHandlerTestSuite) createTestVolunteer(userID uint64, status models.VolunteerStatus) *models.Volunteer {
	volunteer := &models.Volunteer{
		UserID:           userID,
		FirstName:        "Test",
		LastName:         "Volunteer",
		Email:            fmt.Sprintf("volunteer%d@example.com", userID),
		PhoneNumber:      "0123456789",
		Status:           status,
		RegistrationDate: time.Now().UTC(),
	}
	suite.db.Create(volunteer)
	return volunteer
}

func (suite *TaskHandlerTestSuite) createTestTask(title string, capacity int) *models.Task {
	task := &models.Task{
		Title:              title,
		Description:        "Test Description",
		Category:           models.TaskCategoryReliefDistribution,
		Priority:           models.TaskPriorityHigh,
		Location:           "Test Location",
		CreatedDate:        time.Now().UTC(),
		Status:             models.TaskStatusOpen,
		RequiredVolunteers: capacity,
	}
	suite.db.Create(task)
	return task
}

// Helper function to create authenticated context
func (suite *TaskHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func (suite *TaskHandlerTestSuite) errorCode(w *httptest.ResponseRecorder) string {
	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	suite.Require().NoError(err)
	code, _ := response["code"].(string)
	return code
}

func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	user := suite.createTestUser("admin@example.com")

	payload := map[string]interface{}{
		"title":               "Flood Cleanup",
		"description":         "Clear debris from flooded homes",
		"category":            "Cleanup",
		"priority":            "High",
		"location":            "Riverside District",
		"required_volunteers": 5,
	}
	body, _ := json.Marshal(payload)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, user.ID)
	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Flood Cleanup", response["title"])
	assert.Equal(suite.T(), "Open", response["status"])
	assert.Equal(suite.T(), float64(0), response["current_volunteers"])
}

func (suite *TaskHandlerTestSuite) TestCreateTask_RejectsZeroCapacity() {
	user := suite.createTestUser("admin@example.com")

	payload := map[string]interface{}{
		"title":               "Flood Cleanup",
		"description":         "Clear debris",
		"category":            "Cleanup",
		"priority":            "High",
		"location":            "Riverside",
		"required_volunteers": 0,
	}
	body, _ := json.Marshal(payload)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, user.ID)
	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestApply_Success() {
	user := suite.createTestUser("volunteer@example.com")
	suite.createTestVolunteer(user.ID, models.VolunteerStatusApproved)
	task := suite.createTestTask("Sandbag Levee", 3)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/apply", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", task.ID)}}

	suite.handler.Apply(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Assigned", response["status"])
}

func (suite *TaskHandlerTestSuite) TestApply_NoProfile() {
	user := suite.createTestUser("noprofile@example.com")
	task := suite.createTestTask("Sandbag Levee", 3)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/apply", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", task.ID)}}

	suite.handler.Apply(c)

	assert.Equal(suite.T(), http.StatusUnprocessableEntity, w.Code)
	assert.Equal(suite.T(), "NO_PROFILE", suite.errorCode(w))
}

func (suite *TaskHandlerTestSuite) TestApply_PendingVolunteer() {
	user := suite.createTestUser("pending@example.com")
	suite.createTestVolunteer(user.ID, models.VolunteerStatusPending)
	task := suite.createTestTask("Sandbag Levee", 3)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/apply", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", task.ID)}}

	suite.handler.Apply(c)

	assert.Equal(suite.T(), http.StatusUnprocessableEntity, w.Code)
	assert.Equal(suite.T(), "NOT_ELIGIBLE", suite.errorCode(w))
}

func (suite *TaskHandlerTestSuite) TestApply_TaskNotFound() {
	user := suite.createTestUser("volunteer@example.com")
	suite.createTestVolunteer(user.ID, models.VolunteerStatusApproved)

	c, w := suite.createAuthContext("POST", "/api/tasks/9999/apply", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "9999"}}

	suite.handler.Apply(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestApply_Duplicate() {
	user := suite.createTestUser("volunteer@example.com")
	suite.createTestVolunteer(user.ID, models.VolunteerStatusApproved)
	task := suite.createTestTask("Sandbag Levee", 3)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/apply", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", task.ID)}}
	suite.handler.Apply(c)
	suite.Require().Equal(http.StatusCreated, w.Code)

	c, w = suite.createAuthContext("POST", "/api/tasks/1/apply", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", task.ID)}}
	suite.handler.Apply(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	assert.Equal(suite.T(), "ALREADY_APPLIED", suite.errorCode(w))
}

func (suite *TaskHandlerTestSuite) TestApply_TaskClosed() {
	user := suite.createTestUser("volunteer@example.com")
	suite.createTestVolunteer(user.ID, models.VolunteerStatusApproved)
	task := suite.createTestTask("Sandbag Levee", 3)
	suite.db.Model(task).Update("status", models.TaskStatusCancelled)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/apply", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", task.ID)}}

	suite.handler.Apply(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	assert.Equal(suite.T(), "TASK_CLOSED", suite.errorCode(w))
}

func (suite *TaskHandlerTestSuite) TestApply_TaskFull() {
	user := suite.createTestUser("volunteer@example.com")
	suite.createTestVolunteer(user.ID, models.VolunteerStatusApproved)
	task := suite.createTestTask("Sandbag Levee", 2)
	// A full task that has not flipped yet still rejects with its own code
	suite.db.Model(task).Update("current_volunteers", 2)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/apply", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", task.ID)}}

	suite.handler.Apply(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	assert.Equal(suite.T(), "TASK_FULL", suite.errorCode(w))
}

func (suite *TaskHandlerTestSuite) TestApply_InvalidID() {
	user := suite.createTestUser("volunteer@example.com")

	c, w := suite.createAuthContext("POST", "/api/tasks/abc/apply", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	suite.handler.Apply(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestMyAssignments() {
	user := suite.createTestUser("volunteer@example.com")
	suite.createTestVolunteer(user.ID, models.VolunteerStatusApproved)
	task := suite.createTestTask("Sandbag Levee", 3)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/apply", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", task.ID)}}
	suite.handler.Apply(c)
	suite.Require().Equal(http.StatusCreated, w.Code)

	c, w = suite.createAuthContext("GET", "/api/tasks/my-assignments", nil, user.ID)
	suite.handler.MyAssignments(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assignments := response["assignments"].([]interface{})
	assert.Len(suite.T(), assignments, 1)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_ConflictWithHistory() {
	user := suite.createTestUser("volunteer@example.com")
	suite.createTestVolunteer(user.ID, models.VolunteerStatusApproved)
	task := suite.createTestTask("Sandbag Levee", 3)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/apply", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", task.ID)}}
	suite.handler.Apply(c)
	suite.Require().Equal(http.StatusCreated, w.Code)

	c, w = suite.createAuthContext("DELETE", "/api/tasks/1", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", task.ID)}}
	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}

// Task creation is open to any authenticated account, not just admins.
func TestTaskRoutes_CreateOpenToAuthenticatedUsers(t *testing.T) {
	env := setupVolunteerTestEnv(t)

	taskRepo := repository.NewTaskRepository(env.db)
	volunteerRepo := repository.NewVolunteerRepository(env.db)
	assignmentRepo := repository.NewAssignmentRepository(env.db)
	taskHandler := NewTaskHandler(
		services.NewTaskService(taskRepo),
		services.NewAllocationService(volunteerRepo, taskRepo, assignmentRepo),
	)

	r := volunteerTestRouter(env)
	r.POST("/api/tasks", middleware.RequireAuth(), taskHandler.CreateTask)

	cookies := loginVolunteerUser(t, r, "jordan@example.com")

	w := sessionJSON(t, r, http.MethodPost, "/api/tasks", map[string]interface{}{
		"title":               "Sort donated supplies",
		"description":         "Sort and label incoming donations at the depot",
		"category":            string(models.TaskCategoryLogistics),
		"priority":            string(models.TaskPriorityMedium),
		"location":            "Central depot",
		"required_volunteers": 2,
	}, cookies)
	require.Equal(t, http.StatusCreated, w.Code)
}
