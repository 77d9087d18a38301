package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/reliefops/disaster-relief-api/internal/constants"
	"github.com/reliefops/disaster-relief-api/internal/database"
	"github.com/reliefops/disaster-relief-api/internal/dto"
	"github.com/reliefops/disaster-relief-api/internal/middleware"
	"github.com/reliefops/disaster-relief-api/internal/models"
	"github.com/reliefops/disaster-relief-api/internal/repository"
	"github.com/reliefops/disaster-relief-api/internal/services"
)

type volunteerTestEnv struct {
	db               *gorm.DB
	authHandler      *AuthHandler
	volunteerHandler *VolunteerHandler
}

func setupVolunteerTestEnv(t *testing.T) volunteerTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = database.AutoMigrate(db)
	require.NoError(t, err)

	database.SetDB(db)

	authService := services.NewAuthService(repository.NewUserRepository(db))
	volunteerService := services.NewVolunteerService(repository.NewVolunteerRepository(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	gin.SetMode(gin.TestMode)
	return volunteerTestEnv{
		db:               db,
		authHandler:      NewAuthHandler(authService),
		volunteerHandler: NewVolunteerHandler(volunteerService),
	}
}

// volunteerTestRouter mirrors the volunteer route table as the server mounts it.
func volunteerTestRouter(env volunteerTestEnv) *gin.Engine {
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionName, store))
	r.POST("/api/auth/signup", env.authHandler.Signup)
	r.POST("/api/auth/login", env.authHandler.Login)

	volunteers := r.Group("/api/volunteers")
	volunteers.Use(middleware.RequireAuth())
	{
		volunteers.POST("", env.volunteerHandler.CreateProfile)
		volunteers.GET("/me", env.volunteerHandler.GetMyProfile)
		volunteers.PUT("/me", env.volunteerHandler.UpdateProfile)
		volunteers.DELETE("/me", env.volunteerHandler.DeleteProfile)
	}
	return r
}

// loginVolunteerUser signs up and logs in a fresh account, returning the
// session cookies for subsequent authenticated requests.
func loginVolunteerUser(t *testing.T, r *gin.Engine, email string) []*http.Cookie {
	t.Helper()

	w := postJSON(t, r, "/api/auth/signup", map[string]string{
		"email":      email,
		"password":   "supersecret",
		"first_name": "Jordan",
		"last_name":  "Reyes",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, r, "/api/auth/login", map[string]string{
		"email":    email,
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func sessionJSON(t *testing.T, r *gin.Engine, method, url string, payload interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func volunteerProfilePayload() map[string]interface{} {
	return map[string]interface{}{
		"first_name":   "Jordan",
		"last_name":    "Reyes",
		"email":        "jordan@example.com",
		"phone_number": "555-0100",
		"city":         "Springfield",
		"skills":       "First aid",
	}
}

func TestVolunteerRoutes_CreateProfile(t *testing.T) {
	env := setupVolunteerTestEnv(t)
	r := volunteerTestRouter(env)
	cookies := loginVolunteerUser(t, r, "jordan@example.com")

	w := sessionJSON(t, r, http.MethodPost, "/api/volunteers", volunteerProfilePayload(), cookies)
	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.VolunteerDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Jordan", response.FirstName)
	require.Equal(t, models.VolunteerStatusPending, response.Status)
}

func TestVolunteerRoutes_UpdateOwnProfile(t *testing.T) {
	env := setupVolunteerTestEnv(t)
	r := volunteerTestRouter(env)
	cookies := loginVolunteerUser(t, r, "jordan@example.com")

	w := sessionJSON(t, r, http.MethodPost, "/api/volunteers", volunteerProfilePayload(), cookies)
	require.Equal(t, http.StatusCreated, w.Code)

	payload := volunteerProfilePayload()
	payload["city"] = "Shelbyville"
	payload["skills"] = "First aid, logistics"

	w = sessionJSON(t, r, http.MethodPut, "/api/volunteers/me", payload, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.VolunteerDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Shelbyville", response.City)
	require.Equal(t, "First aid, logistics", response.Skills)
	require.Equal(t, models.VolunteerStatusPending, response.Status)
}

func TestVolunteerRoutes_UpdateWithoutProfile(t *testing.T) {
	env := setupVolunteerTestEnv(t)
	r := volunteerTestRouter(env)
	cookies := loginVolunteerUser(t, r, "jordan@example.com")

	w := sessionJSON(t, r, http.MethodPut, "/api/volunteers/me", volunteerProfilePayload(), cookies)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestVolunteerRoutes_DeleteOwnProfile(t *testing.T) {
	env := setupVolunteerTestEnv(t)
	r := volunteerTestRouter(env)
	cookies := loginVolunteerUser(t, r, "jordan@example.com")

	w := sessionJSON(t, r, http.MethodPost, "/api/volunteers", volunteerProfilePayload(), cookies)
	require.Equal(t, http.StatusCreated, w.Code)

	w = sessionJSON(t, r, http.MethodDelete, "/api/volunteers/me", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = sessionJSON(t, r, http.MethodGet, "/api/volunteers/me", nil, cookies)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestVolunteerRoutes_Unauthenticated(t *testing.T) {
	env := setupVolunteerTestEnv(t)
	r := volunteerTestRouter(env)

	w := sessionJSON(t, r, http.MethodPut, "/api/volunteers/me", volunteerProfilePayload(), nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
