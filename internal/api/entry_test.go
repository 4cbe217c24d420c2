package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/grupi2/calorie-tracker/backend/internal/api"
	"github.com/grupi2/calorie-tracker/backend/internal/models"
	"github.com/grupi2/calorie-tracker/backend/internal/service"
	"github.com/grupi2/calorie-tracker/backend/internal/testhelpers"
)

// setupEntryRoutes mounts the food-entry routes with a stub auth layer that
// injects the given user directly.
func setupEntryRoutes(t *testing.T, calorieThreshold int) (*gin.Engine, *gorm.DB, *models.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupInMemoryDatabase(t)

	user := &models.User{
		Name:         "Handler User",
		Email:        "handler@example.com",
		PasswordHash: "irrelevant",
	}
	require.NoError(t, db.Create(user).Error)

	router := gin.New()
	group := router.Group("/api/v1")
	group.Use(func(c *gin.Context) {
		c.Set("user_id", user.ID)
		c.Set("role", models.RoleUser)
	})

	handler := api.NewFoodEntryHandler(service.NewFoodEntryService(db), calorieThreshold)
	handler.RegisterRoutes(group)
	return router, db, user
}

func seedEntry(t *testing.T, db *gorm.DB, userID uuid.UUID, calories int, price float64, eventTime time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.FoodEntry{
		UserID:    userID,
		FoodName:  "seeded",
		Calories:  calories,
		Price:     price,
		MealType:  models.MealDinner,
		EventTime: eventTime,
	}).Error)
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestDailyEntriesEndpoint(t *testing.T) {
	router, db, user := setupEntryRoutes(t, 2500)

	seedEntry(t, db, user.ID, 400, 4, time.Date(2026, 5, 10, 9, 0, 0, 0, time.Local))
	seedEntry(t, db, user.ID, 600, 6, time.Date(2026, 5, 11, 9, 0, 0, 0, time.Local))

	w := get(router, "/api/v1/food-entries/daily?date=2026-05-10")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var entries []models.FoodEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	assert.Len(t, entries, 1)

	// Timestamped date formats are accepted too.
	w = get(router, "/api/v1/food-entries/daily?date=2026-05-10T15:04:05")
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(router, "/api/v1/food-entries/daily")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "date parameter is required")

	w = get(router, "/api/v1/food-entries/daily?date=tomorrow")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDailyCaloriesEndpoint(t *testing.T) {
	router, db, user := setupEntryRoutes(t, 2500)

	seedEntry(t, db, user.ID, 400, 4, time.Date(2026, 5, 10, 9, 0, 0, 0, time.Local))
	seedEntry(t, db, user.ID, 350, 3, time.Date(2026, 5, 10, 19, 0, 0, 0, time.Local))

	w := get(router, "/api/v1/food-entries/calories/daily?date=2026-05-10")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "750", w.Body.String())

	w = get(router, "/api/v1/food-entries/calories/daily?date=2026-05-12")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Body.String())
}

func TestHighCalorieDaysEndpoint(t *testing.T) {
	router, db, user := setupEntryRoutes(t, 2500)

	seedEntry(t, db, user.ID, 2600, 10, time.Date(2026, 5, 10, 12, 0, 0, 0, time.Local))
	seedEntry(t, db, user.ID, 900, 10, time.Date(2026, 5, 11, 12, 0, 0, 0, time.Local))

	w := get(router, "/api/v1/food-entries/calories/high-calorie-days?year=2026&month=5")
	require.Equal(t, http.StatusOK, w.Code)

	var days []time.Time
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &days))
	require.Len(t, days, 1)
	assert.Equal(t, 10, days[0].Day())

	// Per-request override catches the 900-calorie day too.
	w = get(router, "/api/v1/food-entries/calories/high-calorie-days?year=2026&month=5&threshold=800")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &days))
	assert.Len(t, days, 2)

	w = get(router, "/api/v1/food-entries/calories/high-calorie-days?year=2026&month=6")
	require.Equal(t, http.StatusOK, w.Code)
	// Empty result is a JSON array, not null.
	assert.Equal(t, "[]", w.Body.String())

	w = get(router, "/api/v1/food-entries/calories/high-calorie-days?month=5")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(router, "/api/v1/food-entries/calories/high-calorie-days?year=2026&month=5&threshold=lots")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMonthlySpendingEndpoint(t *testing.T) {
	router, db, user := setupEntryRoutes(t, 2500)

	seedEntry(t, db, user.ID, 500, 12.50, time.Date(2026, 5, 10, 12, 0, 0, 0, time.Local))
	seedEntry(t, db, user.ID, 500, 7.25, time.Date(2026, 5, 20, 12, 0, 0, 0, time.Local))

	w := get(router, "/api/v1/food-entries/spending/monthly?year=2026&month=5")
	require.Equal(t, http.StatusOK, w.Code)

	var total float64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &total))
	assert.InDelta(t, 19.75, total, 0.001)

	w = get(router, "/api/v1/food-entries/spending/monthly?year=2026")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "month parameter is required")
}

func TestDeleteEntryEndpoint(t *testing.T) {
	router, db, user := setupEntryRoutes(t, 2500)

	entry := &models.FoodEntry{
		UserID:    user.ID,
		FoodName:  "doomed",
		Calories:  100,
		Price:     1,
		MealType:  models.MealSnack,
		EventTime: time.Now(),
	}
	require.NoError(t, db.Create(entry).Error)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v1/food-entries/%s", entry.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Gone now.
	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v1/food-entries/%s", entry.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/food-entries/not-a-uuid", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
