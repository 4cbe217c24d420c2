package integration

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
	"gorm.io/gorm"

	"github.com/grupi2/calorie-tracker/backend/config"
	"github.com/grupi2/calorie-tracker/backend/internal/api"
	"github.com/grupi2/calorie-tracker/backend/internal/models"
	"github.com/grupi2/calorie-tracker/backend/internal/testhelpers"
	"github.com/grupi2/calorie-tracker/backend/internal/types"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupInMemoryDatabase(t)

	cfg := &config.Config{
		JWTSecret:             "integration-secret",
		BudgetLimit:           1000,
		CalorieAlertThreshold: 2500,
	}

	router := gin.New()
	api.SetupAPI(router, db, cfg, nil)
	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, router *gin.Engine, name, email string) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/v1/users/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "Sup3rSecret!",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/api/v1/users/login", "", map[string]string{
		"email":    email,
		"password": "Sup3rSecret!",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestUserFlow(t *testing.T) {
	router, _ := setupRouter(t)
	token := registerAndLogin(t, router, "Flow User", "flow@example.com")

	eventTime := time.Date(2026, 5, 10, 12, 30, 0, 0, time.Local)
	w := doJSON(t, router, http.MethodPost, "/api/v1/food-entries", token, map[string]interface{}{
		"food_name":  "Ramen",
		"calories":   550,
		"price":      9.50,
		"meal_type":  "LUNCH",
		"event_time": eventTime.Format(time.RFC3339),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var entry models.FoodEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))

	w = doJSON(t, router, http.MethodGet, "/api/v1/food-entries/history?range=day&year=2026&month=5&day=10", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var history types.HistoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Len(t, history.Entries, 1)
	assert.Equal(t, 550, history.TotalCalories)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/food-entries/"+entry.ID.String(), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/food-entries/history?range=all", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	assert.Empty(t, history.Entries)
}

func TestHistoryValidationOverHTTP(t *testing.T) {
	router, _ := setupRouter(t)
	token := registerAndLogin(t, router, "Validator", "validator@example.com")

	w := doJSON(t, router, http.MethodGet, "/api/v1/food-entries/history?range=week&year=2026", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "year and week are required")

	w = doJSON(t, router, http.MethodGet, "/api/v1/food-entries/history?range=bogus", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/food-entries/history?range=all&startDate=05/01/2026&endDate=2026-05-03", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "YYYY-MM-DD")
}

func TestRequiresAuthentication(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/food-entries/history?range=all", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/food-entries/history?range=all", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAccess(t *testing.T) {
	router, db := setupRouter(t)
	userToken := registerAndLogin(t, router, "Plain User", "plain@example.com")

	// Admin role must be granted before login so it lands in the token.
	w := doJSON(t, router, http.MethodPost, "/api/v1/users/register", "", map[string]string{
		"name":     "Site Admin",
		"email":    "admin@example.com",
		"password": "Sup3rSecret!",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.Model(&models.User{}).
		Where("email = ?", "admin@example.com").
		Update("role", models.RoleAdmin).Error)

	w = doJSON(t, router, http.MethodPost, "/api/v1/users/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "Sup3rSecret!",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var adminResp types.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &adminResp))

	w = doJSON(t, router, http.MethodGet, "/api/v1/admin/stats", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/admin/stats", adminResp.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stats types.AdminStatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(2), stats.TotalUsers)
}

func TestAdminManagesEntries(t *testing.T) {
	router, db := setupRouter(t)
	registerAndLogin(t, router, "Managed User", "managed@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/v1/users/register", "", map[string]string{
		"name":     "Site Admin",
		"email":    "admin2@example.com",
		"password": "Sup3rSecret!",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.Model(&models.User{}).
		Where("email = ?", "admin2@example.com").
		Update("role", models.RoleAdmin).Error)
	w = doJSON(t, router, http.MethodPost, "/api/v1/users/login", "", map[string]string{
		"email":    "admin2@example.com",
		"password": "Sup3rSecret!",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var adminResp types.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &adminResp))

	var managed models.User
	require.NoError(t, db.First(&managed, "email = ?", "managed@example.com").Error)

	path := fmt.Sprintf("/api/v1/admin/users/%s/entries", managed.ID)
	w = doJSON(t, router, http.MethodPost, path, adminResp.Token, map[string]interface{}{
		"food_name": "Logged by admin",
		"calories":  700,
		"price":     14.00,
		"meal_type": "DINNER",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var entry models.FoodEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	assert.Equal(t, managed.ID, entry.UserID)

	w = doJSON(t, router, http.MethodPut, "/api/v1/admin/entries/"+entry.ID.String(), adminResp.Token, map[string]interface{}{
		"calories": 750,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	assert.Equal(t, 750, entry.Calories)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/admin/entries/"+entry.ID.String(), adminResp.Token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
