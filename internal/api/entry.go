package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/grupi2/calorie-tracker/backend/internal/service"
	"github.com/grupi2/calorie-tracker/backend/internal/types"
)

// Date formats accepted by the ?date= query parameter.
var dateFormats = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

type FoodEntryHandler struct {
	entryService     service.IFoodEntryService
	calorieThreshold int
}

func NewFoodEntryHandler(entryService service.IFoodEntryService, calorieThreshold int) *FoodEntryHandler {
	return &FoodEntryHandler{
		entryService:     entryService,
		calorieThreshold: calorieThreshold,
	}
}

// RegisterRoutes mounts the food-entry routes. Extra middleware, such as a
// rate limiter, applies to the create endpoint only.
func (h *FoodEntryHandler) RegisterRoutes(router *gin.RouterGroup, createMiddleware ...gin.HandlerFunc) {
	entries := router.Group("/food-entries")
	{
		entries.POST("", append(createMiddleware, h.CreateEntry)...)
		entries.DELETE("/:foodEntryId", h.DeleteEntry)
		entries.GET("/daily", h.DailyEntries)
		entries.GET("/calories/daily", h.DailyCalories)
		entries.GET("/calories/high-calorie-days", h.HighCalorieDays)
		entries.GET("/spending/monthly", h.MonthlySpending)
		entries.GET("/history", h.History)
	}
}

func (h *FoodEntryHandler) CreateEntry(c *gin.Context) {
	var req types.FoodEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := currentUserID(c)
	entry, err := h.entryService.CreateEntry(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *FoodEntryHandler) DeleteEntry(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("foodEntryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food entry id"})
		return
	}

	userID := currentUserID(c)
	if err := h.entryService.DeleteEntry(c.Request.Context(), userID, entryID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FoodEntryHandler) DailyEntries(c *gin.Context) {
	date, ok := parseDateParam(c)
	if !ok {
		return
	}

	userID := currentUserID(c)
	entries, err := h.entryService.EntriesForDay(c.Request.Context(), userID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *FoodEntryHandler) DailyCalories(c *gin.Context) {
	date, ok := parseDateParam(c)
	if !ok {
		return
	}

	userID := currentUserID(c)
	total, err := h.entryService.DailyCalories(c.Request.Context(), userID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, total)
}

func (h *FoodEntryHandler) HighCalorieDays(c *gin.Context) {
	year, ok := parseIntParam(c, "year")
	if !ok {
		return
	}
	month, ok := parseIntParam(c, "month")
	if !ok {
		return
	}

	threshold := h.calorieThreshold
	if raw := c.Query("threshold"); raw != "" {
		t, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid threshold parameter"})
			return
		}
		threshold = t
	}

	userID := currentUserID(c)
	days, err := h.entryService.HighCalorieDays(c.Request.Context(), userID, year, month, threshold)
	if err != nil {
		respondError(c, err)
		return
	}
	if days == nil {
		days = []time.Time{}
	}
	c.JSON(http.StatusOK, days)
}

func (h *FoodEntryHandler) MonthlySpending(c *gin.Context) {
	year, ok := parseIntParam(c, "year")
	if !ok {
		return
	}
	month, ok := parseIntParam(c, "month")
	if !ok {
		return
	}

	userID := currentUserID(c)
	total, err := h.entryService.MonthlySpending(c.Request.Context(), userID, year, month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, total)
}

func (h *FoodEntryHandler) History(c *gin.Context) {
	var q types.HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := currentUserID(c)
	resp, err := h.entryService.History(c.Request.Context(), userID, &q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// currentUserID reads the authenticated user set by the auth middleware; the
// routes below are never registered without it.
func currentUserID(c *gin.Context) uuid.UUID {
	v, _ := c.Get("user_id")
	id, _ := v.(uuid.UUID)
	return id
}

func parseDateParam(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date parameter is required"})
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if d, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return d, true
		}
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date parameter"})
	return time.Time{}, false
}

func parseIntParam(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " parameter is required"})
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " parameter"})
		return 0, false
	}
	return v, true
}
