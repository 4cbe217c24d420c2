package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/grupi2/calorie-tracker/backend/internal/models"
)

// Auth API types
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type SendConfirmationRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Text    string `json:"text" binding:"required"`
}

type UpdatePasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

// Food entry API types
type FoodEntryRequest struct {
	FoodName    string          `json:"food_name" binding:"required,max=255"`
	Calories    *int            `json:"calories" binding:"required,min=0"`
	Price       *float64        `json:"price" binding:"required,min=0"`
	MealType    models.MealType `json:"meal_type" binding:"required,oneof=BREAKFAST LUNCH DINNER SNACK"`
	Description string          `json:"description" binding:"max=1000"`
	EventTime   time.Time       `json:"event_time"`
}

// HistoryQuery carries the range selector and its kind-specific parameters.
// Pointer fields distinguish "absent" from zero values.
type HistoryQuery struct {
	Range     string `form:"range" binding:"required"`
	Year      *int   `form:"year"`
	Month     *int   `form:"month"`
	Week      *int   `form:"week"`
	Day       *int   `form:"day"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

type HistoryResponse struct {
	Entries       []models.FoodEntry `json:"entries"`
	TotalCalories int                `json:"totalCalories"`
}

// Admin API types
type UserOverBudget struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	TotalSpent float64   `json:"totalSpent"`
}

type AdminStatsResponse struct {
	TotalUsers              int64            `json:"totalUsers"`
	TotalEntries            int64            `json:"totalEntries"`
	ActiveToday             int64            `json:"activeToday"`
	LastWeekEntries         int64            `json:"lastWeekEntries"`
	WeekBeforeEntries       int64            `json:"weekBeforeEntries"`
	AverageCaloriesAllUsers float64          `json:"averageCaloriesAllUsers"`
	UsersOverBudget         []UserOverBudget `json:"usersOverBudget"`
}

type UpdateEntryRequest struct {
	FoodName    string          `json:"food_name"`
	Calories    *int            `json:"calories"`
	Price       *float64        `json:"price"`
	MealType    models.MealType `json:"meal_type"`
	Description string          `json:"description"`
}
