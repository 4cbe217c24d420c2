package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/grupi2/calorie-tracker/backend/internal/models"
	"github.com/grupi2/calorie-tracker/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	UpdatePassword(ctx context.Context, email, newPassword string) error
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	GenerateToken(user *models.User) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IFoodEntryService defines the interface for food entry and history operations
type IFoodEntryService interface {
	CreateEntry(ctx context.Context, userID uuid.UUID, req *types.FoodEntryRequest) (*models.FoodEntry, error)
	DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) error
	EntriesForDay(ctx context.Context, userID uuid.UUID, date time.Time) ([]models.FoodEntry, error)
	DailyCalories(ctx context.Context, userID uuid.UUID, date time.Time) (int, error)
	HighCalorieDays(ctx context.Context, userID uuid.UUID, year, month, threshold int) ([]time.Time, error)
	MonthlySpending(ctx context.Context, userID uuid.UUID, year, month int) (float64, error)
	History(ctx context.Context, userID uuid.UUID, q *types.HistoryQuery) (*types.HistoryResponse, error)
}

// IAdminService defines the interface for admin reporting and overrides
type IAdminService interface {
	Stats(ctx context.Context) (*types.AdminStatsResponse, error)
	UsersOverBudget(ctx context.Context) ([]types.UserOverBudget, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UserEntries(ctx context.Context, userID uuid.UUID) ([]models.FoodEntry, error)
	CreateEntryForUser(ctx context.Context, userID uuid.UUID, req *types.FoodEntryRequest) (*models.FoodEntry, error)
	UpdateEntry(ctx context.Context, entryID uuid.UUID, req *types.UpdateEntryRequest) (*models.FoodEntry, error)
	DeleteEntry(ctx context.Context, entryID uuid.UUID) error
}

// IEmailService defines the interface for email operations
type IEmailService interface {
	SendEmail(to, subject, body string) error
}
