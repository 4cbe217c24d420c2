package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grupi2/calorie-tracker/backend/internal/models"
	"github.com/grupi2/calorie-tracker/backend/internal/types"
)

type AdminService struct {
	db          *gorm.DB
	entries     *FoodEntryService
	budgetLimit float64
}

func NewAdminService(db *gorm.DB, entries *FoodEntryService, budgetLimit float64) *AdminService {
	return &AdminService{
		db:          db,
		entries:     entries,
		budgetLimit: budgetLimit,
	}
}

// Stats assembles the dashboard snapshot. Each field is its own query against
// the store, so the snapshot is not atomic: writes landing between the
// sub-queries can make the numbers mutually inconsistent.
func (s *AdminService) Stats(ctx context.Context) (*types.AdminStatsResponse, error) {
	now := time.Now()
	sevenDaysAgo := now.AddDate(0, 0, -7)
	fourteenDaysAgo := now.AddDate(0, 0, -14)
	dayStart, dayEnd := dayWindow(now)

	stats := &types.AdminStatsResponse{}

	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.FoodEntry{}).Count(&stats.TotalEntries).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).
		Model(&models.FoodEntry{}).
		Where("event_time >= ? AND event_time < ?", dayStart, dayEnd).
		Distinct("user_id").
		Count(&stats.ActiveToday).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).
		Model(&models.FoodEntry{}).
		Where("event_time BETWEEN ? AND ?", sevenDaysAgo, now).
		Count(&stats.LastWeekEntries).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).
		Model(&models.FoodEntry{}).
		Where("event_time BETWEEN ? AND ?", fourteenDaysAgo, sevenDaysAgo).
		Count(&stats.WeekBeforeEntries).Error; err != nil {
		return nil, err
	}

	// AVG over zero rows is NULL; report 0.0 instead.
	if err := s.db.WithContext(ctx).
		Model(&models.FoodEntry{}).
		Select("COALESCE(AVG(calories), 0)").
		Where("event_time >= ?", sevenDaysAgo).
		Scan(&stats.AverageCaloriesAllUsers).Error; err != nil {
		return nil, err
	}

	over, err := s.UsersOverBudget(ctx)
	if err != nil {
		return nil, err
	}
	stats.UsersOverBudget = over

	return stats, nil
}

// UsersOverBudget returns every user whose current calendar month spending
// strictly exceeds the budget limit. Spending exactly at the limit does not
// count.
func (s *AdminService) UsersOverBudget(ctx context.Context) ([]types.UserOverBudget, error) {
	now := time.Now()
	start, end := monthWindow(now.Year(), int(now.Month()))

	violations := []types.UserOverBudget{}
	err := s.db.WithContext(ctx).
		Model(&models.FoodEntry{}).
		Select("food_entries.user_id AS id, users.name AS name, SUM(food_entries.price) AS total_spent").
		Joins("JOIN users ON users.id = food_entries.user_id").
		Where("food_entries.event_time BETWEEN ? AND ?", start, end).
		Group("food_entries.user_id, users.name").
		Having("SUM(food_entries.price) > ?", s.budgetLimit).
		Scan(&violations).Error
	if err != nil {
		return nil, err
	}
	return violations, nil
}

func (s *AdminService) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error
	return users, err
}

func (s *AdminService) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *AdminService) UserEntries(ctx context.Context, userID uuid.UUID) ([]models.FoodEntry, error) {
	return s.entries.EntriesForAllTime(ctx, userID)
}

// CreateEntryForUser logs an entry on behalf of any user, bypassing the
// ownership binding of the normal create path.
func (s *AdminService) CreateEntryForUser(ctx context.Context, userID uuid.UUID, req *types.FoodEntryRequest) (*models.FoodEntry, error) {
	return s.entries.CreateEntry(ctx, userID, req)
}

// UpdateEntry replaces the mutable fields of any user's entry. There is no
// ownership check; the admin gate happens at the route level.
func (s *AdminService) UpdateEntry(ctx context.Context, entryID uuid.UUID, req *types.UpdateEntryRequest) (*models.FoodEntry, error) {
	var entry models.FoodEntry
	if err := s.db.WithContext(ctx).First(&entry, "id = ?", entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}

	if req.FoodName != "" {
		entry.FoodName = req.FoodName
	}
	if req.Calories != nil {
		entry.Calories = *req.Calories
	}
	if req.Price != nil {
		entry.Price = *req.Price
	}
	if req.MealType != "" {
		entry.MealType = req.MealType
	}
	entry.Description = req.Description

	if err := s.db.WithContext(ctx).Save(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *AdminService) DeleteEntry(ctx context.Context, entryID uuid.UUID) error {
	var entry models.FoodEntry
	if err := s.db.WithContext(ctx).First(&entry, "id = ?", entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntryNotFound
		}
		return err
	}
	return s.db.WithContext(ctx).Delete(&entry).Error
}
