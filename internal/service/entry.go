package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grupi2/calorie-tracker/backend/internal/models"
	"github.com/grupi2/calorie-tracker/backend/internal/types"
)

// Range kinds accepted by History.
const (
	RangeDay   = "day"
	RangeWeek  = "week"
	RangeMonth = "month"
	RangeAll   = "all"
)

type FoodEntryService struct {
	db *gorm.DB
}

func NewFoodEntryService(db *gorm.DB) *FoodEntryService {
	return &FoodEntryService{db: db}
}

func (s *FoodEntryService) CreateEntry(ctx context.Context, userID uuid.UUID, req *types.FoodEntryRequest) (*models.FoodEntry, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	entry := models.FoodEntry{
		UserID:      user.ID,
		FoodName:    req.FoodName,
		Calories:    *req.Calories,
		Price:       *req.Price,
		MealType:    req.MealType,
		Description: req.Description,
		EventTime:   req.EventTime,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteEntry removes an entry only when it belongs to the given user.
func (s *FoodEntryService) DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) error {
	var entry models.FoodEntry
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntryNotFound
		}
		return err
	}
	return s.db.WithContext(ctx).Delete(&entry).Error
}

// EntriesForDay returns the user's entries within [start of day, start of next day).
func (s *FoodEntryService) EntriesForDay(ctx context.Context, userID uuid.UUID, date time.Time) ([]models.FoodEntry, error) {
	start, end := dayWindow(date)
	var entries []models.FoodEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND event_time >= ? AND event_time < ?", userID, start, end).
		Order("event_time DESC").
		Find(&entries).Error
	return entries, err
}

// EntriesForWeek returns the user's entries for the Monday-anchored 7-day span
// of the given week number, counted from the Monday on or before January 1.
func (s *FoodEntryService) EntriesForWeek(ctx context.Context, userID uuid.UUID, year, week int) ([]models.FoodEntry, error) {
	start, end := weekWindow(year, week)
	return s.entriesBetween(ctx, userID, start, end)
}

func (s *FoodEntryService) EntriesForMonth(ctx context.Context, userID uuid.UUID, year, month int) ([]models.FoodEntry, error) {
	start, end := monthWindow(year, month)
	return s.entriesBetween(ctx, userID, start, end)
}

func (s *FoodEntryService) EntriesForAllTime(ctx context.Context, userID uuid.UUID) ([]models.FoodEntry, error) {
	var entries []models.FoodEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("event_time DESC").
		Find(&entries).Error
	return entries, err
}

func (s *FoodEntryService) EntriesInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]models.FoodEntry, error) {
	return s.entriesBetween(ctx, userID, start, end)
}

// DailyCalories sums calories for the calendar day of date. No entries yields 0.
func (s *FoodEntryService) DailyCalories(ctx context.Context, userID uuid.UUID, date time.Time) (int, error) {
	start, end := dayWindow(date)
	var total int
	err := s.db.WithContext(ctx).
		Model(&models.FoodEntry{}).
		Select("COALESCE(SUM(calories), 0)").
		Where("user_id = ? AND event_time >= ? AND event_time < ?", userID, start, end).
		Scan(&total).Error
	return total, err
}

// HighCalorieDays groups the month's entries by calendar day and returns the
// days whose calorie sum strictly exceeds the threshold, in ascending order.
func (s *FoodEntryService) HighCalorieDays(ctx context.Context, userID uuid.UUID, year, month, threshold int) ([]time.Time, error) {
	entries, err := s.EntriesForMonth(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}

	sums := make(map[time.Time]int)
	for _, e := range entries {
		day := time.Date(e.EventTime.Year(), e.EventTime.Month(), e.EventTime.Day(), 0, 0, 0, 0, e.EventTime.Location())
		sums[day] += e.Calories
	}

	var days []time.Time
	for day, total := range sums {
		if total > threshold {
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days, nil
}

// MonthlySpending sums the price of the month's entries. No entries yields 0.
func (s *FoodEntryService) MonthlySpending(ctx context.Context, userID uuid.UUID, year, month int) (float64, error) {
	start, end := monthWindow(year, month)
	var total float64
	err := s.db.WithContext(ctx).
		Model(&models.FoodEntry{}).
		Select("COALESCE(SUM(price), 0)").
		Where("user_id = ? AND event_time BETWEEN ? AND ?", userID, start, end).
		Scan(&total).Error
	return total, err
}

// History resolves the logical range selector into a concrete window, fetches
// the matching entries newest-first and totals their calories. Parameter
// validation happens before any store access.
func (s *FoodEntryService) History(ctx context.Context, userID uuid.UUID, q *types.HistoryQuery) (*types.HistoryResponse, error) {
	var (
		entries []models.FoodEntry
		err     error
	)

	switch q.Range {
	case RangeDay:
		if q.Year == nil || q.Month == nil || q.Day == nil {
			return nil, invalidArgf("year, month, and day are required for the 'day' range")
		}
		date := time.Date(*q.Year, time.Month(*q.Month), *q.Day, 0, 0, 0, 0, time.Local)
		entries, err = s.EntriesForDay(ctx, userID, date)

	case RangeWeek:
		if q.Year == nil || q.Week == nil {
			return nil, invalidArgf("year and week are required for the 'week' range")
		}
		entries, err = s.EntriesForWeek(ctx, userID, *q.Year, *q.Week)

	case RangeMonth:
		if q.Year == nil || q.Month == nil {
			return nil, invalidArgf("year and month are required for the 'month' range")
		}
		entries, err = s.EntriesForMonth(ctx, userID, *q.Year, *q.Month)

	case RangeAll:
		if q.StartDate != "" && q.EndDate != "" {
			start, perr := time.ParseInLocation("2006-01-02", q.StartDate, time.Local)
			if perr != nil {
				return nil, invalidArgf("invalid date format, expected YYYY-MM-DD")
			}
			end, perr := time.ParseInLocation("2006-01-02", q.EndDate, time.Local)
			if perr != nil {
				return nil, invalidArgf("invalid date format, expected YYYY-MM-DD")
			}
			end = end.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
			entries, err = s.EntriesInRange(ctx, userID, start, end)
		} else {
			entries, err = s.EntriesForAllTime(ctx, userID)
		}

	default:
		return nil, invalidArgf("invalid range parameter")
	}
	if err != nil {
		return nil, err
	}

	total := 0
	for _, e := range entries {
		total += e.Calories
	}
	if entries == nil {
		entries = []models.FoodEntry{}
	}
	return &types.HistoryResponse{Entries: entries, TotalCalories: total}, nil
}

func (s *FoodEntryService) entriesBetween(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]models.FoodEntry, error) {
	var entries []models.FoodEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND event_time BETWEEN ? AND ?", userID, start, end).
		Order("event_time DESC").
		Find(&entries).Error
	return entries, err
}

func dayWindow(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1)
}

func weekWindow(year, week int) (time.Time, time.Time) {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	// Days since the previous Monday; Weekday() counts Sunday as 0.
	back := (int(jan1.Weekday()) + 6) % 7
	start := jan1.AddDate(0, 0, -back+(week-1)*7)
	end := start.AddDate(0, 0, 6).Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	return start, end
}

func monthWindow(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, -1).Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	return start, end
}
