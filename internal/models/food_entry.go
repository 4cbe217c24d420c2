package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MealType classifies a food entry by the meal it was eaten at.
type MealType string

const (
	MealBreakfast MealType = "BREAKFAST"
	MealLunch     MealType = "LUNCH"
	MealDinner    MealType = "DINNER"
	MealSnack     MealType = "SNACK"
)

// FoodEntry is one logged food consumption event. EventTime is when the food
// was eaten, which may differ from CreatedAt.
type FoodEntry struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID      uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	FoodName    string    `gorm:"size:255;not null" json:"food_name"`
	Calories    int       `gorm:"not null;check:calories >= 0" json:"calories"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	MealType    MealType  `gorm:"size:20;not null" json:"meal_type"`
	Description string    `gorm:"size:1000" json:"description,omitempty"`
	EventTime   time.Time `gorm:"not null;index" json:"event_time"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (e *FoodEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.EventTime.IsZero() {
		e.EventTime = time.Now()
	}
	return nil
}
