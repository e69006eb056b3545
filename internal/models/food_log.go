package models

import "time"

const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

type FoodLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index:idx_food_logs_user_date" json:"user_id"`
	LoggedAt    time.Time `gorm:"not null" json:"logged_at"`
	LogDate     time.Time `gorm:"type:date;not null;index:idx_food_logs_user_date" json:"log_date"`
	MealType    string    `gorm:"not null;default:snack" json:"meal_type"`
	FoodName    string    `gorm:"not null" json:"food_name"`
	Description string    `json:"description"`
	Calories    float64   `gorm:"not null;default:0" json:"calories"`
	Protein     float64   `gorm:"not null;default:0" json:"protein"`
	Carbs       float64   `gorm:"not null;default:0" json:"carbs"`
	Fat         float64   `gorm:"not null;default:0" json:"fat"`
	Fiber       float64   `gorm:"not null;default:0" json:"fiber"`
	ServingSize string    `json:"serving_size"`
	ImageData   string    `json:"image_data,omitempty"`
}
