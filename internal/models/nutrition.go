package models

import "time"

// NutritionTotals is a zero-filled single-day aggregate: a day without
// entries sums to zeros rather than being absent.
type NutritionTotals struct {
	Calories float64 `gorm:"column:calories" json:"calories"`
	Protein  float64 `gorm:"column:protein" json:"protein"`
	Carbs    float64 `gorm:"column:carbs" json:"carbs"`
	Fat      float64 `gorm:"column:fat" json:"fat"`
	Fiber    float64 `gorm:"column:fiber" json:"fiber"`
}

// DailyNutritionTotals is one row of a range aggregate. Ranges only carry
// days with at least one entry; gaps are the caller's problem to fill.
type DailyNutritionTotals struct {
	LogDate       time.Time `gorm:"column:log_date" json:"-"`
	Date          string    `gorm:"-" json:"log_date"`
	TotalCalories float64   `gorm:"column:total_calories" json:"total_calories"`
	TotalProtein  float64   `gorm:"column:total_protein" json:"total_protein"`
	TotalCarbs    float64   `gorm:"column:total_carbs" json:"total_carbs"`
	TotalFat      float64   `gorm:"column:total_fat" json:"total_fat"`
	Entries       int       `gorm:"column:entries" json:"entries"`
}
