package db

import (
	"time"

	"github.com/terraincognita07/nutrisnap/internal/models"
	"gorm.io/gorm"
)

type FoodLogRepository struct {
	database *gorm.DB
}

func NewFoodLogRepository(database *gorm.DB) *FoodLogRepository {
	return &FoodLogRepository{database: database}
}

func (repo *FoodLogRepository) Create(entry *models.FoodLog) error {
	return repo.database.Create(entry).Error
}

func (repo *FoodLogRepository) ListByUserAndDate(userID uint, dayStart time.Time, dayEnd time.Time) ([]models.FoodLog, error) {
	logs := make([]models.FoodLog, 0)
	if err := repo.database.
		Where("user_id = ? AND log_date >= ? AND log_date < ?", userID, dayStart, dayEnd).
		Order("logged_at ASC, id ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// TotalsByUserAndDate is zero-filled: a day without entries sums to zeros,
// not to an absent row.
func (repo *FoodLogRepository) TotalsByUserAndDate(userID uint, dayStart time.Time, dayEnd time.Time) (models.NutritionTotals, error) {
	row := models.NutritionTotals{}
	if err := repo.database.Raw(`
SELECT
  COALESCE(SUM(calories), 0) AS calories,
  COALESCE(SUM(protein), 0) AS protein,
  COALESCE(SUM(carbs), 0) AS carbs,
  COALESCE(SUM(fat), 0) AS fat,
  COALESCE(SUM(fiber), 0) AS fiber
FROM food_logs
WHERE user_id = ? AND log_date >= ? AND log_date < ?`,
		userID, dayStart, dayEnd,
	).Scan(&row).Error; err != nil {
		return models.NutritionTotals{}, err
	}
	return row, nil
}

// TotalsByUserAndRange returns one row per day that has at least one entry,
// in ascending date order.
func (repo *FoodLogRepository) TotalsByUserAndRange(userID uint, fromStart time.Time, toEnd time.Time) ([]models.DailyNutritionTotals, error) {
	rows := make([]models.DailyNutritionTotals, 0)
	if err := repo.database.Raw(`
SELECT
  log_date,
  SUM(calories) AS total_calories,
  SUM(protein) AS total_protein,
  SUM(carbs) AS total_carbs,
  SUM(fat) AS total_fat,
  COUNT(*) AS entries
FROM food_logs
WHERE user_id = ? AND log_date >= ? AND log_date < ?
GROUP BY log_date
ORDER BY log_date ASC`,
		userID, fromStart, toEnd,
	).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (repo *FoodLogRepository) DeleteByIDAndUser(entryID uint, userID uint) (bool, error) {
	result := repo.database.Where("id = ? AND user_id = ?", entryID, userID).Delete(&models.FoodLog{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
