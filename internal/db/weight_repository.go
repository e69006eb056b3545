package db

import (
	"time"

	"github.com/terraincognita07/nutrisnap/internal/models"
	"gorm.io/gorm"
)

type WeightRepository struct {
	database *gorm.DB
}

func NewWeightRepository(database *gorm.DB) *WeightRepository {
	return &WeightRepository{database: database}
}

func (repo *WeightRepository) LatestGoal(userID uint) (models.WeightGoal, bool, error) {
	goal := models.WeightGoal{}
	result := repo.database.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(1).
		Find(&goal)
	if result.Error != nil {
		return models.WeightGoal{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.WeightGoal{}, false, nil
	}
	return goal, true, nil
}

func (repo *WeightRepository) ActiveGoal(userID uint) (models.WeightGoal, bool, error) {
	goal := models.WeightGoal{}
	result := repo.database.
		Where("user_id = ? AND active = ?", userID, true).
		Order("created_at DESC, id DESC").
		Limit(1).
		Find(&goal)
	if result.Error != nil {
		return models.WeightGoal{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.WeightGoal{}, false, nil
	}
	return goal, true, nil
}

// ReplaceGoal deactivates every prior goal and inserts the new one in a
// single transaction, keeping at most one active goal per user.
func (repo *WeightRepository) ReplaceGoal(goal *models.WeightGoal) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.WeightGoal{}).
			Where("user_id = ?", goal.UserID).
			Update("active", false).Error; err != nil {
			return err
		}
		return tx.Create(goal).Error
	})
}

func (repo *WeightRepository) DeleteGoalByIDAndUser(goalID uint, userID uint) (bool, error) {
	result := repo.database.Where("id = ? AND user_id = ?", goalID, userID).Delete(&models.WeightGoal{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *WeightRepository) CreateLog(entry *models.WeightLog) error {
	return repo.database.Create(entry).Error
}

func (repo *WeightRepository) RecentLogs(userID uint, limit int) ([]models.WeightLog, error) {
	logs := make([]models.WeightLog, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("logged_at DESC, id DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *WeightRepository) LogsSince(userID uint, since time.Time) ([]models.WeightLog, error) {
	logs := make([]models.WeightLog, 0)
	if err := repo.database.
		Where("user_id = ? AND logged_at >= ?", userID, since).
		Order("logged_at ASC, id ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
