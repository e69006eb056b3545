package services

import (
	"time"

	"github.com/terraincognita07/nutrisnap/internal/models"
)

const recentWeightLogLimit = 60

type WeightStore interface {
	LatestGoal(userID uint) (models.WeightGoal, bool, error)
	ActiveGoal(userID uint) (models.WeightGoal, bool, error)
	ReplaceGoal(goal *models.WeightGoal) error
	DeleteGoalByIDAndUser(goalID uint, userID uint) (bool, error)
	CreateLog(entry *models.WeightLog) error
	RecentLogs(userID uint, limit int) ([]models.WeightLog, error)
	LogsSince(userID uint, since time.Time) ([]models.WeightLog, error)
}

type WeightGoalService struct {
	weights WeightStore
}

func NewWeightGoalService(weights WeightStore) *WeightGoalService {
	return &WeightGoalService{weights: weights}
}

func (service *WeightGoalService) Overview(userID uint) (*models.WeightGoal, []models.WeightLog, error) {
	goal, found, err := service.weights.LatestGoal(userID)
	if err != nil {
		return nil, nil, err
	}
	logs, err := service.weights.RecentLogs(userID, recentWeightLogLimit)
	if err != nil {
		return nil, nil, err
	}
	if !found {
		return nil, logs, nil
	}
	return &goal, logs, nil
}

// SetGoal replaces the user's goal: every prior goal is deactivated and the
// new one inserted in one transaction, so at most one goal stays active.
// startWeight comes from the profile's current weight, zero when unset.
func (service *WeightGoalService) SetGoal(userID uint, startWeight float64, targetWeight float64, targetDate time.Time, notes string, now time.Time) (models.WeightGoal, error) {
	goal := models.WeightGoal{
		UserID:       userID,
		StartWeight:  startWeight,
		TargetWeight: targetWeight,
		TargetDate:   DayStartUTC(targetDate),
		Notes:        notes,
		Active:       true,
		CreatedAt:    now.UTC(),
	}
	if err := service.weights.ReplaceGoal(&goal); err != nil {
		return models.WeightGoal{}, err
	}
	return goal, nil
}

func (service *WeightGoalService) DeleteGoal(goalID uint, userID uint) error {
	_, err := service.weights.DeleteGoalByIDAndUser(goalID, userID)
	return err
}

func (service *WeightGoalService) LogWeight(userID uint, weight float64, note string, now time.Time) (models.WeightLog, error) {
	entry := models.WeightLog{
		UserID:   userID,
		Weight:   weight,
		Note:     note,
		LoggedAt: now.UTC(),
	}
	if err := service.weights.CreateLog(&entry); err != nil {
		return models.WeightLog{}, err
	}
	return entry, nil
}
