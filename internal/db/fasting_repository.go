package db

import (
	"time"

	"github.com/terraincognita07/nutrisnap/internal/models"
	"gorm.io/gorm"
)

type FastingSessionRepository struct {
	database *gorm.DB
}

func NewFastingSessionRepository(database *gorm.DB) *FastingSessionRepository {
	return &FastingSessionRepository{database: database}
}

func (repo *FastingSessionRepository) FindActive(userID uint) (models.FastingSession, bool, error) {
	session := models.FastingSession{}
	result := repo.database.
		Where("user_id = ? AND status = ?", userID, models.FastingStatusActive).
		Order("started_at DESC, id DESC").
		Limit(1).
		Find(&session)
	if result.Error != nil {
		return models.FastingSession{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.FastingSession{}, false, nil
	}
	return session, true, nil
}

// StartSession cancels any running session for the user and inserts the new
// active row inside one transaction, so two concurrent starts cannot leave
// two active rows behind.
func (repo *FastingSessionRepository) StartSession(session *models.FastingSession, cancelledAt time.Time) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.FastingSession{}).
			Where("user_id = ? AND status = ?", session.UserID, models.FastingStatusActive).
			Updates(map[string]any{
				"status":   models.FastingStatusCancelled,
				"ended_at": cancelledAt,
			}).Error; err != nil {
			return err
		}
		return tx.Create(session).Error
	})
}

func (repo *FastingSessionRepository) Update(sessionID uint, updates map[string]any) error {
	return repo.database.Model(&models.FastingSession{}).Where("id = ?", sessionID).Updates(updates).Error
}

func (repo *FastingSessionRepository) CancelActive(userID uint, endedAt time.Time) error {
	return repo.database.Model(&models.FastingSession{}).
		Where("user_id = ? AND status = ?", userID, models.FastingStatusActive).
		Updates(map[string]any{
			"status":   models.FastingStatusCancelled,
			"ended_at": endedAt,
		}).Error
}

func (repo *FastingSessionRepository) History(userID uint, limit int) ([]models.FastingSession, error) {
	sessions := make([]models.FastingSession, 0)
	if err := repo.database.
		Where("user_id = ? AND status <> ?", userID, models.FastingStatusActive).
		Order("started_at DESC, id DESC").
		Limit(limit).
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (repo *FastingSessionRepository) Stats(userID uint) (models.FastingStats, error) {
	row := models.FastingStats{}
	if err := repo.database.Raw(`
SELECT
  COUNT(*) AS total,
  COALESCE(ROUND(AVG(actual_hours), 1), 0) AS avg_hours,
  COALESCE(ROUND(MAX(actual_hours), 1), 0) AS best_hours,
  COUNT(CASE WHEN actual_hours >= target_hours THEN 1 END) AS completed_goal
FROM fasting_sessions
WHERE user_id = ? AND status = ?`,
		userID, models.FastingStatusCompleted,
	).Scan(&row).Error; err != nil {
		return models.FastingStats{}, err
	}
	return row, nil
}

func (repo *FastingSessionRepository) CompletedSince(userID uint, since time.Time) ([]models.FastingSession, error) {
	sessions := make([]models.FastingSession, 0)
	if err := repo.database.
		Where("user_id = ? AND status = ? AND started_at >= ?", userID, models.FastingStatusCompleted, since).
		Order("started_at DESC, id DESC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (repo *FastingSessionRepository) ListSince(userID uint, since time.Time) ([]models.FastingSession, error) {
	sessions := make([]models.FastingSession, 0)
	if err := repo.database.
		Where("user_id = ? AND started_at >= ?", userID, since).
		Order("started_at DESC, id DESC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}
