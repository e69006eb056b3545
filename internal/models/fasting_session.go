package models

import "time"

const (
	FastingStatusActive    = "active"
	FastingStatusCompleted = "completed"
	FastingStatusCancelled = "cancelled"
)

const (
	DefaultFastingTargetHours = 16.0
	DefaultFastingProtocol    = "16:8"
)

// FastingStats aggregates completed sessions only; cancelled rows never
// count toward averages or the goal counter.
type FastingStats struct {
	Total         int     `gorm:"column:total" json:"total"`
	AvgHours      float64 `gorm:"column:avg_hours" json:"avg_hours"`
	BestHours     float64 `gorm:"column:best_hours" json:"best_hours"`
	CompletedGoal int     `gorm:"column:completed_goal" json:"completed_goal"`
}

// FastingSession rows are never deleted: completed and cancelled sessions
// stay around to feed history and aggregate stats.
type FastingSession struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index:idx_fasting_user_status" json:"user_id"`
	StartedAt   time.Time  `gorm:"not null" json:"started_at"`
	EndedAt     *time.Time `json:"ended_at"`
	TargetHours float64    `gorm:"not null;default:16" json:"target_hours"`
	ActualHours *float64   `json:"actual_hours"`
	Protocol    string     `gorm:"not null;default:16:8" json:"protocol"`
	Status      string     `gorm:"not null;default:active;index:idx_fasting_user_status" json:"status"`
	Feeling     *string    `json:"feeling"`
	Note        *string    `json:"note"`
}
