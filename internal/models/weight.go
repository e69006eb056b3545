package models

import "time"

type WeightGoal struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	StartWeight  float64   `gorm:"not null" json:"start_weight"`
	TargetWeight float64   `gorm:"not null" json:"target_weight"`
	TargetDate   time.Time `gorm:"type:date;not null" json:"target_date"`
	Notes        string    `json:"notes"`
	Active       bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}

type WeightLog struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"not null;index:idx_weight_logs_user" json:"user_id"`
	Weight   float64   `gorm:"not null" json:"weight"`
	Note     string    `json:"note"`
	LoggedAt time.Time `gorm:"not null;index:idx_weight_logs_user" json:"logged_at"`
}
