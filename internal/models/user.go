package models

import "time"

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

const (
	ActivitySedentary  = "sedentary"
	ActivityLight      = "light"
	ActivityModerate   = "moderate"
	ActivityActive     = "active"
	ActivityVeryActive = "very_active"
)

const (
	GoalLose     = "lose"
	GoalMaintain = "maintain"
	GoalGain     = "gain"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Age          *int
	Weight       *float64
	Height       *float64
	Gender       string    `gorm:"not null;default:other"`
	Activity     string    `gorm:"not null;default:moderate"`
	Goal         string    `gorm:"not null;default:maintain"`
	MCPAPIKey    string    `gorm:"column:mcp_api_key"`
	CreatedAt    time.Time `gorm:"not null"`
}
