package db

import "gorm.io/gorm"

type Repositories struct {
	Users           *UserRepository
	FoodLogs        *FoodLogRepository
	FastingSessions *FastingSessionRepository
	Weights         *WeightRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:           NewUserRepository(database),
		FoodLogs:        NewFoodLogRepository(database),
		FastingSessions: NewFastingSessionRepository(database),
		Weights:         NewWeightRepository(database),
	}
}
