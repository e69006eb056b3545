package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/nutrisnap/internal/models"
)

var ErrFoodLogNotFound = errors.New("food log entry not found")

type FoodLogStore interface {
	Create(entry *models.FoodLog) error
	ListByUserAndDate(userID uint, dayStart time.Time, dayEnd time.Time) ([]models.FoodLog, error)
	TotalsByUserAndDate(userID uint, dayStart time.Time, dayEnd time.Time) (models.NutritionTotals, error)
	TotalsByUserAndRange(userID uint, fromStart time.Time, toEnd time.Time) ([]models.DailyNutritionTotals, error)
	DeleteByIDAndUser(entryID uint, userID uint) (bool, error)
}

type FoodEntryInput struct {
	FoodName    string
	Description string
	Calories    float64
	Protein     float64
	Carbs       float64
	Fat         float64
	Fiber       float64
	ServingSize string
	MealType    string
	LogDate     time.Time
	ImageData   string
}

type NutritionService struct {
	logs FoodLogStore
}

func NewNutritionService(logs FoodLogStore) *NutritionService {
	return &NutritionService{logs: logs}
}

func (service *NutritionService) LogEntry(userID uint, input FoodEntryInput, now time.Time) (models.FoodLog, error) {
	logDate := input.LogDate
	if logDate.IsZero() {
		logDate = now
	}

	mealType := strings.TrimSpace(input.MealType)
	if mealType == "" {
		mealType = models.MealSnack
	}

	entry := models.FoodLog{
		UserID:      userID,
		LoggedAt:    now.UTC(),
		LogDate:     DayStartUTC(logDate),
		MealType:    mealType,
		FoodName:    strings.TrimSpace(input.FoodName),
		Description: strings.TrimSpace(input.Description),
		Calories:    input.Calories,
		Protein:     input.Protein,
		Carbs:       input.Carbs,
		Fat:         input.Fat,
		Fiber:       input.Fiber,
		ServingSize: strings.TrimSpace(input.ServingSize),
		ImageData:   input.ImageData,
	}
	if err := service.logs.Create(&entry); err != nil {
		return models.FoodLog{}, err
	}
	return entry, nil
}

// DailyTotals is always zero-filled; a day without entries reports zeros.
func (service *NutritionService) DailyTotals(userID uint, day time.Time) (models.NutritionTotals, error) {
	dayStart, dayEnd := DayRangeUTC(day)
	return service.logs.TotalsByUserAndDate(userID, dayStart, dayEnd)
}

func (service *NutritionService) LogsForDate(userID uint, day time.Time) ([]models.FoodLog, models.NutritionTotals, error) {
	dayStart, dayEnd := DayRangeUTC(day)
	logs, err := service.logs.ListByUserAndDate(userID, dayStart, dayEnd)
	if err != nil {
		return nil, models.NutritionTotals{}, err
	}
	totals, err := service.logs.TotalsByUserAndDate(userID, dayStart, dayEnd)
	if err != nil {
		return nil, models.NutritionTotals{}, err
	}
	return logs, totals, nil
}

// RangeTotals returns per-day totals for days with at least one entry, in
// ascending date order. Unlike DailyTotals, gaps are omitted, not
// zero-filled; display-side gap filling belongs to the caller. Keep the
// asymmetry.
func (service *NutritionService) RangeTotals(userID uint, from time.Time, to time.Time) ([]models.DailyNutritionTotals, error) {
	fromStart, _ := DayRangeUTC(from)
	_, toEnd := DayRangeUTC(to)

	rows, err := service.logs.TotalsByUserAndRange(userID, fromStart, toEnd)
	if err != nil {
		return nil, err
	}
	for index := range rows {
		rows[index].Date = FormatDay(rows[index].LogDate)
	}
	return rows, nil
}

func (service *NutritionService) DeleteEntry(entryID uint, userID uint) error {
	deleted, err := service.logs.DeleteByIDAndUser(entryID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrFoodLogNotFound
	}
	return nil
}
