package db

import (
	"testing"
	"time"

	"github.com/terraincognita07/nutrisnap/internal/models"
)

func seedFoodLog(t *testing.T, repo *FoodLogRepository, userID uint, day time.Time, calories float64, protein float64) models.FoodLog {
	t.Helper()

	entry := models.FoodLog{
		UserID:   userID,
		LoggedAt: day.Add(12 * time.Hour),
		LogDate:  day,
		MealType: models.MealLunch,
		FoodName: "Seeded meal",
		Calories: calories,
		Protein:  protein,
	}
	if err := repo.Create(&entry); err != nil {
		t.Fatalf("seed food log: %v", err)
	}
	return entry
}

func TestTotalsByUserAndDateZeroFilled(t *testing.T) {
	database := openTestDatabase(t)
	user := createTestUser(t, database, "food-zero@example.com")
	repo := NewFoodLogRepository(database)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	totals, err := repo.TotalsByUserAndDate(user.ID, day, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals.Calories != 0 || totals.Protein != 0 || totals.Fiber != 0 {
		t.Fatalf("expected zero-filled totals for an empty day, got %+v", totals)
	}
}

func TestTotalsByUserAndDateSumsOnlyThatDayAndUser(t *testing.T) {
	database := openTestDatabase(t)
	user := createTestUser(t, database, "food-sums@example.com")
	other := createTestUser(t, database, "food-sums-other@example.com")
	repo := NewFoodLogRepository(database)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	seedFoodLog(t, repo, user.ID, day, 320, 12)
	seedFoodLog(t, repo, user.ID, day, 650, 38)
	seedFoodLog(t, repo, user.ID, day.AddDate(0, 0, -1), 500, 20)
	seedFoodLog(t, repo, other.ID, day, 999, 50)

	totals, err := repo.TotalsByUserAndDate(user.ID, day, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals.Calories != 970 {
		t.Fatalf("expected 970 calories, got %v", totals.Calories)
	}
	if totals.Protein != 50 {
		t.Fatalf("expected 50g protein, got %v", totals.Protein)
	}
}

func TestTotalsByUserAndRangeOmitEmptyDays(t *testing.T) {
	database := openTestDatabase(t)
	user := createTestUser(t, database, "food-range@example.com")
	repo := NewFoodLogRepository(database)

	first := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	third := first.AddDate(0, 0, 2)
	seedFoodLog(t, repo, user.ID, first, 1800, 90)
	seedFoodLog(t, repo, user.ID, first, 200, 5)
	seedFoodLog(t, repo, user.ID, third, 2100, 110)

	rows, err := repo.TotalsByUserAndRange(user.ID, first, first.AddDate(0, 0, 4))
	if err != nil {
		t.Fatalf("range totals: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 logged days (the gap day omitted), got %d", len(rows))
	}
	if rows[0].TotalCalories != 2000 || rows[0].Entries != 2 {
		t.Fatalf("expected first day aggregated to 2000 kcal over 2 entries, got %+v", rows[0])
	}
	if rows[1].TotalCalories != 2100 || rows[1].Entries != 1 {
		t.Fatalf("expected second logged day 2100 kcal, got %+v", rows[1])
	}
	if !rows[0].LogDate.Before(rows[1].LogDate) {
		t.Fatal("expected ascending date order")
	}
}

func TestListByUserAndDateOrdersByLoggedAt(t *testing.T) {
	database := openTestDatabase(t)
	user := createTestUser(t, database, "food-list@example.com")
	repo := NewFoodLogRepository(database)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	evening := models.FoodLog{
		UserID: user.ID, LoggedAt: day.Add(19 * time.Hour), LogDate: day,
		MealType: models.MealDinner, FoodName: "Dinner", Calories: 700,
	}
	morning := models.FoodLog{
		UserID: user.ID, LoggedAt: day.Add(8 * time.Hour), LogDate: day,
		MealType: models.MealBreakfast, FoodName: "Breakfast", Calories: 400,
	}
	if err := repo.Create(&evening); err != nil {
		t.Fatalf("create evening: %v", err)
	}
	if err := repo.Create(&morning); err != nil {
		t.Fatalf("create morning: %v", err)
	}

	logs, err := repo.ListByUserAndDate(user.ID, day, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(logs))
	}
	if logs[0].FoodName != "Breakfast" || logs[1].FoodName != "Dinner" {
		t.Fatalf("expected chronological order, got %q then %q", logs[0].FoodName, logs[1].FoodName)
	}
}

func TestDeleteByIDAndUserScopesToOwner(t *testing.T) {
	database := openTestDatabase(t)
	owner := createTestUser(t, database, "food-delete-owner@example.com")
	intruder := createTestUser(t, database, "food-delete-intruder@example.com")
	repo := NewFoodLogRepository(database)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	entry := seedFoodLog(t, repo, owner.ID, day, 320, 12)

	deleted, err := repo.DeleteByIDAndUser(entry.ID, intruder.ID)
	if err != nil {
		t.Fatalf("delete as intruder: %v", err)
	}
	if deleted {
		t.Fatal("expected delete to fail for a different user")
	}

	deleted, err = repo.DeleteByIDAndUser(entry.ID, owner.ID)
	if err != nil {
		t.Fatalf("delete as owner: %v", err)
	}
	if !deleted {
		t.Fatal("expected owner delete to succeed")
	}

	deleted, err = repo.DeleteByIDAndUser(entry.ID, owner.ID)
	if err != nil {
		t.Fatalf("repeat delete: %v", err)
	}
	if deleted {
		t.Fatal("expected second delete to report not found")
	}
}
