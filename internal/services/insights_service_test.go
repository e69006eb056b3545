package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/nutrisnap/internal/models"
)

type stubCoach struct {
	systemPrompt string
	userPrompt   string
	reply        string
	err          error
}

func (stub *stubCoach) Complete(_ context.Context, systemPrompt string, userPrompt string, _ int) (string, error) {
	stub.systemPrompt = systemPrompt
	stub.userPrompt = userPrompt
	if stub.err != nil {
		return "", stub.err
	}
	return stub.reply, nil
}

type stubInsightNutrition struct {
	rows []models.DailyNutritionTotals
}

func (stub *stubInsightNutrition) RangeTotals(uint, time.Time, time.Time) ([]models.DailyNutritionTotals, error) {
	return stub.rows, nil
}

type stubInsightFasting struct {
	active    *models.FastingSession
	completed []models.FastingSession
	all       []models.FastingSession
}

func (stub *stubInsightFasting) FindActive(uint) (models.FastingSession, bool, error) {
	if stub.active == nil {
		return models.FastingSession{}, false, nil
	}
	return *stub.active, true, nil
}

func (stub *stubInsightFasting) CompletedSince(uint, time.Time) ([]models.FastingSession, error) {
	return stub.completed, nil
}

func (stub *stubInsightFasting) ListSince(uint, time.Time) ([]models.FastingSession, error) {
	return stub.all, nil
}

type stubInsightWeights struct {
	goal *models.WeightGoal
	logs []models.WeightLog
}

func (stub *stubInsightWeights) ActiveGoal(uint) (models.WeightGoal, bool, error) {
	if stub.goal == nil {
		return models.WeightGoal{}, false, nil
	}
	return *stub.goal, true, nil
}

func (stub *stubInsightWeights) RecentLogs(_ uint, limit int) ([]models.WeightLog, error) {
	if len(stub.logs) > limit {
		return stub.logs[:limit], nil
	}
	return stub.logs, nil
}

func (stub *stubInsightWeights) LogsSince(uint, time.Time) ([]models.WeightLog, error) {
	return stub.logs, nil
}

func insightsTestUser() models.User {
	return models.User{
		ID: 7, Name: "Dana",
		Age: intPointer(30), Weight: floatPointer(70), Height: floatPointer(175),
		Gender: models.GenderMale, Activity: models.ActivityModerate, Goal: models.GoalLose,
	}
}

func TestDailyInsightPromptIncludesProfileAndTarget(t *testing.T) {
	t.Parallel()

	coach := &stubCoach{reply: "Eat more protein today."}
	service := NewInsightsService(coach,
		&stubInsightNutrition{rows: []models.DailyNutritionTotals{
			{Date: "2026-03-01", TotalCalories: 1800, TotalProtein: 90},
		}},
		&stubInsightFasting{},
		&stubInsightWeights{},
	)

	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	insight, err := service.DailyInsight(context.Background(), insightsTestUser(), now)
	if err != nil {
		t.Fatalf("daily insight: %v", err)
	}

	if insight != "Eat more protein today." {
		t.Fatalf("expected coach reply passthrough, got %q", insight)
	}
	if !strings.Contains(coach.userPrompt, "daily target: 2056 kcal") {
		t.Fatalf("expected derived calorie target in prompt, got:\n%s", coach.userPrompt)
	}
	if !strings.Contains(coach.userPrompt, "30y male") {
		t.Fatalf("expected profile summary in prompt, got:\n%s", coach.userPrompt)
	}
	if !strings.Contains(coach.userPrompt, "2026-03-01: 1800 kcal") {
		t.Fatalf("expected nutrition line in prompt, got:\n%s", coach.userPrompt)
	}
}

func TestDailyInsightFallbackTargetForIncompleteProfile(t *testing.T) {
	t.Parallel()

	coach := &stubCoach{reply: "ok"}
	service := NewInsightsService(coach, &stubInsightNutrition{}, &stubInsightFasting{}, &stubInsightWeights{})

	user := models.User{ID: 7, Goal: models.GoalMaintain, Activity: models.ActivityModerate}
	if _, err := service.DailyInsight(context.Background(), user, time.Now()); err != nil {
		t.Fatalf("daily insight: %v", err)
	}

	if !strings.Contains(coach.userPrompt, "daily target: 2000 kcal") {
		t.Fatalf("expected fallback target in prompt, got:\n%s", coach.userPrompt)
	}
	if !strings.Contains(coach.userPrompt, "User: ?y person") {
		t.Fatalf("expected placeholder profile in prompt, got:\n%s", coach.userPrompt)
	}
}

func TestGoalAnalysisWithoutGoal(t *testing.T) {
	t.Parallel()

	coach := &stubCoach{reply: "should not be called"}
	service := NewInsightsService(coach, &stubInsightNutrition{}, &stubInsightFasting{}, &stubInsightWeights{})

	analysis, hasGoal, err := service.GoalAnalysis(context.Background(), insightsTestUser(), time.Now())
	if err != nil {
		t.Fatalf("goal analysis: %v", err)
	}
	if hasGoal {
		t.Fatal("expected hasGoal=false without an active goal")
	}
	if analysis != "" {
		t.Fatalf("expected empty analysis, got %q", analysis)
	}
	if coach.userPrompt != "" {
		t.Fatal("expected the coach not to be called without a goal")
	}
}

func TestGoalAnalysisUsesLatestLoggedWeight(t *testing.T) {
	t.Parallel()

	coach := &stubCoach{reply: "Keep going."}
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	service := NewInsightsService(coach, &stubInsightNutrition{}, &stubInsightFasting{}, &stubInsightWeights{
		goal: &models.WeightGoal{
			UserID: 7, StartWeight: 80, TargetWeight: 72,
			TargetDate: now.AddDate(0, 0, 30), Active: true,
		},
		logs: []models.WeightLog{
			{Weight: 76.5, LoggedAt: now.AddDate(0, 0, -1)},
			{Weight: 78, LoggedAt: now.AddDate(0, 0, -8)},
		},
	})

	analysis, hasGoal, err := service.GoalAnalysis(context.Background(), insightsTestUser(), now)
	if err != nil {
		t.Fatalf("goal analysis: %v", err)
	}
	if !hasGoal {
		t.Fatal("expected hasGoal=true")
	}
	if analysis != "Keep going." {
		t.Fatalf("expected coach reply passthrough, got %q", analysis)
	}
	if !strings.Contains(coach.userPrompt, "lose 4.5 kg more") {
		t.Fatalf("expected remaining kg from latest log, got:\n%s", coach.userPrompt)
	}
	if !strings.Contains(coach.userPrompt, "3.5 kg lost") {
		t.Fatalf("expected progress from start weight, got:\n%s", coach.userPrompt)
	}
	if !strings.Contains(coach.userPrompt, "Deadline: 30 days left") {
		t.Fatalf("expected days-left in prompt, got:\n%s", coach.userPrompt)
	}
}

func TestGoalAnalysisPastDeadlineClampsToZeroDays(t *testing.T) {
	t.Parallel()

	coach := &stubCoach{reply: "ok"}
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	service := NewInsightsService(coach, &stubInsightNutrition{}, &stubInsightFasting{}, &stubInsightWeights{
		goal: &models.WeightGoal{
			UserID: 7, StartWeight: 80, TargetWeight: 72,
			TargetDate: now.AddDate(0, 0, -10), Active: true,
		},
	})

	if _, _, err := service.GoalAnalysis(context.Background(), insightsTestUser(), now); err != nil {
		t.Fatalf("goal analysis: %v", err)
	}
	if !strings.Contains(coach.userPrompt, "Deadline: 0 days left") {
		t.Fatalf("expected clamped deadline, got:\n%s", coach.userPrompt)
	}
}
