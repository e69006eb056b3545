package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/terraincognita07/nutrisnap/internal/models"
)

const fallbackCalorieTarget = 2000

type CoachClient interface {
	Complete(ctx context.Context, systemPrompt string, userPrompt string, maxTokens int) (string, error)
}

type InsightNutritionReader interface {
	RangeTotals(userID uint, from time.Time, to time.Time) ([]models.DailyNutritionTotals, error)
}

type InsightFastingReader interface {
	FindActive(userID uint) (models.FastingSession, bool, error)
	CompletedSince(userID uint, since time.Time) ([]models.FastingSession, error)
	ListSince(userID uint, since time.Time) ([]models.FastingSession, error)
}

type InsightWeightReader interface {
	ActiveGoal(userID uint) (models.WeightGoal, bool, error)
	RecentLogs(userID uint, limit int) ([]models.WeightLog, error)
	LogsSince(userID uint, since time.Time) ([]models.WeightLog, error)
}

// InsightsService aggregates a user's recent data into coaching prompts for
// the external text model. Prompt construction lives here; the model itself
// is a collaborator behind CoachClient.
type InsightsService struct {
	coach     CoachClient
	nutrition InsightNutritionReader
	fasting   InsightFastingReader
	weights   InsightWeightReader
}

func NewInsightsService(coach CoachClient, nutrition InsightNutritionReader, fasting InsightFastingReader, weights InsightWeightReader) *InsightsService {
	return &InsightsService{
		coach:     coach,
		nutrition: nutrition,
		fasting:   fasting,
		weights:   weights,
	}
}

const dailyInsightSystemPrompt = `You are a direct, no-nonsense nutrition coach. You proactively tell the user exactly what they need to do TODAY based on their data — not just observations.
Rules:
- Second person ("you", "your") and imperative tone ("eat", "skip", "aim for").
- Be specific with numbers and times (e.g. "add a 30g protein snack before 3pm").
- Identify the single most important action they should take TODAY.
- If behind on calories, say what exactly to eat. If over, say what to cut.
- Max 3 sentences. No generic advice. No emojis. Plain text only.`

func (service *InsightsService) DailyInsight(ctx context.Context, user models.User, now time.Time) (string, error) {
	today := DayStartUTC(now)
	weekAgo := today.AddDate(0, 0, -6)

	nutrition, err := service.nutrition.RangeTotals(user.ID, weekAgo, today)
	if err != nil {
		return "", err
	}

	nutritionLines := make([]string, 0, len(nutrition))
	for _, day := range nutrition {
		nutritionLines = append(nutritionLines, fmt.Sprintf("%s: %.0f kcal (P:%.1fg C:%.1fg F:%.1fg)",
			day.Date, day.TotalCalories, day.TotalProtein, day.TotalCarbs, day.TotalFat))
	}
	nutritionSummary := "No meals logged yet this week."
	if len(nutritionLines) > 0 {
		nutritionSummary = strings.Join(nutritionLines, "\n")
	}

	fastingSummary, err := service.fastingSummary(user.ID, weekAgo, now)
	if err != nil {
		return "", err
	}

	goalSummary, err := service.weightGoalSummary(user, now)
	if err != nil {
		return "", err
	}

	userPrompt := fmt.Sprintf(`User: %sy %s, %s activity, goal: %s, daily target: %d kcal.

Last 7 days (date: calories / protein / carbs / fat):
%s

Fasting: %s
Weight goal: %s
Current time: %s

Given this data, give ONE specific action the user must take TODAY. Be direct and proactive.`,
		describeAge(user.Age), describeGender(user.Gender), user.Activity, user.Goal,
		calorieTargetOrFallback(&user), nutritionSummary, fastingSummary, goalSummary,
		now.UTC().Format("15:04"))

	return service.coach.Complete(ctx, dailyInsightSystemPrompt, userPrompt, 180)
}

const weeklyReportSystemPrompt = `You are a blunt nutrition coach writing a 30-day review. Every section must contain a direct action — not just information.
Structure (plain text, no markdown, no emojis):
WINS: One sentence on what actually went well, with a specific number.
FIX THIS: The single biggest issue — name it plainly (e.g. "You're skipping breakfast 4 out of 7 days").
THIS WEEK: Two specific, numbered actions the user must do differently this week — include times or amounts where possible.`

func (service *InsightsService) WeeklyReport(ctx context.Context, user models.User, now time.Time) (string, error) {
	today := DayStartUTC(now)
	monthAgo := today.AddDate(0, 0, -29)

	nutrition, err := service.nutrition.RangeTotals(user.ID, monthAgo, today)
	if err != nil {
		return "", err
	}

	loggedDays := len(nutrition)
	averageCalories := 0
	if loggedDays > 0 {
		sum := 0.0
		for _, day := range nutrition {
			sum += day.TotalCalories
		}
		averageCalories = int(math.Round(sum / float64(loggedDays)))
	}

	sessions, err := service.fasting.ListSince(user.ID, monthAgo)
	if err != nil {
		return "", err
	}
	completedCount := 0
	completedHours := 0.0
	for _, session := range sessions {
		if session.Status == models.FastingStatusCompleted && session.ActualHours != nil {
			completedCount++
			completedHours += *session.ActualHours
		}
	}
	averageFastHours := 0.0
	if completedCount > 0 {
		averageFastHours = completedHours / float64(completedCount)
	}

	weightLogs, err := service.weights.LogsSince(user.ID, monthAgo)
	if err != nil {
		return "", err
	}
	weightSummary := "not enough data"
	if len(weightLogs) >= 2 {
		change := weightLogs[len(weightLogs)-1].Weight - weightLogs[0].Weight
		weightSummary = fmt.Sprintf("%.1fkg over %d measurements", change, len(weightLogs))
	}

	userPrompt := fmt.Sprintf(`30-day data for %s:
- Days with meals logged: %d/30
- Average daily calories: %d kcal (target: %d)
- Completed fasts: %d, avg %.1fh
- Weight change: %s
- Goal: %s, activity: %s
Write the 30-day review.`,
		nameOrFallback(user.Name), loggedDays, averageCalories, calorieTargetOrFallback(&user),
		completedCount, averageFastHours, weightSummary, user.Goal, user.Activity)

	return service.coach.Complete(ctx, weeklyReportSystemPrompt, userPrompt, 300)
}

const goalAnalysisSystemPrompt = `You are a supportive, science-based nutrition and fitness coach.
Respond in 3-4 short, encouraging sentences with ONE concrete actionable tip.
Be specific, not generic. No emojis. Plain text only.`

// GoalAnalysis returns hasGoal=false when no active weight goal exists;
// callers answer with a hint instead of calling the coach.
func (service *InsightsService) GoalAnalysis(ctx context.Context, user models.User, now time.Time) (string, bool, error) {
	goal, found, err := service.weights.ActiveGoal(user.ID)
	if err != nil {
		return "", false, err
	}
	if !found {
		return "", false, nil
	}

	logs, err := service.weights.RecentLogs(user.ID, 30)
	if err != nil {
		return "", false, err
	}

	daysLeft := int(math.Ceil(goal.TargetDate.Sub(now.UTC()).Hours() / 24))
	if daysLeft < 0 {
		daysLeft = 0
	}

	latestWeight := goal.StartWeight
	if user.Weight != nil && *user.Weight > 0 {
		latestWeight = *user.Weight
	}
	if len(logs) > 0 {
		latestWeight = logs[0].Weight
	}
	delta := latestWeight - goal.StartWeight
	needed := latestWeight - goal.TargetWeight

	entryLines := make([]string, 0, 7)
	for index, entry := range logs {
		if index >= 7 {
			break
		}
		entryLines = append(entryLines, fmt.Sprintf("%s: %.1fkg", FormatDay(entry.LoggedAt), entry.Weight))
	}
	entriesSummary := "none yet"
	if len(entryLines) > 0 {
		entriesSummary = strings.Join(entryLines, ", ")
	}

	direction := "gained"
	if delta < 0 {
		direction = "lost"
	}

	userPrompt := fmt.Sprintf(`User goal: lose %.1f kg more (from %.1f kg to %.1f kg).
Deadline: %d days left.
Progress so far: %.1f kg %s.
Weight entries: %s.
User: %s years, %s, %s activity.
Provide a brief progress analysis and one actionable tip.`,
		needed, latestWeight, goal.TargetWeight, daysLeft, math.Abs(delta), direction,
		entriesSummary, describeAge(user.Age), describeGender(user.Gender), user.Activity)

	analysis, err := service.coach.Complete(ctx, goalAnalysisSystemPrompt, userPrompt, 200)
	if err != nil {
		return "", true, err
	}
	return analysis, true, nil
}

func (service *InsightsService) fastingSummary(userID uint, since time.Time, now time.Time) (string, error) {
	active, found, err := service.fasting.FindActive(userID)
	if err != nil {
		return "", err
	}
	if found {
		return fmt.Sprintf("Currently %.1fh into a %.0fh fast.", ElapsedHours(active, now), active.TargetHours), nil
	}

	completed, err := service.fasting.CompletedSince(userID, since)
	if err != nil {
		return "", err
	}
	if len(completed) == 0 {
		return "No fasting this week.", nil
	}

	totalHours := 0.0
	for _, session := range completed {
		if session.ActualHours != nil {
			totalHours += *session.ActualHours
		}
	}
	return fmt.Sprintf("%d completed fasts this week, avg %.1fh each.", len(completed), totalHours/float64(len(completed))), nil
}

func (service *InsightsService) weightGoalSummary(user models.User, now time.Time) (string, error) {
	goal, found, err := service.weights.ActiveGoal(user.ID)
	if err != nil {
		return "", err
	}
	if !found {
		return "No weight goal set.", nil
	}

	current := "?"
	logs, err := service.weights.RecentLogs(user.ID, 1)
	if err != nil {
		return "", err
	}
	if len(logs) > 0 {
		current = fmt.Sprintf("%.1f", logs[0].Weight)
	} else if user.Weight != nil && *user.Weight > 0 {
		current = fmt.Sprintf("%.1f", *user.Weight)
	}

	return fmt.Sprintf("Weight goal: reach %.1fkg by %s. Current: %skg.",
		goal.TargetWeight, FormatDay(goal.TargetDate), current), nil
}

func calorieTargetOrFallback(user *models.User) int {
	stats := ComputeStats(user)
	if stats.CalorieTarget != nil {
		return *stats.CalorieTarget
	}
	return fallbackCalorieTarget
}

func nameOrFallback(name string) string {
	if strings.TrimSpace(name) == "" {
		return "the user"
	}
	return name
}

func describeAge(age *int) string {
	if age == nil || *age <= 0 {
		return "?"
	}
	return fmt.Sprintf("%d", *age)
}

func describeGender(gender string) string {
	if strings.TrimSpace(gender) == "" {
		return "person"
	}
	return gender
}
