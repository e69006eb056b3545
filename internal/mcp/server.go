// Package mcp exposes a user's tracker data to AI assistants over a small
// HTTP tool-calling protocol. Authentication is a per-user x-api-key header;
// keys are issued from the profile screen of the main app.
package mcp

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nutrisnap/internal/db"
	"github.com/terraincognita07/nutrisnap/internal/models"
	"github.com/terraincognita07/nutrisnap/internal/services"
)

const contextUserKey = "mcp_user"

type Server struct {
	repos *db.Repositories

	now func() time.Time
}

func NewServer(repos *db.Repositories) *Server {
	return &Server{repos: repos, now: time.Now}
}

func (server *Server) Register(app *fiber.App) {
	app.Get("/health", server.Health)
	app.Post("/tools/list", server.RequireKey, server.ListTools)
	app.Post("/tools/call", server.RequireKey, server.CallTool)
}

func (server *Server) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "server": "nutrisnap-mcp"})
}

func (server *Server) RequireKey(c *fiber.Ctx) error {
	key := strings.TrimSpace(c.Get("x-api-key"))
	if key == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "x-api-key header required."})
	}

	user, found, err := server.repos.Users.FindByMCPAPIKey(key)
	if err != nil || !found {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid API key."})
	}

	c.Locals(contextUserKey, &user)
	return c.Next()
}

type toolDescriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

func (server *Server) ListTools(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"tools": []toolDescriptor{
		{
			Name:        "get_today_nutrition",
			Description: "Get today's food log and calorie totals.",
			InputSchema: map[string]any{"type": "object", "properties": map[string]any{}},
		},
		{
			Name:        "get_weekly_summary",
			Description: "Get daily nutrition totals for the last N days.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"days": map[string]any{"type": "number", "description": "Days to look back (1-30). Default 7."},
				},
			},
		},
		{
			Name:        "log_food_entry",
			Description: "Log a food entry.",
			InputSchema: map[string]any{
				"type":     "object",
				"required": []string{"food_name", "calories"},
				"properties": map[string]any{
					"food_name": map[string]any{"type": "string"},
					"calories":  map[string]any{"type": "number"},
					"protein":   map[string]any{"type": "number"},
					"carbs":     map[string]any{"type": "number"},
					"fat":       map[string]any{"type": "number"},
					"meal_type": map[string]any{"type": "string", "description": "breakfast | lunch | dinner | snack"},
					"log_date":  map[string]any{"type": "string", "description": "YYYY-MM-DD. Defaults to today."},
				},
			},
		},
		{
			Name:        "get_fasting_status",
			Description: "Get the current fasting session and recent fasting history.",
			InputSchema: map[string]any{"type": "object", "properties": map[string]any{}},
		},
		{
			Name:        "get_weight_progress",
			Description: "Get the active weight goal and recent weight entries.",
			InputSchema: map[string]any{"type": "object", "properties": map[string]any{}},
		},
	}})
}

type toolCallInput struct {
	Name      string        `json:"name"`
	Arguments toolArguments `json:"arguments"`
}

type toolArguments struct {
	Days     int     `json:"days"`
	FoodName string  `json:"food_name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	MealType string  `json:"meal_type"`
	LogDate  string  `json:"log_date"`
}

func (server *Server) CallTool(c *fiber.Ctx) error {
	user, ok := c.Locals(contextUserKey).(*models.User)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid API key."})
	}

	input := toolCallInput{}
	if err := c.BodyParser(&input); err != nil {
		return toolError(c, "Invalid request body.")
	}

	switch input.Name {
	case "get_today_nutrition":
		return server.todayNutrition(c, user)
	case "get_weekly_summary":
		return server.weeklySummary(c, user, input.Arguments.Days)
	case "log_food_entry":
		return server.logFoodEntry(c, user, input.Arguments)
	case "get_fasting_status":
		return server.fastingStatus(c, user)
	case "get_weight_progress":
		return server.weightProgress(c, user)
	default:
		return toolError(c, "Unknown tool: "+input.Name)
	}
}

func (server *Server) todayNutrition(c *fiber.Ctx, user *models.User) error {
	dayStart, dayEnd := services.DayRangeUTC(server.now())

	logs, err := server.repos.FoodLogs.ListByUserAndDate(user.ID, dayStart, dayEnd)
	if err != nil {
		return toolError(c, err.Error())
	}
	totals, err := server.repos.FoodLogs.TotalsByUserAndDate(user.ID, dayStart, dayEnd)
	if err != nil {
		return toolError(c, err.Error())
	}

	stats := services.ComputeStats(user)
	return toolResult(c, fiber.Map{
		"date":           services.FormatDay(dayStart),
		"calorie_target": stats.CalorieTarget,
		"totals":         totals,
		"meals":          logs,
	})
}

func (server *Server) weeklySummary(c *fiber.Ctx, user *models.User, days int) error {
	if days < 1 {
		days = 7
	}
	if days > 30 {
		days = 30
	}

	now := server.now()
	from := now.AddDate(0, 0, -(days - 1))
	fromStart, _ := services.DayRangeUTC(from)
	_, toEnd := services.DayRangeUTC(now)

	rows, err := server.repos.FoodLogs.TotalsByUserAndRange(user.ID, fromStart, toEnd)
	if err != nil {
		return toolError(c, err.Error())
	}
	for index := range rows {
		rows[index].Date = services.FormatDay(rows[index].LogDate)
	}

	averageCalories := 0
	if len(rows) > 0 {
		sum := 0.0
		for _, row := range rows {
			sum += row.TotalCalories
		}
		averageCalories = int(math.Round(sum / float64(len(rows))))
	}

	stats := services.ComputeStats(user)
	return toolResult(c, fiber.Map{
		"period":         services.FormatDay(from) + " to " + services.FormatDay(now),
		"calorie_target": stats.CalorieTarget,
		"days_logged":    len(rows),
		"days_requested": days,
		"avg_calories":   averageCalories,
		"days":           rows,
	})
}

func (server *Server) logFoodEntry(c *fiber.Ctx, user *models.User, args toolArguments) error {
	if strings.TrimSpace(args.FoodName) == "" || args.Calories == 0 {
		return toolError(c, "food_name and calories are required.")
	}

	now := server.now()
	logDate := now
	if raw := strings.TrimSpace(args.LogDate); raw != "" {
		parsed, err := services.ParseDay(raw)
		if err != nil {
			return toolError(c, "log_date must be YYYY-MM-DD.")
		}
		logDate = parsed
	}

	mealType := strings.TrimSpace(args.MealType)
	if mealType == "" {
		mealType = models.MealSnack
	}

	entry := models.FoodLog{
		UserID:   user.ID,
		LoggedAt: now.UTC(),
		LogDate:  services.DayStartUTC(logDate),
		MealType: mealType,
		FoodName: strings.TrimSpace(args.FoodName),
		Calories: args.Calories,
		Protein:  args.Protein,
		Carbs:    args.Carbs,
		Fat:      args.Fat,
	}
	if err := server.repos.FoodLogs.Create(&entry); err != nil {
		return toolError(c, err.Error())
	}

	return toolResult(c, fiber.Map{
		"success":  true,
		"id":       entry.ID,
		"logged":   entry.FoodName,
		"calories": entry.Calories,
	})
}

func (server *Server) fastingStatus(c *fiber.Ctx, user *models.User) error {
	now := server.now()

	var activeView any
	session, found, err := server.repos.FastingSessions.FindActive(user.ID)
	if err != nil {
		return toolError(c, err.Error())
	}
	if found {
		activeView = fiber.Map{
			"session":       session,
			"elapsed_hours": services.ElapsedHours(session, now),
			"goal_reached":  services.GoalReached(session, now),
		}
	}

	history, err := server.repos.FastingSessions.History(user.ID, 10)
	if err != nil {
		return toolError(c, err.Error())
	}
	stats, err := server.repos.FastingSessions.Stats(user.ID)
	if err != nil {
		return toolError(c, err.Error())
	}

	return toolResult(c, fiber.Map{
		"active_fast":    activeView,
		"stats":          stats,
		"recent_history": history,
	})
}

func (server *Server) weightProgress(c *fiber.Ctx, user *models.User) error {
	goal, hasGoal, err := server.repos.Weights.ActiveGoal(user.ID)
	if err != nil {
		return toolError(c, err.Error())
	}
	logs, err := server.repos.Weights.RecentLogs(user.ID, 20)
	if err != nil {
		return toolError(c, err.Error())
	}

	result := fiber.Map{
		"active_goal":   nil,
		"days_left":     nil,
		"latest_weight": nil,
		"kg_to_go":      nil,
		"weight_logs":   logs,
	}
	if len(logs) > 0 {
		result["latest_weight"] = logs[0].Weight
	}
	if hasGoal {
		daysLeft := int(math.Ceil(goal.TargetDate.Sub(server.now().UTC()).Hours() / 24))
		if daysLeft < 0 {
			daysLeft = 0
		}
		result["active_goal"] = goal
		result["days_left"] = daysLeft
		if len(logs) > 0 {
			result["kg_to_go"] = math.Round((logs[0].Weight-goal.TargetWeight)*10) / 10
		}
	}
	return toolResult(c, result)
}

// toolResult wraps tool output in the assistant-facing content envelope: a
// single text part holding the payload as indented JSON.
func toolResult(c *fiber.Ctx, payload any) error {
	text, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return toolError(c, err.Error())
	}
	return c.JSON(fiber.Map{
		"content": []fiber.Map{{"type": "text", "text": string(text)}},
	})
}

func toolError(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{
		"isError": true,
		"content": []fiber.Map{{"type": "text", "text": message}},
	})
}
