package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")
	api.Get("/health", handler.Health)

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)

	food := api.Group("/food", handler.AuthRequired)
	food.Post("/analyze", handler.AnalyzeFood)
	food.Post("/log", handler.LogFood)
	food.Get("/logs", handler.GetFoodLogs)
	food.Get("/summary", handler.GetFoodSummary)
	food.Delete("/log/:id", handler.DeleteFoodLog)

	user := api.Group("/user", handler.AuthRequired)
	user.Get("/profile", handler.GetProfile)
	user.Put("/profile", handler.UpdateProfile)
	user.Get("/mcp-key", handler.GetMCPKey)
	user.Post("/mcp-key", handler.GenerateMCPKey)
	user.Delete("/mcp-key", handler.RevokeMCPKey)

	goals := api.Group("/goals", handler.AuthRequired)
	goals.Get("/weight", handler.GetWeightGoal)
	goals.Post("/weight", handler.SetWeightGoal)
	goals.Delete("/weight/:id", handler.DeleteWeightGoal)
	goals.Post("/weight/log", handler.LogWeight)
	goals.Get("/weight/analysis", handler.GetWeightGoalAnalysis)

	fasting := api.Group("/fasting", handler.AuthRequired)
	fasting.Post("/start", handler.StartFast)
	fasting.Post("/end", handler.EndFast)
	fasting.Post("/cancel", handler.CancelFast)
	fasting.Get("/current", handler.GetCurrentFast)
	fasting.Get("/history", handler.GetFastingHistory)

	insights := api.Group("/insights", handler.AuthRequired)
	insights.Get("/daily", handler.GetDailyInsight)
	insights.Get("/weekly", handler.GetWeeklyReport)
}
