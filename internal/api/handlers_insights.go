package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) GetDailyInsight(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Authentication required.")
	}

	insight, err := handler.insights.DailyInsight(c.Context(), *user, handler.now())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to generate insight.")
	}
	return c.JSON(fiber.Map{"insight": insight})
}

func (handler *Handler) GetWeeklyReport(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Authentication required.")
	}

	report, err := handler.insights.WeeklyReport(c.Context(), *user, handler.now())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to generate report.")
	}
	return c.JSON(fiber.Map{"report": report})
}
