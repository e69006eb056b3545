package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nutrisnap/internal/services"
)

func (handler *Handler) GetWeightGoal(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Authentication required.")
	}

	goal, logs, err := handler.weights.Overview(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to load weight goal.")
	}
	return c.JSON(fiber.Map{
		"goal": goal,
		"logs": logs,
	})
}

func (handler *Handler) SetWeightGoal(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Authentication required.")
	}

	input := weightGoalInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if input.TargetWeight == nil || strings.TrimSpace(input.TargetDate) == "" {
		return apiError(c, fiber.StatusBadRequest, "target_weight and target_date required.")
	}

	targetDate, err := services.ParseDay(strings.TrimSpace(input.TargetDate))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "target_date must be YYYY-MM-DD.")
	}

	startWeight := 0.0
	if user.Weight != nil {
		startWeight = *user.Weight
	}

	goal, err := handler.weights.SetGoal(user.ID, startWeight, *input.TargetWeight, targetDate, strings.TrimSpace(input.Notes), handler.now())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to save weight goal.")
	}
	return c.Status(fiber.StatusCreated).JSON(goal)
}

func (handler *Handler) DeleteWeightGoal(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Authentication required.")
	}

	goalID, ok := parseUintParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "Invalid goal id.")
	}

	if err := handler.weights.DeleteGoal(goalID, user.ID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to delete weight goal.")
	}
	return c.JSON(fiber.Map{"deleted": true})
}

func (handler *Handler) LogWeight(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Authentication required.")
	}

	input := weightLogInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if input.Weight == nil || *input.Weight <= 0 {
		return apiError(c, fiber.StatusBadRequest, "weight required.")
	}

	entry, err := handler.weights.LogWeight(user.ID, *input.Weight, strings.TrimSpace(input.Note), handler.now())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to save weight.")
	}

	// Keep the profile's current weight in step so derived stats follow the
	// newest measurement.
	if err := handler.repos.Users.UpdateProfile(user.ID, map[string]any{"weight": *input.Weight}); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to update profile weight.")
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) GetWeightGoalAnalysis(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Authentication required.")
	}

	analysis, hasGoal, err := handler.insights.GoalAnalysis(c.Context(), *user, handler.now())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to analyze goal.")
	}
	if !hasGoal {
		return c.JSON(fiber.Map{"analysis": "Set a weight goal first to get a personalized analysis."})
	}
	return c.JSON(fiber.Map{"analysis": analysis})
}
