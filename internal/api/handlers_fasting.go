package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nutrisnap/internal/models"
	"github.com/terraincognita07/nutrisnap/internal/services"
)

// fastingSessionView decorates an active session with its live timer values.
// Both extra fields are recomputed on every request; they are never stored.
type fastingSessionView struct {
	models.FastingSession
	ElapsedHours float64 `json:"elapsed_hours"`
	GoalReached  bool    `json:"goal_reached"`
}

func (handler *Handler) StartFast(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Authentication required.")
	}

	input := startFastInput{}
	if err := c.BodyParser(&input); err != nil && len(c.Body()) > 0 {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	session, err := handler.fasting.Start(user.ID, input.TargetHours, input.Protocol, handler.now())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to start fast.")
	}
	return c.JSON(fiber.Map{"session": session})
}

func (handler *Handler) EndFast(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Authentication required.")
	}

	input := endFastInput{}
	if err := c.BodyParser(&input); err != nil && len(c.Body()) > 0 {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	actualHours, err := handler.fasting.End(user.ID, input.Feeling, input.Note, handler.now())
	if err != nil {
		if errors.Is(err, services.ErrNoActiveFast) {
			return apiError(c, fiber.StatusNotFound, "No active fast.")
		}
		return apiError(c, fiber.StatusInternalServerError, "Failed to end fast.")
	}
	return c.JSON(fiber.Map{"success": true, "actual_hours": actualHours})
}

// CancelFast discards the active session without recording hours. Cancelling
// with nothing active still answers 200; the client treats both the same.
func (handler *Handler) CancelFast(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Authentication required.")
	}

	if err := handler.fasting.Cancel(user.ID, handler.now()); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to cancel fast.")
	}
	return c.JSON(fiber.Map{"success": true})
}

func (handler *Handler) GetCurrentFast(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Authentication required.")
	}

	session, found, err := handler.fasting.Current(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to load fast.")
	}
	if !found {
		return c.JSON(fiber.Map{"session": nil})
	}

	now := handler.now()
	return c.JSON(fiber.Map{
		"session": fastingSessionView{
			FastingSession: session,
			ElapsedHours:   services.ElapsedHours(session, now),
			GoalReached:    services.GoalReached(session, now),
		},
	})
}

func (handler *Handler) GetFastingHistory(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Authentication required.")
	}

	limit := queryInt(c, "limit", services.DefaultHistoryLimit)
	sessions, stats, err := handler.fasting.History(user.ID, limit)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to load history.")
	}

	return c.JSON(fiber.Map{
		"sessions": sessions,
		"stats":    stats,
	})
}
