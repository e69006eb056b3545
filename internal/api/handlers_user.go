package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nutrisnap/internal/security"
)

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Authentication required.")
	}
	return c.JSON(handler.profileView(user))
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Authentication required.")
	}

	input := profileInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	updates := map[string]any{}
	if name := strings.TrimSpace(input.Name); name != "" {
		updates["name"] = name
	}
	if input.Age != nil {
		updates["age"] = *input.Age
	}
	if input.Weight != nil {
		updates["weight"] = *input.Weight
	}
	if input.Height != nil {
		updates["height"] = *input.Height
	}
	if gender := strings.TrimSpace(input.Gender); gender != "" {
		updates["gender"] = gender
	}
	if activity := strings.TrimSpace(input.Activity); activity != "" {
		updates["activity"] = activity
	}
	if goal := strings.TrimSpace(input.Goal); goal != "" {
		updates["goal"] = goal
	}

	if len(updates) > 0 {
		if err := handler.repos.Users.UpdateProfile(user.ID, updates); err != nil {
			return apiError(c, fiber.StatusInternalServerError, "Failed to update profile.")
		}
	}

	updated, err := handler.repos.Users.FindByID(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusNotFound, "User not found.")
	}
	return c.JSON(handler.profileView(&updated))
}

func (handler *Handler) GetMCPKey(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Authentication required.")
	}

	key := strings.TrimSpace(user.MCPAPIKey)
	if key == "" {
		return c.JSON(fiber.Map{"has_key": false})
	}
	return c.JSON(fiber.Map{
		"has_key": true,
		"masked":  security.MaskAPIKey(key),
	})
}

// GenerateMCPKey rotates the assistant key. The full key is returned exactly
// once, here; afterwards only the masked form is available.
func (handler *Handler) GenerateMCPKey(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Authentication required.")
	}

	key, err := security.NewAPIKey()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to generate key.")
	}
	if err := handler.repos.Users.UpdateMCPAPIKey(user.ID, key); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to store key.")
	}

	return c.JSON(fiber.Map{"key": key})
}

func (handler *Handler) RevokeMCPKey(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Authentication required.")
	}

	if err := handler.repos.Users.UpdateMCPAPIKey(user.ID, ""); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to revoke key.")
	}
	return c.JSON(fiber.Map{"revoked": true})
}
