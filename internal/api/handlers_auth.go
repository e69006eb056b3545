package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nutrisnap/internal/models"
	"github.com/terraincognita07/nutrisnap/internal/services"
	"golang.org/x/crypto/bcrypt"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := registerInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	input.Name = strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if input.Name == "" || email == "" || input.Password == "" {
		return apiError(c, fiber.StatusBadRequest, "Name, email and password are required.")
	}

	exists, err := handler.repos.Users.ExistsByNormalizedEmail(email)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to create account.")
	}
	if exists {
		return apiError(c, fiber.StatusConflict, "Email already in use.")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to secure password.")
	}

	user := models.User{
		Name:         input.Name,
		Email:        email,
		PasswordHash: string(passwordHash),
		Age:          input.Age,
		Weight:       input.Weight,
		Height:       input.Height,
		Gender:       defaultString(input.Gender, models.GenderOther),
		Activity:     defaultString(input.Activity, models.ActivityModerate),
		Goal:         defaultString(input.Goal, models.GoalMaintain),
		CreatedAt:    handler.now().UTC(),
	}
	if err := handler.repos.Users.Create(&user); err != nil {
		return apiError(c, fiber.StatusConflict, "Email already in use.")
	}

	token, err := handler.buildToken(&user, authTokenTTL)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to create session.")
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  handler.profileView(&user),
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := loginInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return apiError(c, fiber.StatusBadRequest, "Email and password required.")
	}

	user, err := handler.repos.Users.FindByNormalizedEmail(email)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "Invalid credentials.")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return apiError(c, fiber.StatusUnauthorized, "Invalid credentials.")
	}

	token, err := handler.buildToken(&user, authTokenTTL)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to create session.")
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  handler.profileView(&user),
	})
}

func defaultString(value string, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}

type profileView struct {
	ID        uint     `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Age       *int     `json:"age"`
	Weight    *float64 `json:"weight"`
	Height    *float64 `json:"height"`
	Gender    string   `json:"gender"`
	Activity  string   `json:"activity"`
	Goal      string   `json:"goal"`
	CreatedAt string   `json:"created_at"`
	services.MetabolicStats
	HasMCPKey bool `json:"has_mcp_key"`
}

// profileView merges the raw profile with its derived stats. The password
// hash and the assistant key never leave the server; has_mcp_key is the only
// signal the UI gets.
func (handler *Handler) profileView(user *models.User) profileView {
	return profileView{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Age:            user.Age,
		Weight:         user.Weight,
		Height:         user.Height,
		Gender:         user.Gender,
		Activity:       user.Activity,
		Goal:           user.Goal,
		CreatedAt:      user.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		MetabolicStats: services.ComputeStats(user),
		HasMCPKey:      strings.TrimSpace(user.MCPAPIKey) != "",
	}
}
