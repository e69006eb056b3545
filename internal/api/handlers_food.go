package api

import (
	"encoding/base64"
	"errors"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nutrisnap/internal/services"
)

const maxFoodImageBytes = 10 << 20

// AnalyzeFood accepts a multipart photo upload (field "image", optional
// "note") or a JSON body with a pre-encoded data URI, and answers with the
// recognizer's nutrition estimate. Nothing is persisted; logging the entry is
// a separate, explicit call.
func (handler *Handler) AnalyzeFood(c *fiber.Ctx) error {
	if _, ok := currentUser(c); !ok {
		return apiError(c, fiber.StatusUnauthorized, "Authentication required.")
	}

	imageDataURI, note, err := handler.readFoodImage(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "Image is required.")
	}

	estimate, err := handler.recognizer.Analyze(c.Context(), imageDataURI, note)
	if err != nil {
		if errors.Is(err, services.ErrFoodNotRecognized) {
			return apiError(c, fiber.StatusUnprocessableEntity, "Could not recognize food in the image.")
		}
		return apiError(c, fiber.StatusInternalServerError, "Food analysis failed.")
	}
	return c.JSON(estimate)
}

func (handler *Handler) readFoodImage(c *fiber.Ctx) (string, string, error) {
	if file, err := c.FormFile("image"); err == nil {
		dataURI, err := encodeImageFile(file)
		if err != nil {
			return "", "", err
		}
		return dataURI, c.FormValue("note"), nil
	}

	body := struct {
		ImageData string `json:"image_data"`
		Note      string `json:"note"`
	}{}
	if err := c.BodyParser(&body); err != nil {
		return "", "", err
	}
	if strings.TrimSpace(body.ImageData) == "" {
		return "", "", errors.New("missing image")
	}
	return body.ImageData, body.Note, nil
}

func encodeImageFile(file *multipart.FileHeader) (string, error) {
	if file.Size > maxFoodImageBytes {
		return "", errors.New("image too large")
	}

	reader, err := file.Open()
	if err != nil {
		return "", err
	}
	defer reader.Close()

	raw, err := io.ReadAll(io.LimitReader(reader, maxFoodImageBytes))
	if err != nil {
		return "", err
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}

func (handler *Handler) LogFood(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Authentication required.")
	}

	input := foodLogInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if strings.TrimSpace(input.FoodName) == "" || input.Calories == nil {
		return apiError(c, fiber.StatusBadRequest, "food_name and calories are required.")
	}

	entryInput := services.FoodEntryInput{
		FoodName:    input.FoodName,
		Description: input.Description,
		Calories:    *input.Calories,
		Protein:     input.Protein,
		Carbs:       input.Carbs,
		Fat:         input.Fat,
		Fiber:       input.Fiber,
		ServingSize: input.ServingSize,
		MealType:    input.MealType,
		ImageData:   input.ImageData,
	}
	if raw := strings.TrimSpace(input.LogDate); raw != "" {
		day, err := services.ParseDay(raw)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "log_date must be YYYY-MM-DD.")
		}
		entryInput.LogDate = day
	}

	entry, err := handler.nutrition.LogEntry(user.ID, entryInput, handler.now())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to save entry.")
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) GetFoodLogs(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Authentication required.")
	}

	day := handler.now()
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		parsed, err := services.ParseDay(raw)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "date must be YYYY-MM-DD.")
		}
		day = parsed
	}

	logs, totals, err := handler.nutrition.LogsForDate(user.ID, day)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to load logs.")
	}
	return c.JSON(fiber.Map{
		"date":   services.FormatDay(day),
		"logs":   logs,
		"totals": totals,
	})
}

// GetFoodSummary answers per-day totals over [from, to], defaulting to the
// past 30 days. Days without entries are absent from the list.
func (handler *Handler) GetFoodSummary(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Authentication required.")
	}

	now := handler.now()
	from := now.AddDate(0, 0, -29)
	to := now
	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		parsed, err := services.ParseDay(raw)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "from must be YYYY-MM-DD.")
		}
		from = parsed
	}
	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		parsed, err := services.ParseDay(raw)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "to must be YYYY-MM-DD.")
		}
		to = parsed
	}

	days, err := handler.nutrition.RangeTotals(user.ID, from, to)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to load summary.")
	}
	return c.JSON(fiber.Map{
		"from": services.FormatDay(from),
		"to":   services.FormatDay(to),
		"days": days,
	})
}

func (handler *Handler) DeleteFoodLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Authentication required.")
	}

	entryID, ok := parseUintParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "Invalid entry id.")
	}

	if err := handler.nutrition.DeleteEntry(entryID, user.ID); err != nil {
		if errors.Is(err, services.ErrFoodLogNotFound) {
			return apiError(c, fiber.StatusNotFound, "Entry not found.")
		}
		return apiError(c, fiber.StatusInternalServerError, "Failed to delete entry.")
	}
	return c.JSON(fiber.Map{"deleted": true})
}
