package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

// ErrFoodNotRecognized means the model could not produce a usable estimate
// even after a retry; handlers map it to 422.
var ErrFoodNotRecognized = errors.New("food not recognized")

const foodAnalysisSystemPrompt = `You are a nutrition expert. Analyze the food in the image.
Always respond with ONLY valid JSON — no markdown, no extra text. Use this exact structure:
{"food_name":"string","description":"string","serving_size":"string","calories":number,"protein":number,"carbs":number,"fat":number,"fiber":number,"confidence":"high|medium|low"}
If you cannot identify food, still return the JSON with your best guess and confidence:"low".
NEVER return null. Always return a JSON object.`

// NutritionEstimate is what the external recognizer reports for one photo.
// The recognizer itself is a black box; only this shape is contractual.
type NutritionEstimate struct {
	FoodName    string  `json:"food_name"`
	Description string  `json:"description"`
	ServingSize string  `json:"serving_size"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
	Fiber       float64 `json:"fiber"`
	Confidence  string  `json:"confidence"`
}

type VisionClient interface {
	CompleteWithImage(ctx context.Context, systemPrompt string, userPrompt string, imageDataURI string, maxTokens int) (string, error)
}

type FoodRecognizer struct {
	vision VisionClient
}

func NewFoodRecognizer(vision VisionClient) *FoodRecognizer {
	return &FoodRecognizer{vision: vision}
}

// Analyze asks the vision model for a nutrition estimate of the image. A
// malformed response is retried once before giving up.
func (recognizer *FoodRecognizer) Analyze(ctx context.Context, imageDataURI string, note string) (NutritionEstimate, error) {
	userPrompt := "Analyze this food image and return the nutrition JSON."
	if trimmed := strings.TrimSpace(note); trimmed != "" {
		userPrompt = "Analyze this food image and return the nutrition JSON. The user added a note: \"" + trimmed + "\""
	}

	for attempt := 0; attempt < 2; attempt++ {
		raw, err := recognizer.vision.CompleteWithImage(ctx, foodAnalysisSystemPrompt, userPrompt, imageDataURI, 800)
		if err != nil {
			return NutritionEstimate{}, err
		}

		estimate := NutritionEstimate{}
		if json.Unmarshal([]byte(raw), &estimate) == nil && strings.TrimSpace(estimate.FoodName) != "" {
			return estimate, nil
		}
	}

	return NutritionEstimate{}, ErrFoodNotRecognized
}
