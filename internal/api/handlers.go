package api

import (
	"time"

	"github.com/terraincognita07/nutrisnap/internal/db"
	"github.com/terraincognita07/nutrisnap/internal/services"
	"gorm.io/gorm"
)

const (
	contextUserKey = "current_user"

	authTokenTTL = 30 * 24 * time.Hour
)

type Handler struct {
	db        *gorm.DB
	repos     *db.Repositories
	secretKey []byte

	fasting    *services.FastingService
	nutrition  *services.NutritionService
	weights    *services.WeightGoalService
	insights   *services.InsightsService
	recognizer *services.FoodRecognizer

	// now is the single time source for request handling; everything derived
	// from it is normalized to UTC before storage or comparison.
	now func() time.Time
}

func NewHandler(database *gorm.DB, secret string, vision services.VisionClient, coach services.CoachClient) *Handler {
	repos := db.NewRepositories(database)
	nutrition := services.NewNutritionService(repos.FoodLogs)

	return &Handler{
		db:         database,
		repos:      repos,
		secretKey:  []byte(secret),
		fasting:    services.NewFastingService(repos.FastingSessions),
		nutrition:  nutrition,
		weights:    services.NewWeightGoalService(repos.Weights),
		insights:   services.NewInsightsService(coach, nutrition, repos.FastingSessions, repos.Weights),
		recognizer: services.NewFoodRecognizer(vision),
		now:        time.Now,
	}
}

type registerInput struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Age      *int     `json:"age"`
	Weight   *float64 `json:"weight"`
	Height   *float64 `json:"height"`
	Gender   string   `json:"gender"`
	Activity string   `json:"activity"`
	Goal     string   `json:"goal"`
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileInput struct {
	Name     string   `json:"name"`
	Age      *int     `json:"age"`
	Weight   *float64 `json:"weight"`
	Height   *float64 `json:"height"`
	Gender   string   `json:"gender"`
	Activity string   `json:"activity"`
	Goal     string   `json:"goal"`
}

type startFastInput struct {
	TargetHours float64 `json:"target_hours"`
	Protocol    string  `json:"protocol"`
}

type endFastInput struct {
	Feeling string `json:"feeling"`
	Note    string `json:"note"`
}

type foodLogInput struct {
	FoodName    string   `json:"food_name"`
	Description string   `json:"description"`
	Calories    *float64 `json:"calories"`
	Protein     float64  `json:"protein"`
	Carbs       float64  `json:"carbs"`
	Fat         float64  `json:"fat"`
	Fiber       float64  `json:"fiber"`
	ServingSize string   `json:"serving_size"`
	MealType    string   `json:"meal_type"`
	LogDate     string   `json:"log_date"`
	ImageData   string   `json:"image_data"`
}

type weightGoalInput struct {
	TargetWeight *float64 `json:"target_weight"`
	TargetDate   string   `json:"target_date"`
	Notes        string   `json:"notes"`
}

type weightLogInput struct {
	Weight *float64 `json:"weight"`
	Note   string   `json:"note"`
}
