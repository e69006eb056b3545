package services

import (
	"math"

	"github.com/terraincognita07/nutrisnap/internal/models"
)

const (
	BMICategoryUnderweight = "Underweight"
	BMICategoryNormal      = "Normal weight"
	BMICategoryOverweight  = "Overweight"
	BMICategoryObese       = "Obese"
)

// activityMultipliers scale BMR into TDEE. Unrecognized levels fall back to
// the moderate multiplier.
var activityMultipliers = map[string]float64{
	models.ActivitySedentary:  1.2,
	models.ActivityLight:      1.375,
	models.ActivityModerate:   1.55,
	models.ActivityActive:     1.725,
	models.ActivityVeryActive: 1.9,
}

// goalAdjustments shift the daily calorie target relative to TDEE.
// Unrecognized goals fall back to maintain.
var goalAdjustments = map[string]int{
	models.GoalLose:     -500,
	models.GoalMaintain: 0,
	models.GoalGain:     300,
}

// MetabolicStats carries derived profile numbers. A nil field means the
// profile is missing a prerequisite and the value is unknown, not zero.
type MetabolicStats struct {
	BMI           *float64 `json:"bmi,omitempty"`
	BMICategory   *string  `json:"bmi_category,omitempty"`
	BMR           *int     `json:"bmr,omitempty"`
	TDEE          *int     `json:"tdee,omitempty"`
	CalorieTarget *int     `json:"calorie_target,omitempty"`
}

// ComputeStats derives BMI, BMR (Mifflin-St Jeor), TDEE and the daily calorie
// target from a user profile. Missing prerequisites shrink the result instead
// of failing: BMI needs weight+height, the calorie chain additionally needs
// age and gender.
func ComputeStats(user *models.User) MetabolicStats {
	stats := MetabolicStats{}
	if user == nil {
		return stats
	}

	hasWeight := user.Weight != nil && *user.Weight > 0
	hasHeight := user.Height != nil && *user.Height > 0
	hasAge := user.Age != nil && *user.Age > 0

	if hasWeight && hasHeight {
		heightMeters := *user.Height / 100
		bmi := roundTo(*user.Weight/(heightMeters*heightMeters), 1)
		category := BMICategoryFor(bmi)
		stats.BMI = &bmi
		stats.BMICategory = &category
	}

	if hasAge && hasWeight && hasHeight && user.Gender != "" {
		bmr := 10**user.Weight + 6.25**user.Height - 5*float64(*user.Age)
		if user.Gender == models.GenderFemale {
			bmr -= 161
		} else {
			bmr += 5
		}

		multiplier, known := activityMultipliers[user.Activity]
		if !known {
			multiplier = activityMultipliers[models.ActivityModerate]
		}
		tdee := int(math.Round(bmr * multiplier))
		target := tdee + goalAdjustments[user.Goal]
		roundedBMR := int(math.Round(bmr))

		stats.BMR = &roundedBMR
		stats.TDEE = &tdee
		stats.CalorieTarget = &target
	}

	return stats
}

// BMICategoryFor brackets a BMI value; each boundary value belongs to the
// upper bracket (exactly 25.0 is already Overweight).
func BMICategoryFor(bmi float64) string {
	switch {
	case bmi < 18.5:
		return BMICategoryUnderweight
	case bmi < 25:
		return BMICategoryNormal
	case bmi < 30:
		return BMICategoryOverweight
	default:
		return BMICategoryObese
	}
}

func roundTo(value float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(value*scale) / scale
}
