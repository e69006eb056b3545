package services

import (
	"testing"

	"github.com/terraincognita07/nutrisnap/internal/models"
)

func intPointer(value int) *int {
	return &value
}

func floatPointer(value float64) *float64 {
	return &value
}

func TestComputeStatsFullProfile(t *testing.T) {
	t.Parallel()

	user := &models.User{
		Age:      intPointer(30),
		Weight:   floatPointer(70),
		Height:   floatPointer(175),
		Gender:   models.GenderMale,
		Activity: models.ActivityModerate,
		Goal:     models.GoalLose,
	}

	stats := ComputeStats(user)

	if stats.BMI == nil || *stats.BMI != 22.9 {
		t.Fatalf("expected bmi 22.9, got %v", stats.BMI)
	}
	if stats.BMICategory == nil || *stats.BMICategory != BMICategoryNormal {
		t.Fatalf("expected category %q, got %v", BMICategoryNormal, stats.BMICategory)
	}
	if stats.BMR == nil || *stats.BMR != 1649 {
		t.Fatalf("expected bmr 1649, got %v", stats.BMR)
	}
	if stats.TDEE == nil || *stats.TDEE != 2556 {
		t.Fatalf("expected tdee 2556, got %v", stats.TDEE)
	}
	if stats.CalorieTarget == nil || *stats.CalorieTarget != 2056 {
		t.Fatalf("expected calorie target 2056, got %v", stats.CalorieTarget)
	}
}

func TestComputeStatsFemaleOffset(t *testing.T) {
	t.Parallel()

	user := &models.User{
		Age:      intPointer(30),
		Weight:   floatPointer(70),
		Height:   floatPointer(175),
		Gender:   models.GenderFemale,
		Activity: models.ActivityModerate,
		Goal:     models.GoalMaintain,
	}

	stats := ComputeStats(user)

	// 10*70 + 6.25*175 - 5*30 - 161 = 1482.75
	if stats.BMR == nil || *stats.BMR != 1483 {
		t.Fatalf("expected bmr 1483, got %v", stats.BMR)
	}
	if stats.TDEE == nil || *stats.TDEE != 2298 {
		t.Fatalf("expected tdee 2298, got %v", stats.TDEE)
	}
	if stats.CalorieTarget == nil || *stats.CalorieTarget != 2298 {
		t.Fatalf("expected maintain target to equal tdee, got %v", stats.CalorieTarget)
	}
}

func TestComputeStatsPartialProfile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		user      *models.User
		wantBMI   bool
		wantChain bool
	}{
		{name: "nil user", user: nil},
		{name: "empty profile", user: &models.User{}},
		{
			name:    "weight and height only",
			user:    &models.User{Weight: floatPointer(70), Height: floatPointer(175), Gender: models.GenderMale},
			wantBMI: true,
		},
		{
			name: "zero age blocks calorie chain",
			user: &models.User{
				Age: intPointer(0), Weight: floatPointer(70), Height: floatPointer(175),
				Gender: models.GenderMale,
			},
			wantBMI: true,
		},
		{
			name: "missing gender blocks calorie chain",
			user: &models.User{
				Age: intPointer(30), Weight: floatPointer(70), Height: floatPointer(175),
			},
			wantBMI: true,
		},
		{
			name: "complete profile",
			user: &models.User{
				Age: intPointer(30), Weight: floatPointer(70), Height: floatPointer(175),
				Gender: models.GenderOther, Activity: models.ActivityModerate, Goal: models.GoalMaintain,
			},
			wantBMI:   true,
			wantChain: true,
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			stats := ComputeStats(testCase.user)

			if gotBMI := stats.BMI != nil; gotBMI != testCase.wantBMI {
				t.Fatalf("expected bmi present=%v, got %v", testCase.wantBMI, gotBMI)
			}
			if gotChain := stats.BMR != nil && stats.TDEE != nil && stats.CalorieTarget != nil; gotChain != testCase.wantChain {
				t.Fatalf("expected calorie chain present=%v, got bmr=%v tdee=%v target=%v",
					testCase.wantChain, stats.BMR, stats.TDEE, stats.CalorieTarget)
			}
		})
	}
}

func TestComputeStatsGenderOtherUsesMaleOffset(t *testing.T) {
	t.Parallel()

	base := models.User{
		Age: intPointer(30), Weight: floatPointer(70), Height: floatPointer(175),
		Activity: models.ActivityModerate, Goal: models.GoalMaintain,
	}

	male := base
	male.Gender = models.GenderMale
	other := base
	other.Gender = models.GenderOther

	maleStats := ComputeStats(&male)
	otherStats := ComputeStats(&other)

	if *maleStats.BMR != *otherStats.BMR {
		t.Fatalf("expected gender=other to match male bmr %d, got %d", *maleStats.BMR, *otherStats.BMR)
	}
}

func TestComputeStatsUnknownActivityFallsBackToModerate(t *testing.T) {
	t.Parallel()

	user := &models.User{
		Age: intPointer(30), Weight: floatPointer(70), Height: floatPointer(175),
		Gender: models.GenderMale, Activity: "extreme", Goal: models.GoalGain,
	}

	stats := ComputeStats(user)

	if stats.TDEE == nil || *stats.TDEE != 2556 {
		t.Fatalf("expected moderate fallback tdee 2556, got %v", stats.TDEE)
	}
	if stats.CalorieTarget == nil || *stats.CalorieTarget != 2856 {
		t.Fatalf("expected gain target 2856, got %v", stats.CalorieTarget)
	}
}

func TestBMICategoryBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bmi  float64
		want string
	}{
		{bmi: 16.0, want: BMICategoryUnderweight},
		{bmi: 18.4, want: BMICategoryUnderweight},
		{bmi: 18.5, want: BMICategoryNormal},
		{bmi: 24.7, want: BMICategoryNormal},
		{bmi: 24.9, want: BMICategoryNormal},
		{bmi: 25.0, want: BMICategoryOverweight},
		{bmi: 29.9, want: BMICategoryOverweight},
		{bmi: 30.0, want: BMICategoryObese},
		{bmi: 33.3, want: BMICategoryObese},
	}

	for _, testCase := range tests {
		if got := BMICategoryFor(testCase.bmi); got != testCase.want {
			t.Fatalf("expected category %q for bmi %.1f, got %q", testCase.want, testCase.bmi, got)
		}
	}
}
