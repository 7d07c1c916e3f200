package nutrition

import (
	"testing"
	"time"

	"vitalcoach/internal/store"
)

var testNow = time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)

func TestDailyCalories(t *testing.T) {
	tests := []struct {
		name       string
		bmr        int
		goal       Goal
		level      ActivityLevel
		workoutDay bool
		expected   int
	}{
		{
			// maintenance = 1600*1.55 = 2480, cut -400
			name:     "fat loss on a rest day",
			bmr:      1600,
			goal:     GoalFatLoss,
			level:    ActivityModerate,
			expected: 2080,
		},
		{
			// no workout bonus while cutting
			name:       "fat loss on a workout day",
			bmr:        1600,
			goal:       GoalFatLoss,
			level:      ActivityModerate,
			workoutDay: true,
			expected:   2080,
		},
		{
			// 1600*1.55 + 400 + 100
			name:       "muscle gain on a workout day",
			bmr:        1600,
			goal:       GoalMuscleGain,
			level:      ActivityModerate,
			workoutDay: true,
			expected:   3080,
		},
		{
			// bulk behaves like muscle_gain
			name:     "bulk alias",
			bmr:      1600,
			goal:     GoalBulk,
			level:    ActivityModerate,
			expected: 2880,
		},
		{
			// cut alias gets no workout bonus either
			name:       "cut alias on workout day",
			bmr:        1600,
			goal:       GoalCut,
			level:      ActivityModerate,
			workoutDay: true,
			expected:   2080,
		},
		{
			// 1600*1.2
			name:     "sedentary maintenance",
			bmr:      1600,
			goal:     GoalMaintenance,
			level:    ActivitySedentary,
			expected: 1920,
		},
		{
			// 1600*1.9 + 100
			name:       "athlete recomp workout day",
			bmr:        1600,
			goal:       GoalRecomp,
			level:      ActivityAthlete,
			workoutDay: true,
			expected:   3140,
		},
		{
			// unknown level falls back to moderate: 1500*1.55 = 2325
			name:     "unrecognized activity level defaults to moderate",
			bmr:      1500,
			goal:     GoalMaintenance,
			level:    ActivityLevel("couch"),
			expected: 2325,
		},
		{
			// 1500*1.375 = 2062.5 rounds to 2063
			name:     "rounding to nearest",
			bmr:      1500,
			goal:     GoalMaintenance,
			level:    ActivityLight,
			expected: 2063,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DailyCalories(tt.bmr, tt.goal, tt.level, tt.workoutDay)
			if got != tt.expected {
				t.Errorf("DailyCalories(%d, %s, %s, %v) = %d, want %d",
					tt.bmr, tt.goal, tt.level, tt.workoutDay, got, tt.expected)
			}
		})
	}
}

func TestCalculateMacros(t *testing.T) {
	t.Run("fat loss split", func(t *testing.T) {
		// protein = 70*2.4 = 168g (672 kcal), remaining = 1408
		// carbs = 1408*0.4/4 = 140.8 -> 141, fats = 1408*0.6/9 = 93.87 -> 94
		got := CalculateMacros(2080, 70, GoalFatLoss, false, testNow)
		if got.Macros.ProteinG != 168 {
			t.Errorf("ProteinG = %d, want 168", got.Macros.ProteinG)
		}
		if got.Macros.CarbsG != 141 {
			t.Errorf("CarbsG = %d, want 141", got.Macros.CarbsG)
		}
		if got.Macros.FatsG != 94 {
			t.Errorf("FatsG = %d, want 94", got.Macros.FatsG)
		}
	})

	t.Run("muscle gain split", func(t *testing.T) {
		// protein = 80*2.2 = 176g (704 kcal), remaining = 2376
		// carbs = 2376*0.6/4 = 356.4 -> 356, fats = 2376*0.4/9 = 105.6 -> 106
		got := CalculateMacros(3080, 80, GoalMuscleGain, false, testNow)
		if got.Macros.ProteinG != 176 || got.Macros.CarbsG != 356 || got.Macros.FatsG != 106 {
			t.Errorf("Macros = %+v, want 176/356/106", got.Macros)
		}
	})

	t.Run("maintenance split", func(t *testing.T) {
		// protein = 75*2.0 = 150g (600 kcal), remaining = 1880
		// carbs = 1880*0.55/4 = 258.5 -> 259 (round half up), fats = 1880*0.45/9 = 94
		got := CalculateMacros(2480, 75, GoalMaintenance, false, testNow)
		if got.Macros.ProteinG != 150 || got.Macros.CarbsG != 259 || got.Macros.FatsG != 94 {
			t.Errorf("Macros = %+v, want 150/259/94", got.Macros)
		}
	})

	t.Run("workout day shifts carbs against fats", func(t *testing.T) {
		rest := CalculateMacros(2080, 70, GoalFatLoss, false, testNow)
		workout := CalculateMacros(2080, 70, GoalFatLoss, true, testNow)
		if workout.Macros.CarbsG != rest.Macros.CarbsG+30 {
			t.Errorf("workout CarbsG = %d, want %d", workout.Macros.CarbsG, rest.Macros.CarbsG+30)
		}
		if workout.Macros.FatsG != rest.Macros.FatsG-10 {
			t.Errorf("workout FatsG = %d, want %d", workout.Macros.FatsG, rest.Macros.FatsG-10)
		}
		if workout.Macros.ProteinG != rest.Macros.ProteinG {
			t.Errorf("workout ProteinG = %d, protein should not change", workout.Macros.ProteinG)
		}
	})

	t.Run("validity window is 24 hours", func(t *testing.T) {
		got := CalculateMacros(2080, 70, GoalFatLoss, false, testNow)
		if !got.ValidUntil.Equal(testNow.Add(24 * time.Hour)) {
			t.Errorf("ValidUntil = %v, want %v", got.ValidUntil, testNow.Add(24*time.Hour))
		}
	})
}

func TestTargetFromBodyMetrics(t *testing.T) {
	m := store.BodyMetrics{WeightKg: 70, BMR: 1600}
	got := TargetFromBodyMetrics(m, GoalFatLoss, ActivityModerate, false, testNow)

	if got.DailyCalories != 2080 {
		t.Errorf("DailyCalories = %d, want 2080", got.DailyCalories)
	}
	if got.BMR != 1600 {
		t.Errorf("BMR = %d, want 1600", got.BMR)
	}
	if got.Macros.ProteinG != 168 {
		t.Errorf("ProteinG = %d, want 168", got.Macros.ProteinG)
	}
}

func TestMealTargets(t *testing.T) {
	t.Run("post workout ratios", func(t *testing.T) {
		// 70kg: protein 28g, carbs 56g, fat 5g -> 28*4 + 56*4 + 5*9 = 381
		got := PostWorkoutMeal(70, testNow)
		if got.Macros.ProteinG != 28 || got.Macros.CarbsG != 56 || got.Macros.FatsG != 5 {
			t.Errorf("Macros = %+v, want 28/56/5", got.Macros)
		}
		if got.DailyCalories != 381 {
			t.Errorf("DailyCalories = %d, want 381", got.DailyCalories)
		}
		if !got.ValidUntil.Equal(testNow.Add(2 * time.Hour)) {
			t.Errorf("ValidUntil = %v, want a 2 hour window", got.ValidUntil)
		}
	})

	t.Run("pre workout ratios", func(t *testing.T) {
		// 70kg: protein 21g, carbs 42g, fat 8g -> 21*4 + 42*4 + 8*9 = 324
		got := PreWorkoutMeal(70, testNow)
		if got.Macros.ProteinG != 21 || got.Macros.CarbsG != 42 || got.Macros.FatsG != 8 {
			t.Errorf("Macros = %+v, want 21/42/8", got.Macros)
		}
		if got.DailyCalories != 324 {
			t.Errorf("DailyCalories = %d, want 324", got.DailyCalories)
		}
	})
}

func TestValidateTarget(t *testing.T) {
	tests := []struct {
		name     string
		target   Target
		weightKg float64
		expected bool
	}{
		{
			name:     "valid target",
			target:   Target{DailyCalories: 2080, Macros: Macros{ProteinG: 168, CarbsG: 141, FatsG: 94}},
			weightKg: 70,
			expected: true,
		},
		{
			// 1.6*70 = 112g floor
			name:     "protein below floor",
			target:   Target{DailyCalories: 2080, Macros: Macros{ProteinG: 111}},
			weightKg: 70,
			expected: false,
		},
		{
			name:     "protein exactly at floor passes",
			target:   Target{DailyCalories: 1500, Macros: Macros{ProteinG: 112}},
			weightKg: 70,
			expected: true,
		},
		{
			// calorie floor applies regardless of macro correctness
			name:     "calories below floor",
			target:   Target{DailyCalories: 1199, Macros: Macros{ProteinG: 200}},
			weightKg: 70,
			expected: false,
		},
		{
			name:     "calories exactly at floor passes",
			target:   Target{DailyCalories: 1200, Macros: Macros{ProteinG: 120}},
			weightKg: 70,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateTarget(tt.target, tt.weightKg); got != tt.expected {
				t.Errorf("ValidateTarget() = %v, want %v", got, tt.expected)
			}
		})
	}
}
