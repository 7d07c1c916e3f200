package nutrition

import (
	"math"
	"time"

	"vitalcoach/internal/store"
)

// Goal is the user's body-composition goal.
type Goal string

const (
	GoalMuscleGain  Goal = "muscle_gain"
	GoalBulk        Goal = "bulk"
	GoalFatLoss     Goal = "fat_loss"
	GoalCut         Goal = "cut"
	GoalMaintenance Goal = "maintenance"
	GoalRecomp      Goal = "recomp"
)

// ActivityLevel describes habitual daily activity outside of tracked
// workouts.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityVeryActive ActivityLevel = "very_active"
	ActivityAthlete    ActivityLevel = "athlete"
)

// activityFactors maps activity levels to their TDEE multiplier. This
// is the single source of truth for valid levels, also used by config
// validation.
var activityFactors = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityVeryActive: 1.725,
	ActivityAthlete:    1.9,
}

// Hard floors a target must satisfy before it is persisted or shown.
const (
	MinProteinPerKg = 1.6  // g protein per kg bodyweight
	MinDailyCal     = 1200 // kcal/day
)

// Calorie adjustments relative to maintenance.
const (
	surplusCal    = 400 // muscle_gain / bulk
	deficitCal    = 400 // fat_loss / cut
	workoutDayCal = 100 // extra on training days, except when cutting
)

// Target is a computed daily calorie/macro plan, valid until ValidUntil.
type Target struct {
	DailyCalories int
	Macros        Macros
	BMR           int
	WorkoutDay    bool
	CreatedAt     time.Time
	ValidUntil    time.Time
}

// DailyCalories derives the calorie target from BMR, goal and activity
// level. Unrecognized activity levels fall back to moderate.
func DailyCalories(bmr int, goal Goal, level ActivityLevel, workoutDay bool) int {
	factor, ok := activityFactors[level]
	if !ok {
		factor = activityFactors[ActivityModerate]
	}

	maintenance := float64(bmr) * factor

	var calories float64
	switch goal {
	case GoalMuscleGain, GoalBulk:
		calories = maintenance + surplusCal
	case GoalFatLoss, GoalCut:
		calories = maintenance - deficitCal
	default: // maintenance / recomp
		calories = maintenance
	}

	if workoutDay && !isCutting(goal) {
		calories += workoutDayCal
	}

	return int(math.Round(calories))
}

// CalculateMacros splits a calorie target into protein, carbs and fats.
// Protein is set per kg of bodyweight by goal, the remainder is split
// between carbs and fats, and workout days shift 30g towards carbs at
// the cost of 10g fat (carb cycling).
func CalculateMacros(calories int, weightKg float64, goal Goal, workoutDay bool, now time.Time) Target {
	var proteinPerKg float64
	switch goal {
	case GoalMuscleGain, GoalBulk:
		proteinPerKg = 2.2
	case GoalFatLoss, GoalCut:
		proteinPerKg = 2.4
	default:
		proteinPerKg = 2.0
	}

	proteinG := weightKg * proteinPerKg
	remaining := float64(calories) - proteinG*4

	var carbShare, fatShare float64
	switch goal {
	case GoalMuscleGain, GoalBulk:
		carbShare, fatShare = 0.60, 0.40
	case GoalFatLoss, GoalCut:
		carbShare, fatShare = 0.40, 0.60
	default:
		carbShare, fatShare = 0.55, 0.45
	}

	carbsG := math.Round(remaining * carbShare / 4)
	fatsG := math.Round(remaining * fatShare / 9)

	if workoutDay {
		// Applied after the split, not proportionally.
		carbsG += 30
		fatsG -= 10
	}

	return Target{
		DailyCalories: calories,
		Macros: Macros{
			ProteinG: int(math.Round(proteinG)),
			CarbsG:   int(carbsG),
			FatsG:    int(fatsG),
		},
		WorkoutDay: workoutDay,
		CreatedAt:  now,
		ValidUntil: now.Add(24 * time.Hour),
	}
}

// TargetFromBodyMetrics composes DailyCalories and CalculateMacros from
// a stored body snapshot.
func TargetFromBodyMetrics(m store.BodyMetrics, goal Goal, level ActivityLevel, workoutDay bool, now time.Time) Target {
	calories := DailyCalories(m.BMR, goal, level, workoutDay)
	target := CalculateMacros(calories, m.WeightKg, goal, workoutDay, now)
	target.BMR = m.BMR
	return target
}

// Fixed meal ratios, grams per kg bodyweight (fats are flat grams).
const (
	postWorkoutProteinPerKg = 0.4
	postWorkoutCarbsPerKg   = 0.8
	postWorkoutFatG         = 5
	preWorkoutProteinPerKg  = 0.3
	preWorkoutCarbsPerKg    = 0.6
	preWorkoutFatG          = 8

	mealValidity = 2 * time.Hour
)

// PostWorkoutMeal returns the recovery meal target for the two hours
// after training.
func PostWorkoutMeal(weightKg float64, now time.Time) Target {
	return mealTarget(weightKg, postWorkoutProteinPerKg, postWorkoutCarbsPerKg, postWorkoutFatG, now)
}

// PreWorkoutMeal returns the fueling meal target for the two hours
// before training.
func PreWorkoutMeal(weightKg float64, now time.Time) Target {
	return mealTarget(weightKg, preWorkoutProteinPerKg, preWorkoutCarbsPerKg, preWorkoutFatG, now)
}

func mealTarget(weightKg, proteinPerKg, carbsPerKg float64, fatG int, now time.Time) Target {
	macros := Macros{
		ProteinG: int(math.Round(weightKg * proteinPerKg)),
		CarbsG:   int(math.Round(weightKg * carbsPerKg)),
		FatsG:    fatG,
	}
	return Target{
		DailyCalories: macros.TotalCalories(),
		Macros:        macros,
		WorkoutDay:    true,
		CreatedAt:     now,
		ValidUntil:    now.Add(mealValidity),
	}
}

// ValidateTarget reports whether a daily target satisfies the minimum
// protein and calorie floors. Callers must branch on this before
// persisting or presenting a target.
func ValidateTarget(t Target, weightKg float64) bool {
	if float64(t.Macros.ProteinG) < MinProteinPerKg*weightKg {
		return false
	}
	if t.DailyCalories < MinDailyCal {
		return false
	}
	return true
}

// ValidActivityLevel reports whether the level has a known TDEE factor.
func ValidActivityLevel(level ActivityLevel) bool {
	_, ok := activityFactors[level]
	return ok
}

// ValidGoal reports whether the goal is one of the recognized values.
func ValidGoal(goal Goal) bool {
	switch goal {
	case GoalMuscleGain, GoalBulk, GoalFatLoss, GoalCut, GoalMaintenance, GoalRecomp:
		return true
	}
	return false
}

func isCutting(goal Goal) bool {
	return goal == GoalFatLoss || goal == GoalCut
}
