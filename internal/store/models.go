package store

import "time"

// Auth represents OAuth tokens for health gateway API access
type Auth struct {
	UserID       string    `db:"user_id"`
	AccessToken  string    `db:"access_token"`
	RefreshToken string    `db:"refresh_token"`
	ExpiresAt    time.Time `db:"expires_at"`
}

// BodyMetrics is one body-composition snapshot for a calendar day.
// Weight is the only required field; everything else defaults to zero
// when the source didn't report it.
type BodyMetrics struct {
	UserID           string    `db:"user_id"`
	Day              time.Time `db:"day"` // day granularity, time-of-day stripped
	WeightKg         float64   `db:"weight_kg"`
	BodyFatPct       float64   `db:"body_fat_pct"`
	SkeletalMuscleKg float64   `db:"skeletal_muscle_kg"`
	BMI              float64   `db:"bmi"`
	BMR              int       `db:"bmr"` // kcal/day, daily-summed basal energy
	HeightCm         float64   `db:"height_cm"`
	LeanBodyMassKg   *float64  `db:"lean_body_mass_kg"`   // nullable
	WaistCm          *float64  `db:"waist_cm"`            // nullable
}

// Completeness counts the non-zero core fields. When several readings
// exist for the same day (smart scale vs wearable), the one with the
// highest completeness wins.
func (m BodyMetrics) Completeness() int {
	score := 0
	if m.WeightKg > 0 {
		score++
	}
	if m.BodyFatPct > 0 {
		score++
	}
	if m.SkeletalMuscleKg > 0 {
		score++
	}
	if m.BMR > 0 {
		score++
	}
	return score
}

// NutritionTarget is a persisted daily calorie/macro plan.
// ValidUntil must be checked before reuse; an expired target requires
// recalculation.
type NutritionTarget struct {
	ID            int64     `db:"id"`
	UserID        string    `db:"user_id"`
	DailyCalories int       `db:"daily_calories"`
	ProteinG      int       `db:"protein_g"`
	CarbsG        int       `db:"carbs_g"`
	FatsG         int       `db:"fats_g"`
	BMR           int       `db:"bmr"`
	WorkoutDay    bool      `db:"workout_day"`
	CreatedAt     time.Time `db:"created_at"`
	ValidUntil    time.Time `db:"valid_until"`
}

// Expired reports whether the target can no longer be reused.
func (t NutritionTarget) Expired(now time.Time) bool {
	return !now.Before(t.ValidUntil)
}
