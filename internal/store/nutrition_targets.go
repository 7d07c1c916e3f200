package store

import (
	"database/sql"
	"fmt"
	"time"
)

// InsertNutritionTarget stores a freshly computed target. Targets are
// append-only; supersession happens by inserting a newer row.
func (s *Store) InsertNutritionTarget(t *NutritionTarget) error {
	result, err := s.db.Exec(`
		INSERT INTO nutrition_targets (
			user_id, daily_calories, protein_g, carbs_g, fats_g,
			bmr, workout_day, created_at, valid_until
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		t.UserID, t.DailyCalories, t.ProteinG, t.CarbsG, t.FatsG,
		t.BMR, boolToInt64(t.WorkoutDay),
		t.CreatedAt.Format(time.RFC3339), t.ValidUntil.Format(time.RFC3339),
	)
	if err != nil {
		return err
	}
	t.ID, err = result.LastInsertId()
	return err
}

// GetLatestNutritionTarget retrieves the newest target for a user with
// the given workout-day flag.
func (s *Store) GetLatestNutritionTarget(userID string, workoutDay bool) (*NutritionTarget, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, daily_calories, protein_g, carbs_g, fats_g,
			bmr, workout_day, created_at, valid_until
		FROM nutrition_targets
		WHERE user_id = ? AND workout_day = ?
		ORDER BY created_at DESC
		LIMIT 1
	`, userID, boolToInt64(workoutDay))

	var t NutritionTarget
	var workout int64
	var createdAt, validUntil string
	err := row.Scan(
		&t.ID, &t.UserID, &t.DailyCalories, &t.ProteinG, &t.CarbsG, &t.FatsG,
		&t.BMR, &workout, &createdAt, &validUntil,
	)
	if err == sql.ErrNoRows {
		return nil, ErrTargetNotFound
	}
	if err != nil {
		return nil, err
	}
	t.WorkoutDay = workout == 1
	t.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}
	t.ValidUntil, err = time.Parse(time.RFC3339, validUntil)
	if err != nil {
		return nil, fmt.Errorf("parsing valid_until %q: %w", validUntil, err)
	}
	return &t, nil
}

// DeleteExpiredNutritionTargets removes targets that became invalid
// before the cutoff.
func (s *Store) DeleteExpiredNutritionTargets(userID string, cutoff time.Time) error {
	_, err := s.db.Exec(`
		DELETE FROM nutrition_targets
		WHERE user_id = ? AND valid_until < ?
	`, userID, cutoff.Format(time.RFC3339))
	return err
}

func boolToInt64(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
