package store

import (
	"database/sql"
	"fmt"
	"time"
)

// dayFormat is the day-granularity key used for body metrics rows.
const dayFormat = "2006-01-02"

// UpsertBodyMetrics inserts or replaces the body metrics row for the
// record's (user, day). An existing row is only replaced when the new
// reading is at least as complete, so a sparse late reading never
// clobbers a full one.
func (s *Store) UpsertBodyMetrics(m *BodyMetrics) (updated bool, err error) {
	existing, err := s.GetBodyMetrics(m.UserID, m.Day)
	if err != nil && err != ErrMetricsNotFound {
		return false, err
	}
	if existing != nil && existing.Completeness() > m.Completeness() {
		return false, nil
	}

	_, err = s.db.Exec(`
		INSERT INTO body_metrics (
			user_id, day, weight_kg, body_fat_pct, skeletal_muscle_kg,
			bmi, bmr, height_cm, lean_body_mass_kg, waist_cm
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, day) DO UPDATE SET
			weight_kg = excluded.weight_kg,
			body_fat_pct = excluded.body_fat_pct,
			skeletal_muscle_kg = excluded.skeletal_muscle_kg,
			bmi = excluded.bmi,
			bmr = excluded.bmr,
			height_cm = excluded.height_cm,
			lean_body_mass_kg = excluded.lean_body_mass_kg,
			waist_cm = excluded.waist_cm,
			updated_at = CURRENT_TIMESTAMP
	`,
		m.UserID, m.Day.Format(dayFormat), m.WeightKg, m.BodyFatPct, m.SkeletalMuscleKg,
		m.BMI, m.BMR, m.HeightCm, m.LeanBodyMassKg, m.WaistCm,
	)
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetBodyMetrics retrieves the body metrics for a user on a given day.
func (s *Store) GetBodyMetrics(userID string, day time.Time) (*BodyMetrics, error) {
	row := s.db.QueryRow(`
		SELECT user_id, day, weight_kg, body_fat_pct, skeletal_muscle_kg,
			bmi, bmr, height_cm, lean_body_mass_kg, waist_cm
		FROM body_metrics
		WHERE user_id = ? AND day = ?
	`, userID, day.Format(dayFormat))

	return scanBodyMetrics(row)
}

// GetLatestBodyMetrics retrieves the most recent body metrics for a user.
func (s *Store) GetLatestBodyMetrics(userID string) (*BodyMetrics, error) {
	row := s.db.QueryRow(`
		SELECT user_id, day, weight_kg, body_fat_pct, skeletal_muscle_kg,
			bmi, bmr, height_cm, lean_body_mass_kg, waist_cm
		FROM body_metrics
		WHERE user_id = ?
		ORDER BY day DESC
		LIMIT 1
	`, userID)

	return scanBodyMetrics(row)
}

// GetBodyMetricsRange retrieves body metrics within [from, to], ordered
// by day ascending.
func (s *Store) GetBodyMetricsRange(userID string, from, to time.Time) ([]BodyMetrics, error) {
	rows, err := s.db.Query(`
		SELECT user_id, day, weight_kg, body_fat_pct, skeletal_muscle_kg,
			bmi, bmr, height_cm, lean_body_mass_kg, waist_cm
		FROM body_metrics
		WHERE user_id = ? AND day >= ? AND day <= ?
		ORDER BY day ASC
	`, userID, from.Format(dayFormat), to.Format(dayFormat))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var metrics []BodyMetrics
	for rows.Next() {
		var m BodyMetrics
		var day string
		err := rows.Scan(
			&m.UserID, &day, &m.WeightKg, &m.BodyFatPct, &m.SkeletalMuscleKg,
			&m.BMI, &m.BMR, &m.HeightCm, &m.LeanBodyMassKg, &m.WaistCm,
		)
		if err != nil {
			return nil, err
		}
		m.Day, err = time.Parse(dayFormat, day)
		if err != nil {
			return nil, fmt.Errorf("parsing day %q: %w", day, err)
		}
		metrics = append(metrics, m)
	}

	return metrics, rows.Err()
}

// AverageWeight returns the mean weight over the trailing window ending
// at 'until'. Returns 0 when no rows exist in the window.
func (s *Store) AverageWeight(userID string, until time.Time, windowDays int) (float64, error) {
	from := until.AddDate(0, 0, -windowDays)
	row := s.db.QueryRow(`
		SELECT COALESCE(AVG(weight_kg), 0)
		FROM body_metrics
		WHERE user_id = ? AND day >= ? AND day <= ? AND weight_kg > 0
	`, userID, from.Format(dayFormat), until.Format(dayFormat))

	var avg float64
	err := row.Scan(&avg)
	return avg, err
}

// CountBodyMetrics returns the number of stored body metric days for a user.
func (s *Store) CountBodyMetrics(userID string) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM body_metrics WHERE user_id = ?`, userID).Scan(&count)
	return count, err
}

func scanBodyMetrics(row *sql.Row) (*BodyMetrics, error) {
	var m BodyMetrics
	var day string
	err := row.Scan(
		&m.UserID, &day, &m.WeightKg, &m.BodyFatPct, &m.SkeletalMuscleKg,
		&m.BMI, &m.BMR, &m.HeightCm, &m.LeanBodyMassKg, &m.WaistCm,
	)
	if err == sql.ErrNoRows {
		return nil, ErrMetricsNotFound
	}
	if err != nil {
		return nil, err
	}
	m.Day, err = time.Parse(dayFormat, day)
	if err != nil {
		return nil, fmt.Errorf("parsing day %q: %w", day, err)
	}
	return &m, nil
}
