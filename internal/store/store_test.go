package store

import (
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s, err := NewTestStore(db)
	if err != nil {
		t.Fatalf("NewTestStore() error = %v", err)
	}
	return s
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAuth(t *testing.T) {
	s := setupTestStore(t)

	t.Run("GetAuth returns ErrNoAuth when empty", func(t *testing.T) {
		_, err := s.GetAuth()
		if err != ErrNoAuth {
			t.Errorf("GetAuth() error = %v, want ErrNoAuth", err)
		}
	})

	t.Run("SaveAuth then GetAuth round-trips", func(t *testing.T) {
		expires := time.Now().Add(6 * time.Hour).Truncate(time.Second)
		err := s.SaveAuth(&Auth{
			UserID:       "user-1",
			AccessToken:  "access",
			RefreshToken: "refresh",
			ExpiresAt:    expires,
		})
		if err != nil {
			t.Fatalf("SaveAuth() error = %v", err)
		}

		got, err := s.GetAuth()
		if err != nil {
			t.Fatalf("GetAuth() error = %v", err)
		}
		if got.UserID != "user-1" {
			t.Errorf("UserID = %q, want user-1", got.UserID)
		}
		if !got.ExpiresAt.Equal(expires) {
			t.Errorf("ExpiresAt = %v, want %v", got.ExpiresAt, expires)
		}
	})

	t.Run("UpdateTokens replaces tokens", func(t *testing.T) {
		expires := time.Now().Add(12 * time.Hour).Truncate(time.Second)
		if err := s.UpdateTokens("access2", "refresh2", expires); err != nil {
			t.Fatalf("UpdateTokens() error = %v", err)
		}

		got, err := s.GetAuth()
		if err != nil {
			t.Fatalf("GetAuth() error = %v", err)
		}
		if got.AccessToken != "access2" {
			t.Errorf("AccessToken = %q, want access2", got.AccessToken)
		}
	})
}

func TestBodyMetrics(t *testing.T) {
	s := setupTestStore(t)

	t.Run("UpsertBodyMetrics inserts new day", func(t *testing.T) {
		updated, err := s.UpsertBodyMetrics(&BodyMetrics{
			UserID:   "user-1",
			Day:      day("2026-08-01"),
			WeightKg: 80.5,
			BMR:      1650,
		})
		if err != nil {
			t.Fatalf("UpsertBodyMetrics() error = %v", err)
		}
		if !updated {
			t.Error("UpsertBodyMetrics() updated = false, want true")
		}

		got, err := s.GetBodyMetrics("user-1", day("2026-08-01"))
		if err != nil {
			t.Fatalf("GetBodyMetrics() error = %v", err)
		}
		if got.WeightKg != 80.5 {
			t.Errorf("WeightKg = %v, want 80.5", got.WeightKg)
		}
	})

	t.Run("more complete reading supersedes same day", func(t *testing.T) {
		updated, err := s.UpsertBodyMetrics(&BodyMetrics{
			UserID:           "user-1",
			Day:              day("2026-08-01"),
			WeightKg:         80.2,
			BodyFatPct:       18.5,
			SkeletalMuscleKg: 35.1,
			BMR:              1660,
		})
		if err != nil {
			t.Fatalf("UpsertBodyMetrics() error = %v", err)
		}
		if !updated {
			t.Error("more complete reading should replace existing row")
		}

		got, err := s.GetBodyMetrics("user-1", day("2026-08-01"))
		if err != nil {
			t.Fatalf("GetBodyMetrics() error = %v", err)
		}
		if got.BodyFatPct != 18.5 {
			t.Errorf("BodyFatPct = %v, want 18.5", got.BodyFatPct)
		}
	})

	t.Run("less complete reading does not clobber", func(t *testing.T) {
		updated, err := s.UpsertBodyMetrics(&BodyMetrics{
			UserID:   "user-1",
			Day:      day("2026-08-01"),
			WeightKg: 81.0, // weight only, completeness 1 vs existing 4
		})
		if err != nil {
			t.Fatalf("UpsertBodyMetrics() error = %v", err)
		}
		if updated {
			t.Error("sparse reading should not replace a complete one")
		}

		got, err := s.GetBodyMetrics("user-1", day("2026-08-01"))
		if err != nil {
			t.Fatalf("GetBodyMetrics() error = %v", err)
		}
		if got.WeightKg != 80.2 {
			t.Errorf("WeightKg = %v, want 80.2 from the complete reading", got.WeightKg)
		}
	})

	t.Run("GetBodyMetricsRange orders by day", func(t *testing.T) {
		for _, d := range []string{"2026-08-03", "2026-08-02"} {
			if _, err := s.UpsertBodyMetrics(&BodyMetrics{
				UserID:   "user-1",
				Day:      day(d),
				WeightKg: 80,
			}); err != nil {
				t.Fatalf("UpsertBodyMetrics(%s) error = %v", d, err)
			}
		}

		got, err := s.GetBodyMetricsRange("user-1", day("2026-08-01"), day("2026-08-03"))
		if err != nil {
			t.Fatalf("GetBodyMetricsRange() error = %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("GetBodyMetricsRange() returned %d rows, want 3", len(got))
		}
		if !got[0].Day.Equal(day("2026-08-01")) || !got[2].Day.Equal(day("2026-08-03")) {
			t.Errorf("range not ordered by day: first %v, last %v", got[0].Day, got[2].Day)
		}
	})

	t.Run("AverageWeight over window", func(t *testing.T) {
		avg, err := s.AverageWeight("user-1", day("2026-08-03"), 30)
		if err != nil {
			t.Fatalf("AverageWeight() error = %v", err)
		}
		want := (80.2 + 80.0 + 80.0) / 3
		if diff := avg - want; diff > 0.001 || diff < -0.001 {
			t.Errorf("AverageWeight() = %v, want %v", avg, want)
		}
	})

	t.Run("GetLatestBodyMetrics returns newest day", func(t *testing.T) {
		got, err := s.GetLatestBodyMetrics("user-1")
		if err != nil {
			t.Fatalf("GetLatestBodyMetrics() error = %v", err)
		}
		if !got.Day.Equal(day("2026-08-03")) {
			t.Errorf("Day = %v, want 2026-08-03", got.Day)
		}
	})

	t.Run("unknown user returns ErrMetricsNotFound", func(t *testing.T) {
		_, err := s.GetLatestBodyMetrics("nobody")
		if err != ErrMetricsNotFound {
			t.Errorf("GetLatestBodyMetrics() error = %v, want ErrMetricsNotFound", err)
		}
	})
}

func TestNutritionTargets(t *testing.T) {
	s := setupTestStore(t)
	now := time.Now().Truncate(time.Second)

	t.Run("InsertNutritionTarget assigns ID", func(t *testing.T) {
		target := &NutritionTarget{
			UserID:        "user-1",
			DailyCalories: 2080,
			ProteinG:      168,
			CarbsG:        141,
			FatsG:         94,
			BMR:           1600,
			WorkoutDay:    false,
			CreatedAt:     now,
			ValidUntil:    now.Add(24 * time.Hour),
		}
		if err := s.InsertNutritionTarget(target); err != nil {
			t.Fatalf("InsertNutritionTarget() error = %v", err)
		}
		if target.ID == 0 {
			t.Error("InsertNutritionTarget() did not assign an ID")
		}
	})

	t.Run("GetLatestNutritionTarget filters by workout flag", func(t *testing.T) {
		workout := &NutritionTarget{
			UserID:        "user-1",
			DailyCalories: 2180,
			ProteinG:      168,
			CarbsG:        171,
			FatsG:         84,
			BMR:           1600,
			WorkoutDay:    true,
			CreatedAt:     now.Add(time.Minute),
			ValidUntil:    now.Add(24 * time.Hour),
		}
		if err := s.InsertNutritionTarget(workout); err != nil {
			t.Fatalf("InsertNutritionTarget() error = %v", err)
		}

		got, err := s.GetLatestNutritionTarget("user-1", false)
		if err != nil {
			t.Fatalf("GetLatestNutritionTarget() error = %v", err)
		}
		if got.DailyCalories != 2080 {
			t.Errorf("DailyCalories = %v, want 2080 (rest-day target)", got.DailyCalories)
		}

		got, err = s.GetLatestNutritionTarget("user-1", true)
		if err != nil {
			t.Fatalf("GetLatestNutritionTarget() error = %v", err)
		}
		if got.DailyCalories != 2180 {
			t.Errorf("DailyCalories = %v, want 2180 (workout-day target)", got.DailyCalories)
		}
	})

	t.Run("Expired respects valid_until", func(t *testing.T) {
		got, err := s.GetLatestNutritionTarget("user-1", false)
		if err != nil {
			t.Fatalf("GetLatestNutritionTarget() error = %v", err)
		}
		if got.Expired(now) {
			t.Error("target should still be valid at creation time")
		}
		if !got.Expired(now.Add(25 * time.Hour)) {
			t.Error("target should be expired after valid_until")
		}
	})

	t.Run("DeleteExpiredNutritionTargets removes stale rows", func(t *testing.T) {
		if err := s.DeleteExpiredNutritionTargets("user-1", now.Add(48*time.Hour)); err != nil {
			t.Fatalf("DeleteExpiredNutritionTargets() error = %v", err)
		}
		_, err := s.GetLatestNutritionTarget("user-1", false)
		if err != ErrTargetNotFound {
			t.Errorf("GetLatestNutritionTarget() error = %v, want ErrTargetNotFound", err)
		}
	})
}

func TestPreferences(t *testing.T) {
	s := setupTestStore(t)

	t.Run("missing key returns empty string", func(t *testing.T) {
		got, err := s.GetPreference("user-1", "last_sync")
		if err != nil {
			t.Fatalf("GetPreference() error = %v", err)
		}
		if got != "" {
			t.Errorf("GetPreference() = %q, want empty", got)
		}
	})

	t.Run("set then get", func(t *testing.T) {
		if err := s.SetPreference("user-1", "last_sync", "2026-08-30T10:00:00Z"); err != nil {
			t.Fatalf("SetPreference() error = %v", err)
		}
		got, err := s.GetPreference("user-1", "last_sync")
		if err != nil {
			t.Fatalf("GetPreference() error = %v", err)
		}
		if got != "2026-08-30T10:00:00Z" {
			t.Errorf("GetPreference() = %q, want 2026-08-30T10:00:00Z", got)
		}
	})

	t.Run("keys are scoped per user", func(t *testing.T) {
		got, err := s.GetPreference("user-2", "last_sync")
		if err != nil {
			t.Fatalf("GetPreference() error = %v", err)
		}
		if got != "" {
			t.Errorf("GetPreference() for other user = %q, want empty", got)
		}
	})
}
