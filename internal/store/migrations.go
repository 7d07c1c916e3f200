package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Authentication (singleton row)
		`CREATE TABLE IF NOT EXISTS auth (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			user_id TEXT NOT NULL,
			access_token TEXT NOT NULL,
			refresh_token TEXT NOT NULL,
			expires_at INTEGER NOT NULL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		// Body composition, one authoritative row per (user, calendar day)
		`CREATE TABLE IF NOT EXISTS body_metrics (
			user_id TEXT NOT NULL,
			day TEXT NOT NULL,
			weight_kg REAL NOT NULL,
			body_fat_pct REAL NOT NULL DEFAULT 0,
			skeletal_muscle_kg REAL NOT NULL DEFAULT 0,
			bmi REAL NOT NULL DEFAULT 0,
			bmr INTEGER NOT NULL DEFAULT 0,
			height_cm REAL NOT NULL DEFAULT 0,
			lean_body_mass_kg REAL,
			waist_cm REAL,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, day)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_body_metrics_day ON body_metrics(day)`,

		// Nutrition targets (append-only; latest valid row is reused)
		`CREATE TABLE IF NOT EXISTS nutrition_targets (
			id INTEGER PRIMARY KEY,
			user_id TEXT NOT NULL,
			daily_calories INTEGER NOT NULL,
			protein_g INTEGER NOT NULL,
			carbs_g INTEGER NOT NULL,
			fats_g INTEGER NOT NULL,
			bmr INTEGER NOT NULL,
			workout_day INTEGER NOT NULL,
			created_at TEXT NOT NULL,
			valid_until TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_nutrition_targets_user ON nutrition_targets(user_id, created_at)`,

		// Preferences (per-user key-value store, also used for sync bookkeeping)
		`CREATE TABLE IF NOT EXISTS preferences (
			user_id TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, key)
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
