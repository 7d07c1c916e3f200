package store

import "database/sql"

// GetPreference retrieves a preference value for a user by key.
// Returns empty string if the key doesn't exist.
func (s *Store) GetPreference(userID, key string) (string, error) {
	var value string
	err := s.db.QueryRow(`
		SELECT value FROM preferences WHERE user_id = ? AND key = ?
	`, userID, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// SetPreference stores a preference value for a user.
func (s *Store) SetPreference(userID, key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO preferences (user_id, key, value)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id, key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, userID, key, value)
	return err
}
