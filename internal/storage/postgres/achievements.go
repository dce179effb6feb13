package postgres

import (
	"fmt"
	"time"
)

func (s *Store) GetUnlockedAchievements() (map[string]time.Time, error) {
	rows, err := s.db.Query("SELECT key, unlocked_at FROM achievements")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	unlocked := make(map[string]time.Time)
	for rows.Next() {
		var key, at string
		if err := rows.Scan(&key, &at); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return nil, fmt.Errorf("failed to parse unlocked_at for achievement %s: %w", key, err)
		}
		unlocked[key] = t
	}
	return unlocked, rows.Err()
}

func (s *Store) UnlockAchievement(key string, at time.Time) (bool, error) {
	result, err := s.db.Exec(`
		INSERT INTO achievements (key, unlocked_at) VALUES ($1, $2)
		ON CONFLICT (key) DO NOTHING`,
		key, at.Format(time.RFC3339))
	if err != nil {
		return false, fmt.Errorf("failed to unlock achievement %s: %w", key, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
