package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/storage"
	"github.com/julianstephens/habitlit/internal/utils"
)

const completionColumns = "id, habit_id, completed_date, note, created_at"

func scanCompletion(row scanner) (models.Completion, error) {
	var c models.Completion
	var day, createdAt string

	if err := row.Scan(&c.ID, &c.HabitID, &day, &c.Note, &createdAt); err != nil {
		return models.Completion{}, err
	}

	d, err := utils.ParseDate(day)
	if err != nil {
		return models.Completion{}, fmt.Errorf("failed to parse completed_date for completion %d: %w", c.ID, err)
	}
	c.Day = d

	c.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Completion{}, fmt.Errorf("failed to parse created_at for completion %d: %w", c.ID, err)
	}
	return c, nil
}

func (s *Store) queryCompletions(query string, args ...interface{}) ([]models.Completion, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Completion
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) MarkCompletion(habitID int64, day time.Time, note string) (bool, error) {
	result, err := s.db.Exec(`
		INSERT OR IGNORE INTO habit_logs (habit_id, completed_date, note, created_at)
		VALUES (?, ?, ?, ?)`,
		habitID, utils.FormatDate(day), note, time.Now().Format(time.RFC3339))
	if err != nil {
		return false, fmt.Errorf("failed to mark habit %d on %s: %w", habitID, utils.FormatDate(day), err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) UnmarkCompletion(habitID int64, day time.Time) (bool, error) {
	result, err := s.db.Exec("DELETE FROM habit_logs WHERE habit_id = ? AND completed_date = ?",
		habitID, utils.FormatDate(day))
	if err != nil {
		return false, fmt.Errorf("failed to unmark habit %d on %s: %w", habitID, utils.FormatDate(day), err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) GetCompletion(habitID int64, day time.Time) (models.Completion, error) {
	row := s.db.QueryRow("SELECT "+completionColumns+" FROM habit_logs WHERE habit_id = ? AND completed_date = ?",
		habitID, utils.FormatDate(day))
	c, err := scanCompletion(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Completion{}, fmt.Errorf("completion of habit %d on %s: %w", habitID, utils.FormatDate(day), storage.ErrNotFound)
		}
		return models.Completion{}, err
	}
	return c, nil
}

func (s *Store) GetCompletionsForHabit(habitID int64, start, end time.Time) ([]models.Completion, error) {
	return s.queryCompletions(`
		SELECT `+completionColumns+` FROM habit_logs
		WHERE habit_id = ? AND completed_date >= ? AND completed_date <= ?
		ORDER BY completed_date DESC`,
		habitID, utils.FormatDate(start), utils.FormatDate(end))
}

func (s *Store) GetCompletionsForDay(day time.Time) ([]models.Completion, error) {
	return s.queryCompletions(`
		SELECT `+completionColumns+` FROM habit_logs
		WHERE completed_date = ? ORDER BY created_at`, utils.FormatDate(day))
}

func (s *Store) GetAllCompletions() ([]models.Completion, error) {
	return s.queryCompletions("SELECT " + completionColumns + " FROM habit_logs ORDER BY completed_date, habit_id")
}

// GetCompletionDays returns the distinct completion days of a habit,
// newest first. An unknown habit has no days.
func (s *Store) GetCompletionDays(habitID int64) ([]time.Time, error) {
	rows, err := s.db.Query(`
		SELECT DISTINCT completed_date FROM habit_logs
		WHERE habit_id = ? ORDER BY completed_date DESC`, habitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []time.Time
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		d, err := utils.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("habit %d has a malformed completion date: %w", habitID, err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

func (s *Store) HasCompletion(habitID int64, day time.Time) (bool, error) {
	var n int
	err := s.db.QueryRow("SELECT count(*) FROM habit_logs WHERE habit_id = ? AND completed_date = ?",
		habitID, utils.FormatDate(day)).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) SetCompletionNote(habitID int64, day time.Time, note string) error {
	result, err := s.db.Exec("UPDATE habit_logs SET note = ? WHERE habit_id = ? AND completed_date = ?",
		note, habitID, utils.FormatDate(day))
	if err != nil {
		return err
	}
	return requireRow(result, "completion of habit", fmt.Sprintf("%d on %s", habitID, utils.FormatDate(day)))
}
