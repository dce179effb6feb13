package postgres

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitlit/internal/models"
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

	if c.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
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
		INSERT INTO habit_logs (habit_id, completed_date, note, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (habit_id, completed_date) DO NOTHING`,
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
	result, err := s.db.Exec("DELETE FROM habit_logs WHERE habit_id = $1 AND completed_date = $2",
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
	row := s.db.QueryRow("SELECT "+completionColumns+" FROM habit_logs WHERE habit_id = $1 AND completed_date = $2",
		habitID, utils.FormatDate(day))
	c, err := scanCompletion(row)
	if err != nil {
		return models.Completion{}, notFound("completion of habit", fmt.Sprintf("%d on %s", habitID, utils.FormatDate(day)), err)
	}
	return c, nil
}

func (s *Store) GetCompletionsForHabit(habitID int64, start, end time.Time) ([]models.Completion, error) {
	return s.queryCompletions(`
		SELECT `+completionColumns+` FROM habit_logs
		WHERE habit_id = $1 AND completed_date >= $2 AND completed_date <= $3
		ORDER BY completed_date DESC`,
		habitID, utils.FormatDate(start), utils.FormatDate(end))
}

func (s *Store) GetCompletionsForDay(day time.Time) ([]models.Completion, error) {
	return s.queryCompletions(`
		SELECT `+completionColumns+` FROM habit_logs
		WHERE completed_date = $1 ORDER BY created_at`, utils.FormatDate(day))
}

func (s *Store) GetAllCompletions() ([]models.Completion, error) {
	return s.queryCompletions("SELECT " + completionColumns + " FROM habit_logs ORDER BY completed_date, habit_id")
}

func (s *Store) GetCompletionDays(habitID int64) ([]time.Time, error) {
	rows, err := s.db.Query(`
		SELECT DISTINCT completed_date FROM habit_logs
		WHERE habit_id = $1 ORDER BY completed_date DESC`, habitID)
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
	var exists bool
	err := s.db.QueryRow("SELECT EXISTS (SELECT 1 FROM habit_logs WHERE habit_id = $1 AND completed_date = $2)",
		habitID, utils.FormatDate(day)).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (s *Store) SetCompletionNote(habitID int64, day time.Time, note string) error {
	result, err := s.db.Exec("UPDATE habit_logs SET note = $1 WHERE habit_id = $2 AND completed_date = $3",
		note, habitID, utils.FormatDate(day))
	if err != nil {
		return err
	}
	return requireRow(result, "completion of habit", fmt.Sprintf("%d on %s", habitID, utils.FormatDate(day)))
}
