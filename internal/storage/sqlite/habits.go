package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/storage"
	"github.com/julianstephens/habitlit/internal/utils"
)

const habitColumns = "id, name, description, category, frequency, created_at, is_active"

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanHabit reads one habits row and fills defaults for legacy columns.
func scanHabit(row scanner) (models.Habit, error) {
	var h models.Habit
	var category, frequency, createdAt string

	if err := row.Scan(&h.ID, &h.Name, &h.Description, &category, &frequency, &createdAt, &h.Active); err != nil {
		return models.Habit{}, err
	}

	created, err := utils.ParseDate(createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at for habit %d: %w", h.ID, err)
	}
	h.CreatedAt = created

	h.Category = category
	if h.Category == "" {
		h.Category = constants.DefaultCategory
	}
	h.Frequency = models.Frequency(frequency)
	if h.Frequency == "" {
		h.Frequency = models.FrequencyDaily
	}
	return h, nil
}

func habitNotFound(key interface{}, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("habit %v: %w", key, storage.ErrNotFound)
	}
	return err
}

func (s *Store) AddHabit(habit models.Habit) (int64, error) {
	if habit.CreatedAt.IsZero() {
		habit.CreatedAt = utils.DateOf(time.Now())
	}
	if habit.Category == "" {
		habit.Category = constants.DefaultCategory
	}
	if habit.Frequency == "" {
		habit.Frequency = models.FrequencyDaily
	}

	result, err := s.db.Exec(`
		INSERT INTO habits (name, description, category, frequency, created_at, is_active)
		VALUES (?, ?, ?, ?, ?, 1)`,
		habit.Name, habit.Description, habit.Category, string(habit.Frequency), utils.FormatDate(habit.CreatedAt))
	if err != nil {
		return 0, fmt.Errorf("failed to add habit %q: %w", habit.Name, err)
	}
	return result.LastInsertId()
}

func (s *Store) GetHabit(id int64) (models.Habit, error) {
	row := s.db.QueryRow("SELECT "+habitColumns+" FROM habits WHERE id = ?", id)
	h, err := scanHabit(row)
	if err != nil {
		return models.Habit{}, habitNotFound(id, err)
	}
	return h, nil
}

func (s *Store) HabitExists(id int64) (bool, error) {
	var n int
	if err := s.db.QueryRow("SELECT count(*) FROM habits WHERE id = ?", id).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) GetHabitByName(name string) (models.Habit, error) {
	row := s.db.QueryRow("SELECT "+habitColumns+" FROM habits WHERE name = ?", name)
	h, err := scanHabit(row)
	if err != nil {
		return models.Habit{}, habitNotFound(fmt.Sprintf("%q", name), err)
	}
	return h, nil
}

func (s *Store) GetAllHabits(includeInactive bool) ([]models.Habit, error) {
	query := "SELECT " + habitColumns + " FROM habits"
	if !includeInactive {
		query += " WHERE is_active = 1"
	}
	query += " ORDER BY created_at, id"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	if habit.Category == "" {
		habit.Category = constants.DefaultCategory
	}
	if habit.Frequency == "" {
		habit.Frequency = models.FrequencyDaily
	}

	result, err := s.db.Exec(`
		UPDATE habits SET name = ?, description = ?, category = ?, frequency = ?, is_active = ?
		WHERE id = ?`,
		habit.Name, habit.Description, habit.Category, string(habit.Frequency), habit.Active, habit.ID)
	if err != nil {
		return err
	}
	return requireRow(result, "habit", habit.ID)
}

func (s *Store) DeactivateHabit(id int64) error {
	result, err := s.db.Exec("UPDATE habits SET is_active = 0 WHERE id = ? AND is_active = 1", id)
	if err != nil {
		return err
	}
	return requireRow(result, "active habit", id)
}

func (s *Store) ReactivateHabit(id int64) error {
	result, err := s.db.Exec("UPDATE habits SET is_active = 1 WHERE id = ? AND is_active = 0", id)
	if err != nil {
		return err
	}
	return requireRow(result, "inactive habit", id)
}

func (s *Store) PurgeHabit(id int64, archive bool) (string, error) {
	habit, err := s.GetHabit(id)
	if err != nil {
		return "", err
	}

	var days []time.Time
	if archive {
		if days, err = s.GetCompletionDays(id); err != nil {
			return "", err
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	trashID := ""
	if archive {
		if trashID, err = insertTrash(tx, habit, days, time.Now()); err != nil {
			return "", err
		}
	}

	if _, err := tx.Exec("DELETE FROM habit_logs WHERE habit_id = ?", id); err != nil {
		return "", fmt.Errorf("failed to delete completions for habit %d: %w", id, err)
	}
	if _, err := tx.Exec("DELETE FROM goals WHERE habit_id = ?", id); err != nil {
		return "", fmt.Errorf("failed to delete goals for habit %d: %w", id, err)
	}
	if _, err := tx.Exec("DELETE FROM habits WHERE id = ?", id); err != nil {
		return "", fmt.Errorf("failed to delete habit %d: %w", id, err)
	}

	return trashID, tx.Commit()
}

// requireRow turns a zero-row update into storage.ErrNotFound.
func requireRow(result sql.Result, what string, key interface{}) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %v: %w", what, key, storage.ErrNotFound)
	}
	return nil
}
