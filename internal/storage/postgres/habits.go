package postgres

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

func notFound(what string, key interface{}, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %v: %w", what, key, storage.ErrNotFound)
	}
	return err
}

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

	var id int64
	err := s.db.QueryRow(`
		INSERT INTO habits (name, description, category, frequency, created_at, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING id`,
		habit.Name, habit.Description, habit.Category, string(habit.Frequency), utils.FormatDate(habit.CreatedAt)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to add habit %q: %w", habit.Name, err)
	}
	return id, nil
}

func (s *Store) GetHabit(id int64) (models.Habit, error) {
	h, err := scanHabit(s.db.QueryRow("SELECT "+habitColumns+" FROM habits WHERE id = $1", id))
	if err != nil {
		return models.Habit{}, notFound("habit", id, err)
	}
	return h, nil
}

func (s *Store) HabitExists(id int64) (bool, error) {
	var exists bool
	if err := s.db.QueryRow("SELECT EXISTS (SELECT 1 FROM habits WHERE id = $1)", id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (s *Store) GetHabitByName(name string) (models.Habit, error) {
	h, err := scanHabit(s.db.QueryRow("SELECT "+habitColumns+" FROM habits WHERE name = $1", name))
	if err != nil {
		return models.Habit{}, notFound("habit", fmt.Sprintf("%q", name), err)
	}
	return h, nil
}

func (s *Store) GetAllHabits(includeInactive bool) ([]models.Habit, error) {
	query := "SELECT " + habitColumns + " FROM habits"
	if !includeInactive {
		query += " WHERE is_active"
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
		UPDATE habits SET name = $1, description = $2, category = $3, frequency = $4, is_active = $5
		WHERE id = $6`,
		habit.Name, habit.Description, habit.Category, string(habit.Frequency), habit.Active, habit.ID)
	if err != nil {
		return err
	}
	return requireRow(result, "habit", habit.ID)
}

func (s *Store) DeactivateHabit(id int64) error {
	result, err := s.db.Exec("UPDATE habits SET is_active = FALSE WHERE id = $1 AND is_active", id)
	if err != nil {
		return err
	}
	return requireRow(result, "active habit", id)
}

func (s *Store) ReactivateHabit(id int64) error {
	result, err := s.db.Exec("UPDATE habits SET is_active = TRUE WHERE id = $1 AND NOT is_active", id)
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

	// habit_logs and goals cascade
	if _, err := tx.Exec("DELETE FROM habits WHERE id = $1", id); err != nil {
		return "", fmt.Errorf("failed to delete habit %d: %w", id, err)
	}

	return trashID, tx.Commit()
}
