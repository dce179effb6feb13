package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/storage"
	"github.com/julianstephens/habitlit/internal/utils"
)

const trashColumns = "id, habit_id, name, description, category, frequency, created_at, days, deleted_at"

func encodeDays(days []time.Time) (string, error) {
	raw := make([]string, 0, len(days))
	for _, d := range days {
		raw = append(raw, utils.FormatDate(d))
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeDays(s string) ([]time.Time, error) {
	var raw []string
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, err
	}
	days := make([]time.Time, 0, len(raw))
	for _, r := range raw {
		d, err := utils.ParseDate(r)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, nil
}

func insertTrash(tx *sql.Tx, habit models.Habit, days []time.Time, at time.Time) (string, error) {
	encoded, err := encodeDays(days)
	if err != nil {
		return "", fmt.Errorf("failed to encode completion days: %w", err)
	}

	id := uuid.New().String()
	_, err = tx.Exec(`
		INSERT INTO deleted_habits (`+trashColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, habit.ID, habit.Name, habit.Description, habit.Category, string(habit.Frequency),
		utils.FormatDate(habit.CreatedAt), encoded, at.Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("failed to archive habit %d: %w", habit.ID, err)
	}
	return id, nil
}

func scanTrash(row scanner) (models.DeletedHabit, error) {
	var d models.DeletedHabit
	var frequency, createdAt, days, deletedAt string

	err := row.Scan(&d.ID, &d.Habit.ID, &d.Habit.Name, &d.Habit.Description, &d.Habit.Category,
		&frequency, &createdAt, &days, &deletedAt)
	if err != nil {
		return models.DeletedHabit{}, err
	}
	d.Habit.Frequency = models.Frequency(frequency)
	d.Habit.Active = true

	if d.Habit.CreatedAt, err = utils.ParseDate(createdAt); err != nil {
		return models.DeletedHabit{}, fmt.Errorf("failed to parse created_at for trash item %s: %w", d.ID, err)
	}
	if d.Days, err = decodeDays(days); err != nil {
		return models.DeletedHabit{}, fmt.Errorf("failed to decode days for trash item %s: %w", d.ID, err)
	}
	if d.DeletedAt, err = time.Parse(time.RFC3339, deletedAt); err != nil {
		return models.DeletedHabit{}, fmt.Errorf("failed to parse deleted_at for trash item %s: %w", d.ID, err)
	}
	return d, nil
}

func (s *Store) GetTrash() ([]models.DeletedHabit, error) {
	rows, err := s.db.Query("SELECT " + trashColumns + " FROM deleted_habits ORDER BY deleted_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.DeletedHabit
	for rows.Next() {
		d, err := scanTrash(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func (s *Store) GetTrashItem(id string) (models.DeletedHabit, error) {
	d, err := scanTrash(s.db.QueryRow("SELECT "+trashColumns+" FROM deleted_habits WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DeletedHabit{}, fmt.Errorf("trash item %s: %w", id, storage.ErrNotFound)
		}
		return models.DeletedHabit{}, err
	}
	return d, nil
}

func (s *Store) RestoreFromTrash(id string) (models.Habit, error) {
	item, err := s.GetTrashItem(id)
	if err != nil {
		return models.Habit{}, err
	}
	habit := item.Habit

	tx, err := s.db.Begin()
	if err != nil {
		return models.Habit{}, err
	}
	defer tx.Rollback()

	var taken int
	if err := tx.QueryRow("SELECT count(*) FROM habits WHERE name = ?", habit.Name).Scan(&taken); err != nil {
		return models.Habit{}, err
	}
	if taken > 0 {
		return models.Habit{}, fmt.Errorf("a habit named %q already exists", habit.Name)
	}

	if err := tx.QueryRow("SELECT count(*) FROM habits WHERE id = ?", habit.ID).Scan(&taken); err != nil {
		return models.Habit{}, err
	}

	created := utils.FormatDate(habit.CreatedAt)
	if taken == 0 {
		_, err = tx.Exec(`
			INSERT INTO habits (id, name, description, category, frequency, created_at, is_active)
			VALUES (?, ?, ?, ?, ?, ?, 1)`,
			habit.ID, habit.Name, habit.Description, habit.Category, string(habit.Frequency), created)
	} else {
		var result sql.Result
		result, err = tx.Exec(`
			INSERT INTO habits (name, description, category, frequency, created_at, is_active)
			VALUES (?, ?, ?, ?, ?, 1)`,
			habit.Name, habit.Description, habit.Category, string(habit.Frequency), created)
		if err == nil {
			habit.ID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to recreate habit %q: %w", habit.Name, err)
	}

	now := time.Now().Format(time.RFC3339)
	for _, d := range item.Days {
		if _, err := tx.Exec(`
			INSERT OR IGNORE INTO habit_logs (habit_id, completed_date, note, created_at)
			VALUES (?, ?, '', ?)`, habit.ID, utils.FormatDate(d), now); err != nil {
			return models.Habit{}, fmt.Errorf("failed to restore completion %s: %w", utils.FormatDate(d), err)
		}
	}

	if _, err := tx.Exec("DELETE FROM deleted_habits WHERE id = ?", id); err != nil {
		return models.Habit{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

func (s *Store) DeleteFromTrash(id string) error {
	result, err := s.db.Exec("DELETE FROM deleted_habits WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(result, "trash item", id)
}

func (s *Store) EmptyTrash() (int, error) {
	result, err := s.db.Exec("DELETE FROM deleted_habits")
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	return int(n), err
}
