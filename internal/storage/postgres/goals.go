package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/habitlit/internal/models"
)

const goalColumns = "id, habit_id, goal_type, target_value, current_value, created_at, completed_at"

func scanGoal(row scanner) (models.Goal, error) {
	var g models.Goal
	var goalType, createdAt string
	var completedAt sql.NullString

	if err := row.Scan(&g.ID, &g.HabitID, &goalType, &g.Target, &g.Current, &createdAt, &completedAt); err != nil {
		return models.Goal{}, err
	}
	g.Type = models.GoalType(goalType)

	var err error
	if g.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.Goal{}, fmt.Errorf("failed to parse created_at for goal %s: %w", g.ID, err)
	}
	if completedAt.Valid {
		t, err := time.Parse(time.RFC3339, completedAt.String)
		if err != nil {
			return models.Goal{}, fmt.Errorf("failed to parse completed_at for goal %s: %w", g.ID, err)
		}
		g.CompletedAt = &t
	}
	return g, nil
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(time.RFC3339), Valid: true}
}

func (s *Store) AddGoal(goal models.Goal) error {
	_, err := s.db.Exec(`
		INSERT INTO goals (id, habit_id, goal_type, target_value, current_value, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		goal.ID, goal.HabitID, string(goal.Type), goal.Target, goal.Current,
		goal.CreatedAt.Format(time.RFC3339), nullTime(goal.CompletedAt))
	if err != nil {
		return fmt.Errorf("failed to add goal: %w", err)
	}
	return nil
}

func (s *Store) GetGoal(id string) (models.Goal, error) {
	g, err := scanGoal(s.db.QueryRow("SELECT "+goalColumns+" FROM goals WHERE id = $1", id))
	if err != nil {
		return models.Goal{}, notFound("goal", id, err)
	}
	return g, nil
}

func (s *Store) GetGoals(habitID int64) ([]models.Goal, error) {
	query := "SELECT " + goalColumns + " FROM goals"
	var args []interface{}
	if habitID != 0 {
		query += " WHERE habit_id = $1"
		args = append(args, habitID)
	}
	query += " ORDER BY created_at, id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (s *Store) UpdateGoal(goal models.Goal) error {
	result, err := s.db.Exec(`
		UPDATE goals SET goal_type = $1, target_value = $2, current_value = $3, completed_at = $4
		WHERE id = $5`,
		string(goal.Type), goal.Target, goal.Current, nullTime(goal.CompletedAt), goal.ID)
	if err != nil {
		return err
	}
	return requireRow(result, "goal", goal.ID)
}

func (s *Store) DeleteGoal(id string) error {
	result, err := s.db.Exec("DELETE FROM goals WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRow(result, "goal", id)
}
