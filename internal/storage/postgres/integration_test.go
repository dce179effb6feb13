package postgres

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/storage"
	"github.com/julianstephens/habitlit/internal/utils"
)

// TestStore_Integration runs against a real database.
// Example: POSTGRES_TEST_URL="postgres://habitlit_user@localhost:5432/habitlit_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	store := New(connStr)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	name := "pg-habit-" + time.Now().Format("150405.000000")
	mustDay := func(s string) time.Time {
		d, err := utils.ParseDate(s)
		if err != nil {
			t.Fatalf("bad date %q: %v", s, err)
		}
		return d
	}

	t.Run("Settings", func(t *testing.T) {
		settings, err := store.GetSettings()
		if err != nil {
			t.Fatalf("Failed to get settings: %v", err)
		}
		settings.ReminderTime = "07:45"
		if err := store.SaveSettings(settings); err != nil {
			t.Fatalf("Failed to save settings: %v", err)
		}
		updated, err := store.GetSettings()
		if err != nil {
			t.Fatalf("Failed to get updated settings: %v", err)
		}
		if updated.ReminderTime != "07:45" {
			t.Errorf("Expected reminder time 07:45, got %s", updated.ReminderTime)
		}
	})

	var habitID int64
	t.Run("Habits and completions", func(t *testing.T) {
		var err error
		habitID, err = store.AddHabit(models.Habit{Name: name, CreatedAt: mustDay("2024-01-01")})
		if err != nil {
			t.Fatalf("Failed to add habit: %v", err)
		}

		for _, d := range []string{"2024-01-01", "2024-01-02"} {
			if _, err := store.MarkCompletion(habitID, mustDay(d), ""); err != nil {
				t.Fatalf("Failed to mark %s: %v", d, err)
			}
		}
		added, err := store.MarkCompletion(habitID, mustDay("2024-01-02"), "")
		if err != nil || added {
			t.Errorf("repeat mark = %v, %v; want false, nil", added, err)
		}

		days, err := store.GetCompletionDays(habitID)
		if err != nil || len(days) != 2 {
			t.Fatalf("GetCompletionDays() = %v, %v", days, err)
		}
	})

	t.Run("Purge and restore", func(t *testing.T) {
		trashID, err := store.PurgeHabit(habitID, true)
		if err != nil {
			t.Fatalf("Failed to purge habit: %v", err)
		}
		if _, err := store.GetHabit(habitID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("habit still present: %v", err)
		}

		restored, err := store.RestoreFromTrash(trashID)
		if err != nil {
			t.Fatalf("Failed to restore habit: %v", err)
		}
		days, err := store.GetCompletionDays(restored.ID)
		if err != nil || len(days) != 2 {
			t.Errorf("restored days = %v, %v", days, err)
		}

		if _, err := store.PurgeHabit(restored.ID, false); err != nil {
			t.Errorf("cleanup purge failed: %v", err)
		}
	})
}
