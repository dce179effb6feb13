package habits

import (
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/julianstephens/habitlit/internal/cli"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/storage/sqlite"
	"github.com/julianstephens/habitlit/internal/utils"
)

var testNow = time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) (*cli.Context, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	settings := models.DefaultSettings()
	settings.Timezone = "UTC"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	ctx := &cli.Context{
		Store:  store,
		DBPath: dbPath,
		Clock:  func() time.Time { return testNow },
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return ctx, cleanup
}

func addHabit(t *testing.T, ctx *cli.Context, name string) models.Habit {
	t.Helper()
	cmd := &HabitAddCmd{Name: name, Category: "General", Frequency: "daily"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}
	habit, err := ctx.Store.GetHabitByName(name)
	if err != nil {
		t.Fatalf("failed to get habit: %v", err)
	}
	return habit
}

func TestHabitAddCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	habit := addHabit(t, ctx, "Read")
	if !habit.Active {
		t.Error("expected new habit to be active")
	}
	if got := utils.FormatDate(habit.CreatedAt); got != "2024-03-11" {
		t.Errorf("expected created date 2024-03-11, got %s", got)
	}

	dup := &HabitAddCmd{Name: "Read", Frequency: "daily"}
	if err := dup.Run(ctx); err == nil {
		t.Error("expected error for duplicate habit name")
	}

	empty := &HabitAddCmd{Name: "  ", Frequency: "daily"}
	if err := empty.Run(ctx); err == nil {
		t.Error("expected error for empty habit name")
	}
}

func TestHabitEditCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	habit := addHabit(t, ctx, "Read")
	addHabit(t, ctx, "Run")

	newName := "Read books"
	category := "Learning"
	weekly := "weekly"
	cmd := &HabitEditCmd{
		Habit:     strconv.FormatInt(habit.ID, 10),
		Name:      &newName,
		Category:  &category,
		Frequency: &weekly,
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("habit edit failed: %v", err)
	}

	got, err := ctx.Store.GetHabit(habit.ID)
	if err != nil {
		t.Fatalf("failed to get habit: %v", err)
	}
	if got.Name != newName || got.Category != category || got.Frequency != models.FrequencyWeekly {
		t.Errorf("unexpected habit after edit: %+v", got)
	}

	taken := "Run"
	clash := &HabitEditCmd{Habit: newName, Name: &taken}
	if err := clash.Run(ctx); err == nil {
		t.Error("expected error when renaming to an existing name")
	}
}

func TestHabitMarkCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	habit := addHabit(t, ctx, "Read")

	tests := []struct {
		name    string
		date    string
		wantErr bool
		wantDay string
	}{
		{name: "default today", date: "", wantDay: "2024-03-11"},
		{name: "yesterday", date: "yesterday", wantDay: "2024-03-10"},
		{name: "explicit date", date: "2024-03-01", wantDay: "2024-03-01"},
		{name: "future date", date: "2024-03-12", wantErr: true},
		{name: "bad date", date: "03/01/2024", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &HabitMarkCmd{Habit: "Read", Date: tt.date}
			err := cmd.Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("habit mark error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			day, _ := utils.ParseDate(tt.wantDay)
			ok, err := ctx.Store.HasCompletion(habit.ID, day)
			if err != nil {
				t.Fatalf("failed to check completion: %v", err)
			}
			if !ok {
				t.Errorf("expected completion on %s", tt.wantDay)
			}
		})
	}

	// Marking twice is not an error
	again := &HabitMarkCmd{Habit: "Read"}
	if err := again.Run(ctx); err != nil {
		t.Errorf("second mark failed: %v", err)
	}

	days, err := ctx.Store.GetCompletionDays(habit.ID)
	if err != nil {
		t.Fatalf("failed to get days: %v", err)
	}
	if len(days) != 3 {
		t.Errorf("expected 3 completion days, got %d", len(days))
	}
}

func TestHabitMarkCmd_UnlocksAndRefreshes(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	habit := addHabit(t, ctx, "Read")
	goal, err := ctx.Goals().Create(habit.ID, models.GoalStreak, 2, testNow)
	if err != nil {
		t.Fatalf("failed to create goal: %v", err)
	}

	for _, date := range []string{"yesterday", "today"} {
		cmd := &HabitMarkCmd{Habit: "Read", Date: date}
		if err := cmd.Run(ctx); err != nil {
			t.Fatalf("habit mark failed: %v", err)
		}
	}

	got, err := ctx.Store.GetGoal(goal.ID)
	if err != nil {
		t.Fatalf("failed to get goal: %v", err)
	}
	if !got.Completed() || got.Current != 2 {
		t.Errorf("expected goal completed with value 2, got %+v", got)
	}

	unlocked, err := ctx.Store.GetUnlockedAchievements()
	if err != nil {
		t.Fatalf("failed to get achievements: %v", err)
	}
	if _, ok := unlocked["goal_setter"]; !ok {
		t.Errorf("expected goal_setter to be unlocked, got %v", unlocked)
	}
}

func TestHabitMarkCmd_Inactive(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	addHabit(t, ctx, "Read")
	if err := (&HabitDeleteCmd{Habit: "Read"}).Run(ctx); err != nil {
		t.Fatalf("habit delete failed: %v", err)
	}

	cmd := &HabitMarkCmd{Habit: "Read"}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected error marking a deleted habit")
	}
}

func TestHabitUnmarkAndNoteCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	habit := addHabit(t, ctx, "Read")

	if err := (&HabitNoteCmd{Habit: "Read", Note: "chapter 3"}).Run(ctx); err == nil {
		t.Error("expected error setting a note on an unmarked day")
	}

	if err := (&HabitMarkCmd{Habit: "Read"}).Run(ctx); err != nil {
		t.Fatalf("habit mark failed: %v", err)
	}
	if err := (&HabitNoteCmd{Habit: "Read", Note: "chapter 3"}).Run(ctx); err != nil {
		t.Fatalf("habit note failed: %v", err)
	}

	today := utils.DateOf(testNow)
	completion, err := ctx.Store.GetCompletion(habit.ID, today)
	if err != nil {
		t.Fatalf("failed to get completion: %v", err)
	}
	if completion.Note != "chapter 3" {
		t.Errorf("expected note %q, got %q", "chapter 3", completion.Note)
	}

	if err := (&HabitUnmarkCmd{Habit: "Read"}).Run(ctx); err != nil {
		t.Fatalf("habit unmark failed: %v", err)
	}
	ok, err := ctx.Store.HasCompletion(habit.ID, today)
	if err != nil {
		t.Fatalf("failed to check completion: %v", err)
	}
	if ok {
		t.Error("expected completion to be removed")
	}

	// Unmarking an unmarked day is a no-op
	if err := (&HabitUnmarkCmd{Habit: "Read"}).Run(ctx); err != nil {
		t.Errorf("second unmark failed: %v", err)
	}
}

func TestHabitDeleteRestoreCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	habit := addHabit(t, ctx, "Read")

	if err := (&HabitRestoreCmd{Habit: "Read"}).Run(ctx); err == nil {
		t.Error("expected error restoring an active habit")
	}
	if err := (&HabitDeleteCmd{Habit: "Read"}).Run(ctx); err != nil {
		t.Fatalf("habit delete failed: %v", err)
	}

	active, err := ctx.Store.GetAllHabits(false)
	if err != nil {
		t.Fatalf("failed to list habits: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("expected no active habits, got %d", len(active))
	}

	if err := (&HabitRestoreCmd{Habit: "Read"}).Run(ctx); err != nil {
		t.Fatalf("habit restore failed: %v", err)
	}
	got, err := ctx.Store.GetHabit(habit.ID)
	if err != nil {
		t.Fatalf("failed to get habit: %v", err)
	}
	if !got.Active {
		t.Error("expected habit to be active after restore")
	}
}

func TestHabitPurgeCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	addHabit(t, ctx, "Read")
	addHabit(t, ctx, "Run")
	if err := (&HabitMarkCmd{Habit: "Read"}).Run(ctx); err != nil {
		t.Fatalf("habit mark failed: %v", err)
	}

	if err := (&HabitPurgeCmd{Habit: "Read"}).Run(ctx); err != nil {
		t.Fatalf("habit purge failed: %v", err)
	}
	if err := (&HabitPurgeCmd{Habit: "Run", NoArchive: true}).Run(ctx); err != nil {
		t.Fatalf("habit purge without archive failed: %v", err)
	}

	all, err := ctx.Store.GetAllHabits(true)
	if err != nil {
		t.Fatalf("failed to list habits: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected no habits after purge, got %d", len(all))
	}

	trash, err := ctx.Store.GetTrash()
	if err != nil {
		t.Fatalf("failed to get trash: %v", err)
	}
	if len(trash) != 1 || trash[0].Habit.Name != "Read" || len(trash[0].Days) != 1 {
		t.Errorf("unexpected trash contents: %+v", trash)
	}

	mgr, err := ctx.BackupManager()
	if err != nil {
		t.Fatalf("failed to get backup manager: %v", err)
	}
	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("failed to list backups: %v", err)
	}
	if len(backups) == 0 {
		t.Error("expected an automatic backup before purge")
	}
}

func TestHabitListTodayLogCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&HabitListCmd{}).Run(ctx); err != nil {
		t.Errorf("habit list on empty store failed: %v", err)
	}
	if err := (&HabitTodayCmd{}).Run(ctx); err != nil {
		t.Errorf("habit today on empty store failed: %v", err)
	}

	addHabit(t, ctx, "A habit with a rather long name")
	addHabit(t, ctx, "Run")
	if err := (&HabitMarkCmd{Habit: "Run", Note: "5k"}).Run(ctx); err != nil {
		t.Fatalf("habit mark failed: %v", err)
	}

	cmds := []interface{ Run(*cli.Context) error }{
		&HabitListCmd{},
		&HabitListCmd{All: true, Category: "general"},
		&HabitTodayCmd{},
		&HabitLogCmd{Days: 7},
		&HabitLogCmd{Days: 3, Habit: "Run"},
	}
	for _, cmd := range cmds {
		if err := cmd.Run(ctx); err != nil {
			t.Errorf("%T failed: %v", cmd, err)
		}
	}

	if err := (&HabitLogCmd{Days: 0}).Run(ctx); err == nil {
		t.Error("expected error for non-positive days")
	}
	if err := (&HabitLogCmd{Days: 7, Habit: "missing"}).Run(ctx); err == nil {
		t.Error("expected error for unknown habit")
	}
}

func TestPadName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "short", input: "Run", want: "Run   "},
		{name: "exact", input: "Runner", want: "Runner"},
		{name: "long", input: "Running fast", want: "Run..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := padName(tt.input, 6); got != tt.want {
				t.Errorf("padName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
