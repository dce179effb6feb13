package backups

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/habitlit/internal/cli"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/storage/postgres"
	"github.com/julianstephens/habitlit/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	ctx := &cli.Context{
		Store:  store,
		DBPath: dbPath,
	}

	cleanup := func() {
		if err := ctx.Store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return ctx, cleanup
}

func TestBackupCreateAndListCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Errorf("backup list with no backups failed: %v", err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Errorf("backup list failed: %v", err)
	}

	mgr, err := ctx.BackupManager()
	if err != nil {
		t.Fatalf("failed to get backup manager: %v", err)
	}
	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("failed to list backups: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("expected 1 backup, got %d", len(backups))
	}
}

func TestBackupRestoreCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if _, err := ctx.Store.AddHabit(models.Habit{Name: "Read", Active: true}); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}

	mgr, err := ctx.BackupManager()
	if err != nil {
		t.Fatalf("failed to get backup manager: %v", err)
	}
	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}

	if _, err := ctx.Store.AddHabit(models.Habit{Name: "Run", Active: true}); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}

	// Restore by file name, resolved inside the backup directory
	cmd := &BackupRestoreCmd{BackupFile: filepath.Base(backupPath), Yes: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("backup restore failed: %v", err)
	}

	if err := ctx.Store.Load(); err != nil {
		t.Fatalf("failed to reload store: %v", err)
	}
	habits, err := ctx.Store.GetAllHabits(true)
	if err != nil {
		t.Fatalf("failed to list habits: %v", err)
	}
	if len(habits) != 1 || habits[0].Name != "Read" {
		t.Errorf("expected only the backed up habit, got %+v", habits)
	}

	missing := &BackupRestoreCmd{BackupFile: "habitlit-19700101-000000.db", Yes: true}
	if err := missing.Run(ctx); err == nil {
		t.Error("expected error for missing backup file")
	}
}

func TestBackupCmds_Postgres(t *testing.T) {
	ctx := &cli.Context{Store: postgres.New("host=localhost dbname=habitlit")}

	cmds := []interface{ Run(*cli.Context) error }{
		&BackupCreateCmd{},
		&BackupListCmd{},
		&BackupRestoreCmd{BackupFile: "x.db", Yes: true},
	}
	for _, cmd := range cmds {
		if err := cmd.Run(ctx); err == nil {
			t.Errorf("%T: expected error without a SQLite database", cmd)
		}
	}
}
