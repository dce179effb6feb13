package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitlit/internal/cli"
	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/keyring"
	"github.com/julianstephens/habitlit/internal/logger"
	"github.com/julianstephens/habitlit/internal/utils"
)

type DoctorCmd struct{}

type check struct {
	name string
	run  func(*cli.Context) error
	// warnOnly checks report a warning instead of failing the run
	warnOnly bool
	// needsDB checks are skipped when the database is unreachable
	needsDB bool
}

var checks = []check{
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Migrations complete", run: checkMigrationsComplete, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "Settings", run: checkSettings, needsDB: true},
	{name: "Clock/timezone", run: checkClockTimezone, needsDB: true},
	{name: "Completion integrity", run: checkCompletionIntegrity, needsDB: true},
	{name: "Future completions", run: checkFutureCompletions, warnOnly: true, needsDB: true},
	{name: "Goal integrity", run: checkGoalIntegrity, needsDB: true},
	{name: "OS keyring", run: checkKeyring, warnOnly: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	if path := logger.Path(); path != "" {
		fmt.Printf("\nLog file: %s\n", path)
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	runner, err := runnerFor(ctx)
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func checkMigrationsComplete(ctx *cli.Context) error {
	runner, err := runnerFor(ctx)
	if err != nil {
		return err
	}
	pending, err := runner.Pending()
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}
	if pending > 0 {
		return fmt.Errorf("%d migration(s) pending - run '%s migrate'", pending, constants.AppName)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("invalid timezone %q", settings.Timezone)
	}
	if !utils.ValidateTimeFormat(settings.ReminderTime) {
		return fmt.Errorf("invalid reminder time %q", settings.ReminderTime)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if _, err := utils.TodayInTimezone(settings.Timezone); err != nil {
		return fmt.Errorf("cannot compute today in %q: %w", settings.Timezone, err)
	}
	return nil
}

func checkCompletionIntegrity(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits(true)
	if err != nil {
		return fmt.Errorf("failed to get habits: %w", err)
	}
	known := make(map[int64]bool, len(habits))
	for _, h := range habits {
		known[h.ID] = true
	}

	completions, err := ctx.Store.GetAllCompletions()
	if err != nil {
		return fmt.Errorf("failed to get completions: %w", err)
	}
	seen := make(map[string]bool, len(completions))
	orphaned, duplicates := 0, 0
	for _, c := range completions {
		if !known[c.HabitID] {
			orphaned++
		}
		key := fmt.Sprintf("%d/%s", c.HabitID, utils.FormatDate(c.Day))
		if seen[key] {
			duplicates++
		}
		seen[key] = true
	}
	if orphaned > 0 {
		return fmt.Errorf("found %d completion(s) referencing non-existent habits", orphaned)
	}
	if duplicates > 0 {
		return fmt.Errorf("found %d duplicate completion(s)", duplicates)
	}
	return nil
}

func checkFutureCompletions(ctx *cli.Context) error {
	today, err := ctx.Today()
	if err != nil {
		return err
	}
	completions, err := ctx.Store.GetAllCompletions()
	if err != nil {
		return fmt.Errorf("failed to get completions: %w", err)
	}
	future := 0
	for _, c := range completions {
		if c.Day.After(today) {
			future++
		}
	}
	if future > 0 {
		return fmt.Errorf("found %d completion(s) dated after today; they do not count towards streaks", future)
	}
	return nil
}

func checkGoalIntegrity(ctx *cli.Context) error {
	goals, err := ctx.Store.GetGoals(0)
	if err != nil {
		return fmt.Errorf("failed to get goals: %w", err)
	}
	for _, g := range goals {
		exists, err := ctx.Store.HabitExists(g.HabitID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("goal %s references non-existent habit %d", g.ID, g.HabitID)
		}
		if g.Target <= 0 {
			return fmt.Errorf("goal %s has non-positive target %d", g.ID, g.Target)
		}
	}
	return nil
}

// checkKeyring only matters for PostgreSQL users who keep the DSN there.
func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return fmt.Errorf("%w; use %s for PostgreSQL credentials", keyring.ErrKeyringUnavailable, constants.EnvDBConnection)
	}
	return nil
}
