package insights

import (
	"fmt"

	"github.com/julianstephens/habitlit/internal/cli"
	"github.com/julianstephens/habitlit/internal/export"
)

type ExportCmd struct {
	Output string `short:"o" help:"Output file (default: habits_export_YYYYMMDD.<format> in the current directory)."`
	Format string `help:"Export format: csv or json (default: inferred from --output, else csv)."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	format := export.FormatCSV
	switch {
	case c.Format != "":
		f, err := export.ParseFormat(c.Format)
		if err != nil {
			return err
		}
		format = f
	case c.Output != "":
		format = export.FormatFromPath(c.Output)
	}

	today, err := ctx.Today()
	if err != nil {
		return err
	}
	habits, err := ctx.Store.GetAllHabits(false)
	if err != nil {
		return err
	}
	summary, err := ctx.Stats().AllHabitsSummary(habits, today)
	if err != nil {
		return err
	}

	now := ctx.Now()
	path := c.Output
	if path == "" {
		path = export.DefaultFileName(format, now)
	}

	if err := export.WriteFile(path, format, summary, now); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Printf("✓ Exported %d habit(s) to %s\n", len(summary), path)
	return nil
}
