package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/habitlit/internal/cli"
	"github.com/julianstephens/habitlit/internal/constants"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting existing database before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if ctx.DBPath == "" {
			return fmt.Errorf("--force is only supported for SQLite storage")
		}
		if _, err := os.Stat(ctx.DBPath); err == nil {
			ctx.PerformAutomaticBackup()
			// Database exists, close it first to prevent file locking issues
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			for _, path := range []string{ctx.DBPath, ctx.DBPath + "-wal", ctx.DBPath + "-shm"} {
				if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("failed to delete existing database: %w", err)
				}
			}
			fmt.Printf("Deleted existing database at: %s\n", ctx.DBPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized %s storage at: %s\n", constants.AppName, ctx.Store.GetConfigPath())
	return nil
}
