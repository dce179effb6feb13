package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/habitlit/internal/cli"
	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/keyring"
	"github.com/julianstephens/habitlit/internal/storage"
	"github.com/julianstephens/habitlit/internal/storage/postgres"
)

type ConfigCmd struct {
	SetConnection    ConfigSetConnectionCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
	DeleteConnection ConfigDeleteConnectionCmd `cmd:"" help:"Remove the stored connection string from the OS keyring."`
}

// ConfigSetConnectionCmd stores database connection credentials in the OS keyring
type ConfigSetConnectionCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring"`
}

func (cmd *ConfigSetConnectionCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	if !storage.IsPostgresDSN(cmd.ConnectionString) {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if _, err := postgres.ValidateConnString(cmd.ConnectionString); err != nil {
		if errors.Is(err, postgres.ErrEmbeddedCredentials) {
			// The keyring is encrypted, so a password is tolerated here
			fmt.Println("⚠️  Warning: Connection string contains embedded credentials.")
			fmt.Println("   It will be stored as-is in the encrypted OS keyring.")
			fmt.Println("   To keep passwords separate, use .pgpass or PGPASSWORD instead.")
		} else {
			return fmt.Errorf("invalid connection string: %w", err)
		}
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}

	fmt.Println("✓ Connection string stored successfully in OS keyring")
	fmt.Printf("  Use --config %s to connect with it\n", constants.KeyringConfigValue)
	return nil
}

// ConfigDeleteConnectionCmd removes database connection credentials from the OS keyring
type ConfigDeleteConnectionCmd struct{}

func (cmd *ConfigDeleteConnectionCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		return fmt.Errorf("failed to delete connection string: %w", err)
	}

	fmt.Println("✓ Connection string deleted from OS keyring")
	return nil
}
