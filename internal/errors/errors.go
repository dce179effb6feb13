// Package errors renders command failures for the terminal, attaching a
// follow-up hint when the failure is one the user can fix.
package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/keyring"
	"github.com/julianstephens/habitlit/internal/logger"
	"github.com/julianstephens/habitlit/internal/storage"
	"github.com/julianstephens/habitlit/internal/storage/postgres"
)

var hints = []struct {
	target error
	hint   string
}{
	{storage.ErrNotInitialized, fmt.Sprintf("Create the database with '%s init'.", constants.AppName)},
	{storage.ErrNotFound, fmt.Sprintf("Use '%s habit list --all', '%s goal list' or '%s trash list' to find valid references.", constants.AppName, constants.AppName, constants.AppName)},
	{keyring.ErrNotFound, fmt.Sprintf("Store a connection string with '%s config set-connection <dsn>'.", constants.AppName)},
	{keyring.ErrKeyringUnavailable, fmt.Sprintf("Set %s instead of using the OS keyring.", constants.EnvDBConnection)},
	{postgres.ErrInvalidConnectionString, "Use a postgres:// URL or a key=value DSN such as \"host=localhost dbname=habitlit\"."},
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// WithHint formats an error followed by an indented hint line for the user.
func WithHint(err error, hint string) string {
	if err == nil {
		return ""
	}
	if hint == "" {
		return Format(err)
	}
	return fmt.Sprintf("%s\n       %s", Format(err), hint)
}

// Hint returns the follow-up for the first known error in err's chain.
func Hint(err error) string {
	for _, h := range hints {
		if errors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

// Describe formats err with its hint, if any.
func Describe(err error) string {
	return WithHint(err, Hint(err))
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("command failed", "error", err)
		fmt.Fprintln(os.Stderr, Describe(err))
		os.Exit(1)
	}
}
