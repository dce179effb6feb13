// Package keyring keeps the PostgreSQL connection string in the OS secret
// store so it never has to appear on the command line.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/habitlit/internal/constants"
)

var (
	// ErrNotFound is returned when no connection string has been stored
	ErrNotFound = errors.New("connection string not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring cannot be reached
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

const probeUser = "availability-probe"

// translate maps go-keyring failures onto this package's sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, keyring.ErrNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
}

func GetConnectionString() (string, error) {
	connStr, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		return "", translate(err)
	}
	return connStr, nil
}

func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	return translate(keyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr))
}

func DeleteConnectionString() error {
	return translate(keyring.Delete(constants.AppName, constants.DefaultKeyringUser))
}

// IsAvailable reports whether the OS keyring answers a read. A missing
// entry still counts as available.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, probeUser)
	return !errors.Is(translate(err), ErrKeyringUnavailable)
}
