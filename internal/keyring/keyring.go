// Package keyring holds the one secret wakelit ever needs: the PostgreSQL
// connection string, including its password. The CLI refuses passwords on the
// command line (they leak into shell history and process lists), so the OS
// keyring is the sanctioned place for them; `wakelit --config keyring`
// resolves through here at startup.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/wakelit/internal/constants"
)

var (
	// ErrNotFound means no connection string has been stored yet.
	ErrNotFound = errors.New("no connection string stored in keyring")
	// ErrKeyringUnavailable means the OS keyring backend cannot be reached
	// (no D-Bus session, locked keychain, headless environment).
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetConnectionString fetches the stored PostgreSQL connection string.
func GetConnectionString() (string, error) {
	connStr, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

// SetConnectionString stores the PostgreSQL connection string, replacing any
// previous one. This is the only form in which wakelit accepts an embedded
// password.
func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}
	return nil
}

// DeleteConnectionString removes the stored connection string.
func DeleteConnectionString() error {
	if err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}
	return nil
}

// IsAvailable probes whether a keyring backend is usable at all, for
// `wakelit keyring status`. A not-found answer still proves the backend
// responded.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
