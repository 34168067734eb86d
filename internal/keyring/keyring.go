// Package keyring keeps the PostgreSQL connection string in the OS keyring
// so it never has to appear on the command line.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/zerefez/habitcal/internal/constants"
)

var (
	ErrNotFound           = errors.New("credentials not found in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

const (
	service = constants.AppName
	user    = constants.DefaultKeyringUser
	// probeUser is read by IsAvailable and never written.
	probeUser = "availability-probe"
)

// translate maps go-keyring errors onto this package's sentinels.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, keyring.ErrNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("%w: %s: %v", ErrKeyringUnavailable, op, err)
	}
}

func GetConnectionString() (string, error) {
	connStr, err := keyring.Get(service, user)
	if err != nil {
		return "", translate("read", err)
	}
	return connStr, nil
}

func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	return translate("store", keyring.Set(service, user, connStr))
}

// DeleteConnectionString returns ErrNotFound when nothing was stored.
func DeleteConnectionString() error {
	return translate("delete", keyring.Delete(service, user))
}

// IsAvailable reports whether the keyring answers at all; a missing entry
// still counts as available.
func IsAvailable() bool {
	_, err := keyring.Get(service, probeUser)
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
