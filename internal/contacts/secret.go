package contacts

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tartampluch/go-lifespan/internal/config"
	"github.com/zalando/go-keyring"
)

// SecretStore keeps source passwords out of flags and settings files.
type SecretStore interface {
	Get(service, user string) (string, error)
	Set(service, user, password string) error
}

// KeyringStore reads from the OS keyring (Keychain, Secret Service, Credential Manager).
type KeyringStore struct{}

// Get implements SecretStore.
func (KeyringStore) Get(service, user string) (string, error) {
	return keyring.Get(service, user)
}

// Set implements SecretStore.
func (KeyringStore) Set(service, user, password string) error {
	return keyring.Set(service, user, password)
}

// ResolvePassword looks up the password stored for user under config.KeyringService.
// A missing entry is not an error: the source may accept anonymous access.
func ResolvePassword(store SecretStore, user string) (string, error) {
	if user == "" {
		return "", nil
	}
	pass, err := store.Get(config.KeyringService, user)
	if errors.Is(err, keyring.ErrNotFound) {
		slog.Debug(config.MsgPassFail,
			config.LogKeyComponent, config.CompContacts,
			config.LogKeyUser, user)
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrKeyring, err)
	}
	return pass, nil
}

// StorePassword saves the password of user under config.KeyringService.
func StorePassword(store SecretStore, user, password string) error {
	if user == "" {
		return errors.New(config.ErrUserMissing)
	}
	if err := store.Set(config.KeyringService, user, password); err != nil {
		return fmt.Errorf("%s: %w", config.ErrKeyringWrite, err)
	}
	return nil
}
