package credential

import (
	"errors"
	"fmt"
	"log"

	"github.com/99designs/keyring"
)

const serviceName = "tasktracker"

// DBPasswordKey is the keyring entry holding the MySQL password.
const DBPasswordKey = "db-password"

// openKeyring returns a configured keyring instance. It is a variable so
// tests can swap in an in-memory ring.
var openKeyring = func() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/tasktracker/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("tasktracker-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// Get retrieves a credential value by key from the system keyring.
func Get(key string) (string, error) {
	ring, err := openKeyring()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(key)
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", key, err)
	}

	return string(item.Data), nil
}

// Set stores a credential value by key in the system keyring.
func Set(key string, value string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:   key,
		Data:  []byte(value),
		Label: serviceName + " " + key,
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}

	return nil
}

// Delete removes a credential by key from the system keyring.
func Delete(key string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Remove(key)
	if err != nil {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}

	return nil
}

// Resolve returns configured when it is set, otherwise the keyring value
// stored under key. A missing entry yields "".
func Resolve(configured, key string) string {
	if configured != "" {
		return configured
	}
	value, err := Get(key)
	if err != nil {
		if !errors.Is(err, keyring.ErrKeyNotFound) {
			log.Printf("keyring lookup for %q failed: %v", key, err)
		}
		return ""
	}
	return value
}
