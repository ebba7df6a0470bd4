// Package auth persists MangaDex credentials in the system keyring.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dexcli/dex/constant"
	"github.com/dexcli/dex/mangadex"
	"github.com/samber/mo"
	"github.com/zalando/go-keyring"
)

const (
	service = constant.Dex
	user    = "mangadex-credentials"
)

// Save stores the token pair, replacing any previous one.
func Save(creds mangadex.Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}

	return keyring.Set(service, user, string(data))
}

// Load returns the stored pair. None means nothing was saved.
func Load() (mo.Option[mangadex.Credentials], error) {
	secret, err := keyring.Get(service, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return mo.None[mangadex.Credentials](), nil
	}
	if err != nil {
		return mo.None[mangadex.Credentials](), err
	}

	var creds mangadex.Credentials
	if err := json.Unmarshal([]byte(secret), &creds); err != nil {
		return mo.None[mangadex.Credentials](), fmt.Errorf("decode stored credentials: %w", err)
	}

	return mo.Some(creds), nil
}

// Delete forgets the stored pair. Deleting nothing is not an error.
func Delete() error {
	if err := keyring.Delete(service, user); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}

// Sync mirrors the client's credentials into the keyring: stores them when
// present, deletes them when absent.
func Sync(creds mo.Option[mangadex.Credentials]) error {
	if value, ok := creds.Get(); ok {
		return Save(value)
	}
	return Delete()
}
