package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/dexcli/dex/auth"
	"github.com/dexcli/dex/key"
	"github.com/dexcli/dex/log"
	"github.com/dexcli/dex/mangadex"
	"github.com/dexcli/dex/network"
	"github.com/spf13/viper"
)

// newClient builds a client from configuration, seeded with the stored credentials.
func newClient() (*mangadex.Client, error) {
	httpClient := network.New(network.Options{
		Timeout:   time.Duration(viper.GetInt(key.APITimeout)) * time.Second,
		UserAgent: viper.GetString(key.APIUserAgent),
		RateLimit: viper.GetFloat64(key.APIRateLimit),
		Burst:     viper.GetInt(key.APIRateBurst),
	})

	client, err := mangadex.New(viper.GetString(key.APIBaseURL), mangadex.WithHTTPClient(httpClient))
	if err != nil {
		return nil, err
	}

	creds, err := auth.Load()
	if err != nil {
		log.Warnf("ignoring stored credentials: %v", err)
		return client, nil
	}
	client.SetCredentials(creds)

	return client, nil
}

// newSessionClient is newClient for commands that need a logged user.
// An expired session is refreshed first when auth.auto_refresh is set.
func newSessionClient(ctx context.Context) (*mangadex.Client, error) {
	client, err := newClient()
	if err != nil {
		return nil, err
	}

	creds, ok := client.Credentials().Get()
	if !ok {
		return nil, mangadex.ErrMissingCredentials
	}

	if !viper.GetBool(key.AuthAutoRefresh) || !creds.SessionExpired(time.Now()) {
		return client, nil
	}

	log.Info("session expired, refreshing")
	if _, err := client.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("refresh expired session: %w", err)
	}

	if err := persist(client); err != nil {
		return nil, err
	}

	return client, nil
}

// persist mirrors the client's credentials into the keyring when auth.remember is set.
func persist(client *mangadex.Client) error {
	if !viper.GetBool(key.AuthRemember) {
		return nil
	}

	if err := auth.Sync(client.Credentials()); err != nil {
		return fmt.Errorf("store credentials: %w", err)
	}
	return nil
}
