// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/dexcli/dex/constant"
	"github.com/dexcli/dex/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the default configuration directory.
const EnvConfigPath = "DEX_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the directory holding dex.toml.
// DEX_CONFIG_PATH takes precedence over the platform default.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Dex))
}

// Cache resolves the persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Dex))
}

// Logs resolves the directory used for diagnostic logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Queries is the search query history used for suggestions.
func Queries() string {
	return filepath.Join(Cache(), "queries.json")
}

// Tags is the cached global tag list.
func Tags() string {
	return filepath.Join(Cache(), "tags.json")
}

// Titles maps manga ids to their last seen display titles.
func Titles() string {
	return filepath.Join(Cache(), "titles.json")
}

// Version caches the latest published release.
func Version() string {
	return filepath.Join(Cache(), "version.json")
}
