// Package config loads cfgkit's CLI defaults from a TOML file, the same way
// the grammar data files in this codebase's teacher lineage are read with
// github.com/BurntSushi/toml.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ErrNoConfigFile is returned by Load when the requested path does not
// exist; callers should fall back to Default in that case rather than
// treating it as fatal.
var ErrNoConfigFile = errors.New("no config file at that path")

// Display controls how LL(1) and LR(1) tables are rendered. Derivation
// traces are not affected by it.
type Display struct {
	// Width is the column width used to wrap rendered tables. Zero means
	// let rosed pick its own default.
	Width int `toml:"width"`

	// ShowEpsilonAsSymbol controls whether empty productions are rendered
	// using the epsilon symbol or the literal text "(empty)".
	ShowEpsilonAsSymbol bool `toml:"show_epsilon_as_symbol"`
}

// Cache controls the on-disk analysis cache.
type Cache struct {
	// Enabled turns the sqlite-backed grammar/table cache on or off.
	Enabled bool `toml:"enabled"`

	// Path is the file the cache database is stored at.
	Path string `toml:"path"`
}

// Config holds cfgkit's CLI defaults, loaded from a TOML file.
type Config struct {
	Display Display `toml:"display"`
	Cache   Cache   `toml:"cache"`
}

// Default returns the built-in configuration used when no config file is
// present or specified.
func Default() Config {
	return Config{
		Display: Display{
			Width:               100,
			ShowEpsilonAsSymbol: true,
		},
		Cache: Cache{
			Enabled: true,
			Path:    "cfgkit-cache.db",
		},
	}
}

// Load reads a TOML config file at path, starting from Default and letting
// any fields present in the file override it. If path does not exist,
// ErrNoConfigFile is returned along with Default().
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, ErrNoConfigFile
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}
