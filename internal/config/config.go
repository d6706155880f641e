// Package config reads runtime settings from the environment and locates the
// per-profile configuration directory.
package config

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/caarlos0/env/v11"
)

const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	FeedURL   string `env:"BINGO_FEED_URL"   envDefault:"ws://127.0.0.1:8090/feed"`
	FeedToken string `env:"BINGO_FEED_TOKEN"`
	// Profile separates config directories of several installs. Empty
	// derives one from the executable path.
	Profile string `env:"BINGO_PROFILE"`
	// ConfigRoot replaces the OS user config directory.
	ConfigRoot        string  `env:"BINGO_CONFIG_DIR"`
	Store             string  `env:"BINGO_STORE"               envDefault:"file"`
	AssetDir          string  `env:"BINGO_ASSET_DIR"`
	Sound             bool    `env:"BINGO_SOUND"               envDefault:"true"`
	MinDamageFraction float64 `env:"BINGO_MIN_DAMAGE_FRACTION" envDefault:"0.5"`
	// Seed for board generation, 0 picks one from the clock.
	Seed int64 `env:"BINGO_SEED"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates the client configuration.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	if cfg.Store != StoreFile && cfg.Store != StoreSQLite {
		return Config{}, fmt.Errorf("%w: BINGO_STORE %q (want %s or %s)", ErrInvalid, cfg.Store, StoreFile, StoreSQLite)
	}
	if cfg.MinDamageFraction < 0 || cfg.MinDamageFraction > 1 {
		return Config{}, fmt.Errorf("%w: BINGO_MIN_DAMAGE_FRACTION %v out of [0,1]", ErrInvalid, cfg.MinDamageFraction)
	}
	return cfg, nil
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9._-]`)

func sanitize(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = unsafeChars.ReplaceAllString(s, "")
	if s == "" {
		s = "default"
	}
	return s
}

// ProfileID picks the profile name:
// 1) BINGO_PROFILE (e.g. "dev", "alt")
// 2) <exeBase>-<hash8 of full exe path>
func (c Config) ProfileID() string {
	if p := strings.TrimSpace(c.Profile); p != "" {
		return sanitize(p)
	}
	exe, _ := os.Executable()
	base := strings.TrimSuffix(filepath.Base(exe), filepath.Ext(exe))
	sum := sha1.Sum([]byte(exe))
	return sanitize(base) + "-" + hex.EncodeToString(sum[:])[:8]
}

// Dir = OS config dir / RuneliteBingo / ProfileID(), created on demand.
// Examples:
//
//	Windows: %APPDATA%\RuneliteBingo\<profile>\
//	macOS:   ~/Library/Application Support/RuneliteBingo/<profile>/
//	Linux:   ~/.config/RuneliteBingo/<profile>/
func (c Config) Dir() (string, error) {
	root := c.ConfigRoot
	if root == "" {
		root, _ = os.UserConfigDir()
	}
	if root == "" {
		home, _ := os.UserHomeDir()
		root = filepath.Join(home, ".config")
	}
	dir := filepath.Join(root, "RuneliteBingo", c.ProfileID())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	return dir, nil
}

func (c Config) Path(name string) (string, error) {
	dir, err := c.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
