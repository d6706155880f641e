// Package store persists the loaded boards between sessions.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/j3kstrum/runelite-bingo/internal/bingo"
	"github.com/j3kstrum/runelite-bingo/internal/config"
)

//go:generate go tool mockgen -destination=./mocks/store_mock.go -package=mocks . Store

var ErrNotConfigured = errors.New("store: not configured")

// Store keeps the ordered list of board snapshots. Save replaces the whole
// set.
type Store interface {
	Load(ctx context.Context) ([]bingo.Snapshot, error)
	Save(ctx context.Context, boards []bingo.Snapshot) error
	Close() error
}

// Open picks the back end named by cfg.Store inside the profile directory.
func Open(cfg config.Config) (Store, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		p, err := cfg.Path("boards.db")
		if err != nil {
			return nil, err
		}
		return OpenSQLite(p)
	case config.StoreFile, "":
		p, err := cfg.Path("boards.json")
		if err != nil {
			return nil, err
		}
		return NewFile(p), nil
	default:
		return nil, fmt.Errorf("store: unknown back end %q", cfg.Store)
	}
}
