package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/j3kstrum/runelite-bingo/internal/bingo"
)

const fileVersion = 1

type fileDoc struct {
	Version int              `json:"version"`
	Boards  []bingo.Snapshot `json:"boards"`
}

// File stores boards as one JSON document, replaced atomically on save.
type File struct {
	mu   sync.Mutex
	path string
}

func NewFile(path string) *File { return &File{path: path} }

func (f *File) Path() string { return f.path }

// Load returns no boards when the file does not exist yet.
func (f *File) Load(_ context.Context) ([]bingo.Snapshot, error) {
	if f == nil || f.path == "" {
		return nil, ErrNotConfigured
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", f.path, err)
	}
	var doc fileDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", f.path, err)
	}
	if doc.Version > fileVersion {
		return nil, fmt.Errorf("store: %s has version %d, newer than %d", f.path, doc.Version, fileVersion)
	}
	return doc.Boards, nil
}

func (f *File) Save(_ context.Context, boards []bingo.Snapshot) error {
	if f == nil || f.path == "" {
		return ErrNotConfigured
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if boards == nil {
		boards = []bingo.Snapshot{}
	}
	b, err := json.MarshalIndent(fileDoc{Version: fileVersion, Boards: boards}, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("store: write: %w", err)
	}
	return os.Rename(tmp, f.path)
}

func (f *File) Close() error { return nil }
