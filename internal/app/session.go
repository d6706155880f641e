// Package app ties the bingo domain to its collaborators: the combat feed,
// board persistence, the overlay and the completion chime. It holds no
// rendering or device code so it runs headless.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"
	"math/rand"
	"time"

	"github.com/j3kstrum/runelite-bingo/internal/audio"
	"github.com/j3kstrum/runelite-bingo/internal/bingo"
	"github.com/j3kstrum/runelite-bingo/internal/combat"
	"github.com/j3kstrum/runelite-bingo/internal/feed"
	"github.com/j3kstrum/runelite-bingo/internal/overlay"
	"github.com/j3kstrum/runelite-bingo/internal/store"
	"github.com/j3kstrum/runelite-bingo/internal/tasks"
	"github.com/j3kstrum/runelite-bingo/shared/protocol"
)

const (
	saveInterval = time.Second
	saveTimeout  = 2 * time.Second
	statusTTL    = 3 * time.Second
)

var ErrNoBoard = errors.New("app: no active board")

type Options struct {
	Store   store.Store
	Sprites overlay.Sprites
	// Sink plays the completion chime; nil stays silent.
	Sink              audio.Sink
	Sound             bool
	Origin            image.Point
	// MinDamageFraction for new tasks, nil for the task default.
	MinDamageFraction *float64
	// Seed for board generation, 0 picks one from the clock.
	Seed int64
	Now  func() time.Time
}

// Session is the running plugin state. All methods except those of the
// overlay's render path must be called from one goroutine.
type Session struct {
	tracker *combat.Tracker
	overlay *overlay.Container
	store   store.Store
	chime   *audio.Chime
	rng     *rand.Rand
	now     func() time.Time

	minFraction *float64
	dirty       bool
	lastSave    time.Time
	status      string
	statusUntil time.Time
}

// New loads the stored boards. A stored board that fails to decode aborts
// startup rather than being dropped.
func New(ctx context.Context, opts Options) (*Session, error) {
	if opts.Store == nil {
		return nil, store.ErrNotConfigured
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	s := &Session{
		tracker:     combat.NewTracker(),
		store:       opts.Store,
		chime:       audio.New(opts.Sink, opts.Sound),
		rng:         rand.New(rand.NewSource(seed)),
		now:         now,
		minFraction: opts.MinDamageFraction,
	}
	s.overlay = overlay.New(overlay.Options{
		Sprites:    opts.Sprites,
		Origin:     opts.Origin,
		NewBoard:   s.newBoard,
		OnSettings: s.toggleSound,
		OnAdd:      func(*bingo.Board) { s.dirty = true },
		OnRemove:   func(*bingo.Board) { s.dirty = true },
	})

	snaps, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("app: load boards: %w", err)
	}
	for i, snap := range snaps {
		b, err := bingo.Load(snap, s.env())
		if err != nil {
			s.overlay.Clear()
			return nil, fmt.Errorf("app: board %d: %w", i, err)
		}
		if b.Cancelled() {
			log.Printf("app: skipping abandoned board %s", b.ID())
			continue
		}
		s.overlay.AddBoard(b)
	}
	// loading is not a change
	s.dirty = false
	log.Printf("app: loaded %d boards", len(s.overlay.Boards()))
	return s, nil
}

func (s *Session) env() tasks.Env {
	return tasks.Env{Kills: s.tracker, Redraw: s.overlay, MinDamageFraction: s.minFraction}
}

func (s *Session) newBoard() (*bingo.Board, error) {
	return bingo.Random(s.rng, s.env())
}

func (s *Session) Overlay() *overlay.Container { return s.overlay }

func (s *Session) Tracker() *combat.Tracker { return s.tracker }

func (s *Session) Chime() *audio.Chime { return s.chime }

// Handle applies one combat feed message.
func (s *Session) Handle(m protocol.MsgEnvelope) {
	state, err := feed.Apply(s.tracker, m)
	if err != nil {
		log.Printf("app: %v", err)
		return
	}
	if m.Type == protocol.TypeActorDeath {
		// a death may have advanced tasks
		s.dirty = true
	}
	if state == protocol.StateLoggedIn && len(s.overlay.Boards()) == 0 {
		log.Printf("app: initializing first bingo board")
		if err := s.overlay.AddNew(); err != nil {
			log.Printf("app: create board: %v", err)
		}
	}
}

// Tick announces newly completed boards and saves when something changed.
func (s *Session) Tick(ctx context.Context) {
	for _, b := range s.overlay.NewlyCompleted() {
		log.Printf("app: board %s complete", b.ID())
		s.setStatus("Bingo!")
		s.chime.Play()
	}
	if s.dirty && s.now().Sub(s.lastSave) >= saveInterval {
		if err := s.Save(ctx); err != nil {
			log.Printf("app: %v", err)
		}
	}
}

// Save writes every loaded board.
func (s *Session) Save(ctx context.Context) error {
	boards := s.overlay.Boards()
	snaps := make([]bingo.Snapshot, len(boards))
	for i, b := range boards {
		snaps[i] = b.Snapshot()
	}
	ctx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()
	s.lastSave = s.now()
	if err := s.store.Save(ctx, snaps); err != nil {
		return fmt.Errorf("save boards: %w", err)
	}
	s.dirty = false
	return nil
}

// Export returns the active board as indented JSON.
func (s *Session) Export() (string, error) {
	i, ok := s.overlay.Active()
	if !ok {
		return "", ErrNoBoard
	}
	b, err := json.MarshalIndent(s.overlay.Boards()[i].Snapshot(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("app: export: %w", err)
	}
	return string(b), nil
}

func (s *Session) toggleSound() {
	on := !s.chime.Enabled()
	s.chime.SetEnabled(on)
	if on {
		s.setStatus("Sound on")
	} else {
		s.setStatus("Sound off")
	}
}

func (s *Session) setStatus(msg string) {
	s.status = msg
	s.statusUntil = s.now().Add(statusTTL)
}

// SetStatus shows a short message in the host's status line.
func (s *Session) SetStatus(msg string) { s.setStatus(msg) }

// Status returns the current status line, empty once it expired.
func (s *Session) Status() string {
	if s.now().After(s.statusUntil) {
		return ""
	}
	return s.status
}

// Close saves pending changes, detaches all boards and closes the store.
func (s *Session) Close(ctx context.Context) error {
	var errs []error
	if s.dirty {
		errs = append(errs, s.Save(ctx))
	}
	s.overlay.Clear()
	errs = append(errs, s.store.Close())
	return errors.Join(errs...)
}
