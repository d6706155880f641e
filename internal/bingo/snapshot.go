package bingo

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/j3kstrum/runelite-bingo/internal/tasks"
)

// Snapshot is the persisted form of a board.
type Snapshot struct {
	ID        string           `json:"id,omitempty"`
	Cancelled bool             `json:"cancelled"`
	Tasks     [][]tasks.Record `json:"tasks"`
}

// Snapshot serializes the board.
func (b *Board) Snapshot() Snapshot {
	s := Snapshot{ID: b.id.String(), Cancelled: b.cancelled, Tasks: make([][]tasks.Record, Size)}
	for r := range b.cells {
		row := make([]tasks.Record, Size)
		for c := range b.cells[r] {
			row[c] = b.cells[r][c].Record()
		}
		s.Tasks[r] = row
	}
	return s
}

// Load rebuilds a board. A malformed grid or any undecodable task fails the
// whole load; no cell is ever silently dropped. Boards without an id get a
// fresh one.
func Load(s Snapshot, env tasks.Env) (*Board, error) {
	if len(s.Tasks) != Size {
		return nil, fmt.Errorf("%w: got %d rows", ErrGridShape, len(s.Tasks))
	}
	id := uuid.New()
	if s.ID != "" {
		parsed, err := uuid.Parse(s.ID)
		if err != nil {
			return nil, fmt.Errorf("bingo: board id %q: %w", s.ID, err)
		}
		id = parsed
	}
	b := &Board{id: id, cancelled: s.Cancelled}
	if s.Cancelled {
		// abandoned boards keep their progress but never listen
		env.Kills = nil
	}
	for r, row := range s.Tasks {
		if len(row) != Size {
			detachAll(&b.cells)
			return nil, fmt.Errorf("%w: row %d has %d cells", ErrGridShape, r, len(row))
		}
		for c, rec := range row {
			t, err := tasks.Decode(rec, env)
			if err != nil {
				detachAll(&b.cells)
				return nil, fmt.Errorf("bingo: cell %d,%d: %w", r, c, err)
			}
			b.cells[r][c] = t
		}
	}
	return b, nil
}
