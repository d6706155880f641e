// Package bingo implements the 5x5 bingo card built from tasks.
package bingo

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/j3kstrum/runelite-bingo/internal/tasks"
)

// Size is the number of rows and columns on a card.
const Size = 5

var ErrGridShape = errors.New("bingo: task grid must be 5x5")

// Board is one playable card. Every cell holds a task once constructed.
type Board struct {
	id        uuid.UUID
	cancelled bool
	cells     [Size][Size]tasks.Task
}

// New builds a board from a fully populated grid.
func New(cells [Size][Size]tasks.Task) (*Board, error) {
	for r := range cells {
		for c := range cells[r] {
			if cells[r][c] == nil {
				return nil, fmt.Errorf("%w: empty cell at %d,%d", ErrGridShape, r, c)
			}
		}
	}
	return &Board{id: uuid.New(), cells: cells}, nil
}

// Random fills a board with combat tasks against random catalog targets.
func Random(rng *rand.Rand, env tasks.Env) (*Board, error) {
	targets := tasks.Targets()
	if len(targets) == 0 {
		return nil, errors.New("bingo: empty target catalog")
	}
	var cells [Size][Size]tasks.Task
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			tg := targets[rng.Intn(len(targets))]
			n := 1 + rng.Intn(tg.MaxAmount)
			t, err := tasks.NewCombat(tg.Name, n, env)
			if err != nil {
				detachAll(&cells)
				return nil, fmt.Errorf("bingo: generate cell %d,%d: %w", r, c, err)
			}
			cells[r][c] = t
		}
	}
	return New(cells)
}

func detachAll(cells *[Size][Size]tasks.Task) {
	for r := range cells {
		for c := range cells[r] {
			if cells[r][c] != nil {
				cells[r][c].Detach()
			}
		}
	}
}

func (b *Board) ID() uuid.UUID { return b.id }

func (b *Board) Cancelled() bool { return b.cancelled }

// Cancel abandons the board; its tasks stop tracking progress.
func (b *Board) Cancel() {
	b.cancelled = true
	detachAll(&b.cells)
}

// Detach stops every task from listening without changing board state.
func (b *Board) Detach() { detachAll(&b.cells) }

// Task returns the task at row r, column c.
func (b *Board) Task(r, c int) tasks.Task { return b.cells[r][c] }

// Completed counts finished tasks.
func (b *Board) Completed() int {
	n := 0
	for r := range b.cells {
		for c := range b.cells[r] {
			if b.cells[r][c].Complete() {
				n++
			}
		}
	}
	return n
}
