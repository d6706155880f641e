// Package tasks holds the trackable units of progress placed on a board.
package tasks

import (
	"errors"
	"fmt"

	"github.com/j3kstrum/runelite-bingo/internal/combat"
)

//go:generate go tool mockgen -destination=./mocks/tasks_mock.go -package=mocks . KillNotifier,Redrawer

// Kind discriminates persisted task records.
type Kind string

const KindCombat Kind = "combat"

var (
	ErrUnknownTaskType = errors.New("unknown task type")
	ErrUnknownTarget   = errors.New("unknown task target")
	ErrInvalidRecord   = errors.New("invalid task record")
)

// Task is one cell of a board.
type Task interface {
	Kind() Kind
	Complete() bool
	Progress() (current, required int)
	Description() string
	// Icon is the sprite id drawn for the task.
	Icon() string
	Record() Record
	// Detach stops the task from listening for further progress.
	Detach()
}

// KillNotifier is the registry tasks subscribe to for kill credits.
type KillNotifier interface {
	Register(l combat.Listener)
	Unregister(l combat.Listener)
}

// Redrawer marks the overlay's cached frame as stale.
type Redrawer interface {
	RequestRedraw()
}

// Env carries the collaborators a task needs while it is live.
type Env struct {
	Kills  KillNotifier
	Redraw Redrawer
	// MinDamageFraction is applied to newly generated combat tasks; nil
	// means DefaultMinDamageFraction. Zero credits any damage.
	MinDamageFraction *float64
}

func (e Env) requestRedraw() {
	if e.Redraw != nil {
		e.Redraw.RequestRedraw()
	}
}

// Record is the persisted form of a task. Fields beyond Type are variant
// specific.
type Record struct {
	Type              Kind    `json:"taskType"`
	Target            string  `json:"targetName,omitempty"`
	Required          int     `json:"requiredCount,omitempty"`
	Current           int     `json:"currentCount"`
	MinDamageFraction *float64 `json:"minDamageFraction,omitempty"`
}

// Fraction returns a pointer to f for Env and Record fields.
func Fraction(f float64) *float64 { return &f }

// Decode rebuilds a live task from its record.
func Decode(rec Record, env Env) (Task, error) {
	switch rec.Type {
	case KindCombat:
		return LoadCombat(rec, env)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTaskType, rec.Type)
	}
}
