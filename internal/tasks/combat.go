package tasks

import (
	"fmt"

	"github.com/j3kstrum/runelite-bingo/internal/combat"
)

// DefaultMinDamageFraction is the share of a monster's health the player must
// have dealt for a kill to count.
const DefaultMinDamageFraction = 0.5

// Combat is a "kill N of target" task.
type Combat struct {
	target      *Target
	required    int
	current     int
	minFraction float64
	// explicit is false when minFraction fell back to the default
	explicit bool

	env       Env
	listening bool
}

// NewCombat creates a fresh task and subscribes it to kill credits.
func NewCombat(target string, required int, env Env) (*Combat, error) {
	return newCombat(target, required, 0, env.MinDamageFraction, env)
}

// LoadCombat rebuilds a task from a persisted record. Completed tasks are not
// subscribed.
func LoadCombat(rec Record, env Env) (*Combat, error) {
	if rec.Type != KindCombat {
		return nil, fmt.Errorf("%w: %q is not a combat record", ErrInvalidRecord, rec.Type)
	}
	return newCombat(rec.Target, rec.Required, rec.Current, rec.MinDamageFraction, env)
}

func newCombat(name string, required, current int, fraction *float64, env Env) (*Combat, error) {
	t, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, name)
	}
	if required <= 0 {
		return nil, fmt.Errorf("%w: required count %d for %s", ErrInvalidRecord, required, name)
	}
	if current < 0 || current > required {
		return nil, fmt.Errorf("%w: progress %d/%d for %s", ErrInvalidRecord, current, required, name)
	}
	c := &Combat{target: t, required: required, current: current, minFraction: DefaultMinDamageFraction, env: env}
	if fraction != nil {
		if *fraction < 0 || *fraction > 1 {
			return nil, fmt.Errorf("%w: damage fraction %.2f for %s", ErrInvalidRecord, *fraction, name)
		}
		c.minFraction, c.explicit = *fraction, true
	}
	if !c.Complete() && env.Kills != nil {
		env.Kills.Register(c)
		c.listening = true
	}
	return c, nil
}

func (c *Combat) Kind() Kind { return KindCombat }

func (c *Combat) Target() *Target { return c.target }

func (c *Combat) Complete() bool { return c.current == c.required }

func (c *Combat) Progress() (int, int) { return c.current, c.required }

func (c *Combat) Description() string {
	return fmt.Sprintf("Kill %d %s (%d left)", c.required, c.target.Name, c.required-c.current)
}

func (c *Combat) Icon() string { return c.target.Icon }

// OnKill credits the task when the kill matches its target and the player
// dealt at least minFraction of the target's health.
func (c *Combat) OnKill(k combat.Kill) {
	if c.Complete() {
		return
	}
	if !c.target.Has(k.Class) {
		return
	}
	if float64(k.Damage)/float64(c.target.TotalHealth) < c.minFraction {
		return
	}
	c.current++
	c.env.requestRedraw()
	if c.Complete() {
		c.Detach()
		c.env.requestRedraw()
	}
}

// Detach unsubscribes from kill credits. Safe to call repeatedly.
func (c *Combat) Detach() {
	if !c.listening {
		return
	}
	c.listening = false
	if c.env.Kills != nil {
		c.env.Kills.Unregister(c)
	}
}

func (c *Combat) Record() Record {
	rec := Record{
		Type:     KindCombat,
		Target:   c.target.Name,
		Required: c.required,
		Current:  c.current,
	}
	if c.explicit {
		rec.MinDamageFraction = Fraction(c.minFraction)
	}
	return rec
}
