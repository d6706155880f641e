package combat

import "log"

// Kill is a kill-credit notification: an entity of Class died after the
// local player dealt Damage to it.
type Kill struct {
	Entity EntityID
	Class  ClassID
	Damage int
}

// Listener receives kill credits.
type Listener interface {
	OnKill(k Kill)
}

// Tracker turns raw combat events into kill credits. It owns the damage
// ledger and the listener registry; all methods are expected to run on the
// single event-handling goroutine.
type Tracker struct {
	ledger    *Ledger
	listeners []Listener
}

func NewTracker() *Tracker {
	return &Tracker{ledger: NewLedger()}
}

func (t *Tracker) Ledger() *Ledger { return t.ledger }

// Register adds l unless it is already registered.
func (t *Tracker) Register(l Listener) {
	for _, x := range t.listeners {
		if x == l {
			return
		}
	}
	t.listeners = append(t.listeners, l)
}

func (t *Tracker) Unregister(l Listener) {
	for i, x := range t.listeners {
		if x == l {
			t.listeners = append(t.listeners[:i], t.listeners[i+1:]...)
			return
		}
	}
}

func (t *Tracker) Listeners() int { return len(t.listeners) }

// Hit records a hitsplat on an NPC. Only hits dealt by the local player count.
func (t *Tracker) Hit(id EntityID, amount int, mine bool) {
	if !mine {
		return
	}
	t.ledger.Add(id, amount)
}

// Death dispatches a kill credit when the ledger tracks the entity. The
// entry is consumed, so a duplicate death for the same entity is a no-op.
func (t *Tracker) Death(id EntityID, class ClassID) {
	dmg, ok := t.ledger.Take(id)
	if !ok {
		return
	}
	k := Kill{Entity: id, Class: class, Damage: dmg}
	// listeners may unregister themselves while being notified
	ls := append([]Listener(nil), t.listeners...)
	for _, l := range ls {
		l.OnKill(k)
	}
}

func (t *Tracker) Despawn(id EntityID) { t.ledger.Forget(id) }

// Reset drops every tracked entity, e.g. when the player logs in again.
func (t *Tracker) Reset() {
	if n := t.ledger.Len(); n > 0 {
		log.Printf("combat: reset ledger (%d tracked)", n)
	}
	t.ledger.Reset()
}
