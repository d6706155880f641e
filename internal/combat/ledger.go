package combat

// EntityID identifies one live NPC instance for as long as it is spawned.
type EntityID int64

// ClassID is the NPC definition id shared by every instance of a monster.
type ClassID int

// Ledger accumulates the damage the local player dealt to each live entity.
// Entries exist only while the entity is believed alive.
type Ledger struct {
	damage map[EntityID]int
}

func NewLedger() *Ledger {
	return &Ledger{damage: make(map[EntityID]int)}
}

// Add records damage against id, creating the entry on first hit.
func (l *Ledger) Add(id EntityID, amount int) {
	if amount <= 0 {
		return
	}
	l.damage[id] += amount
}

// Damage returns the accumulated damage for id.
func (l *Ledger) Damage(id EntityID) (int, bool) {
	d, ok := l.damage[id]
	return d, ok
}

// Take returns the damage for id and drops the entry.
func (l *Ledger) Take(id EntityID) (int, bool) {
	d, ok := l.damage[id]
	if ok {
		delete(l.damage, id)
	}
	return d, ok
}

func (l *Ledger) Forget(id EntityID) { delete(l.damage, id) }

func (l *Ledger) Reset() { clear(l.damage) }

func (l *Ledger) Len() int { return len(l.damage) }
