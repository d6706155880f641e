package tasks

import (
	"sort"

	"github.com/j3kstrum/runelite-bingo/internal/combat"
)

// Target is a killable monster family. Several NPC definitions may count as
// the same target (an undead cow still counts as a cow).
type Target struct {
	Name        string
	Icon        string // sprite id
	MaxAmount   int    // upper bound for generated quantities
	TotalHealth int
	classes     map[combat.ClassID]struct{}
}

func newTarget(name, icon string, maxAmount, hp int, ids ...combat.ClassID) *Target {
	t := &Target{Name: name, Icon: icon, MaxAmount: maxAmount, TotalHealth: hp, classes: make(map[combat.ClassID]struct{}, len(ids))}
	for _, id := range ids {
		t.classes[id] = struct{}{}
	}
	return t
}

// Has reports whether NPC class id counts toward this target.
func (t *Target) Has(id combat.ClassID) bool {
	_, ok := t.classes[id]
	return ok
}

// Classes returns the member class ids in ascending order.
func (t *Target) Classes() []combat.ClassID {
	out := make([]combat.ClassID, 0, len(t.classes))
	for id := range t.classes {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

var catalog = map[string]*Target{}

// catalogOrder keeps random generation deterministic for a given seed.
var catalogOrder []string

func register(t *Target) {
	catalog[t.Name] = t
	catalogOrder = append(catalogOrder, t.Name)
}

func init() {
	register(newTarget("Chicken", "npc/chicken", 2, 3,
		1173, 1174, 2804, 2805, 2806, 3316, 3661, 3662, 9488,
		10494, 10495, 10496, 10497, 10498, 10499, 10556))
	register(newTarget("Cow", "npc/cow", 2, 8,
		2790, 2791, 2793, 2795, 5842, 2792, 6401, 10598, 2794, 2801,
		4190, 4191, 4421))
	register(newTarget("Goblin", "npc/goblin", 3, 5,
		655, 656, 657, 658, 659, 660, 661, 662, 663, 664, 665, 666, 667, 668,
		2484, 2485, 2486, 2487, 2488, 2489, 3028, 3029, 3030, 3031, 3032))
	register(newTarget("Giant rat", "npc/giant_rat", 3, 5,
		2856, 2857, 2858, 2859, 2860, 2861, 2862, 2863, 2864))
}

// Lookup returns the catalog entry for a target name.
func Lookup(name string) (*Target, bool) {
	t, ok := catalog[name]
	return t, ok
}

// Targets returns every catalog entry in registration order.
func Targets() []*Target {
	out := make([]*Target, 0, len(catalogOrder))
	for _, n := range catalogOrder {
		out = append(out, catalog[n])
	}
	return out
}
