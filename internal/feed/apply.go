package feed

import (
	"errors"
	"fmt"

	"github.com/j3kstrum/runelite-bingo/internal/combat"
	"github.com/j3kstrum/runelite-bingo/shared/protocol"
)

var ErrUnknownMessage = errors.New("feed: unknown message type")

// Apply routes one message into the tracker. For GameState messages it
// returns the carried state, otherwise "".
func Apply(t *combat.Tracker, m protocol.MsgEnvelope) (string, error) {
	switch m.Type {
	case protocol.TypeHitsplat:
		var h protocol.Hitsplat
		if err := m.Decode(&h); err != nil {
			return "", err
		}
		t.Hit(combat.EntityID(h.EntityID), h.Amount, h.Mine)
	case protocol.TypeActorDeath:
		var d protocol.ActorDeath
		if err := m.Decode(&d); err != nil {
			return "", err
		}
		t.Death(combat.EntityID(d.EntityID), combat.ClassID(d.NpcID))
	case protocol.TypeNpcDespawned:
		var d protocol.NpcDespawned
		if err := m.Decode(&d); err != nil {
			return "", err
		}
		t.Despawn(combat.EntityID(d.EntityID))
	case protocol.TypeGameState:
		var s protocol.GameState
		if err := m.Decode(&s); err != nil {
			return "", err
		}
		// entity ids are only unique within one world session
		if s.State == protocol.StateLoggingIn || s.State == protocol.StateHopping {
			t.Reset()
		}
		return s.State, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMessage, m.Type)
	}
	return "", nil
}
