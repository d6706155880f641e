// Package protocol defines the messages streamed by the combat feed.
package protocol

import (
	"encoding/json"
	"fmt"
)

// Envelope
type MsgEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Message type names.
const (
	TypeHitsplat     = "Hitsplat"
	TypeActorDeath   = "ActorDeath"
	TypeNpcDespawned = "NpcDespawned"
	TypeGameState    = "GameState"
)

// ================= S -> C =================

// Hitsplat is damage applied to an NPC. Mine is set when the local player
// dealt it.
type Hitsplat struct {
	EntityID int64 `json:"entityId"`
	Amount   int   `json:"amount"`
	Mine     bool  `json:"mine"`
}

// ActorDeath reports that an NPC died. NpcID is the class (definition) id.
type ActorDeath struct {
	EntityID int64 `json:"entityId"`
	NpcID    int   `json:"npcId"`
}

type NpcDespawned struct {
	EntityID int64 `json:"entityId"`
}

// Client session states carried by GameState.
const (
	StateLoginScreen = "LOGIN_SCREEN"
	StateLoggingIn   = "LOGGING_IN"
	StateLoggedIn    = "LOGGED_IN"
	StateHopping     = "HOPPING"
)

type GameState struct {
	State string `json:"state"`
}

// Encode wraps v in an envelope of type t.
func Encode(t string, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("protocol: encode %s: %w", t, err)
	}
	return json.Marshal(MsgEnvelope{Type: t, Data: data})
}

// Decode unmarshals an envelope's payload into v.
func (m MsgEnvelope) Decode(v any) error {
	if err := json.Unmarshal(m.Data, v); err != nil {
		return fmt.Errorf("protocol: decode %s: %w", m.Type, err)
	}
	return nil
}
