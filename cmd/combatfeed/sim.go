package main

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/j3kstrum/runelite-bingo/internal/tasks"
	"github.com/j3kstrum/runelite-bingo/shared/protocol"
)

// Simulator fakes a player fighting catalog monsters. Each encounter is a
// few hitsplats on a fresh entity followed by its death and despawn. Some
// encounters are dealt by other players and earn no credit.
type Simulator struct {
	rng       *rand.Rand
	mineRatio float64
	next      int64
}

func NewSimulator(seed int64, mineRatio float64) *Simulator {
	return &Simulator{rng: rand.New(rand.NewSource(seed)), mineRatio: mineRatio, next: 1000}
}

// Encounter returns the encoded messages of one fight.
func (s *Simulator) Encounter() ([][]byte, error) {
	targets := tasks.Targets()
	t := targets[s.rng.Intn(len(targets))]
	classes := t.Classes()
	class := classes[s.rng.Intn(len(classes))]
	s.next++
	id := s.next
	mine := s.rng.Float64() < s.mineRatio

	var out [][]byte
	add := func(typ string, v any) error {
		b, err := protocol.Encode(typ, v)
		if err != nil {
			return err
		}
		out = append(out, b)
		return nil
	}
	for _, amt := range s.split(t.TotalHealth) {
		if err := add(protocol.TypeHitsplat, protocol.Hitsplat{EntityID: id, Amount: amt, Mine: mine}); err != nil {
			return nil, err
		}
	}
	if err := add(protocol.TypeActorDeath, protocol.ActorDeath{EntityID: id, NpcID: int(class)}); err != nil {
		return nil, err
	}
	if err := add(protocol.TypeNpcDespawned, protocol.NpcDespawned{EntityID: id}); err != nil {
		return nil, err
	}
	return out, nil
}

// split divides hp into one to three positive hits.
func (s *Simulator) split(hp int) []int {
	n := 1 + s.rng.Intn(min(3, hp))
	hits := make([]int, n)
	left := hp
	for i := 0; i < n-1; i++ {
		hits[i] = 1 + s.rng.Intn(left-(n-1-i))
		left -= hits[i]
	}
	hits[n-1] = left
	return hits
}

// Run broadcasts one encounter per tick until ctx ends.
func (s *Simulator) Run(ctx context.Context, tick time.Duration, srv *Server) error {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		if srv.Clients() == 0 {
			continue
		}
		msgs, err := s.Encounter()
		if err != nil {
			log.Printf("sim: %v", err)
			continue
		}
		for _, m := range msgs {
			srv.Broadcast(m)
		}
	}
}
