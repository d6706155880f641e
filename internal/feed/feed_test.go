package feed

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/j3kstrum/runelite-bingo/internal/combat"
	"github.com/j3kstrum/runelite-bingo/shared/protocol"
)

type kills struct{ got []combat.Kill }

func (k *kills) OnKill(kill combat.Kill) { k.got = append(k.got, kill) }

func envelope(t *testing.T, typ string, v any) protocol.MsgEnvelope {
	t.Helper()
	b, err := protocol.Encode(typ, v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var m protocol.MsgEnvelope
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return m
}

func TestApplyDrivesTracker(t *testing.T) {
	tr := combat.NewTracker()
	rec := &kills{}
	tr.Register(rec)

	msgs := []protocol.MsgEnvelope{
		envelope(t, protocol.TypeHitsplat, protocol.Hitsplat{EntityID: 7, Amount: 3, Mine: true}),
		envelope(t, protocol.TypeHitsplat, protocol.Hitsplat{EntityID: 7, Amount: 9, Mine: false}),
		envelope(t, protocol.TypeHitsplat, protocol.Hitsplat{EntityID: 8, Amount: 2, Mine: true}),
		envelope(t, protocol.TypeActorDeath, protocol.ActorDeath{EntityID: 7, NpcID: 2790}),
		envelope(t, protocol.TypeActorDeath, protocol.ActorDeath{EntityID: 7, NpcID: 2790}),
		envelope(t, protocol.TypeNpcDespawned, protocol.NpcDespawned{EntityID: 8}),
		envelope(t, protocol.TypeActorDeath, protocol.ActorDeath{EntityID: 8, NpcID: 2790}),
	}
	for _, m := range msgs {
		if _, err := Apply(tr, m); err != nil {
			t.Fatalf("%s: %v", m.Type, err)
		}
	}
	if len(rec.got) != 1 || rec.got[0] != (combat.Kill{Entity: 7, Class: 2790, Damage: 3}) {
		t.Fatalf("kills = %+v", rec.got)
	}
}

func TestApplyGameState(t *testing.T) {
	tr := combat.NewTracker()
	tr.Hit(1, 5, true)
	state, err := Apply(tr, envelope(t, protocol.TypeGameState, protocol.GameState{State: protocol.StateLoggedIn}))
	if err != nil || state != protocol.StateLoggedIn || tr.Ledger().Len() != 1 {
		t.Fatalf("logged in: state %q err %v ledger %d", state, err, tr.Ledger().Len())
	}
	if _, err := Apply(tr, envelope(t, protocol.TypeGameState, protocol.GameState{State: protocol.StateLoggingIn})); err != nil {
		t.Fatal(err)
	}
	if tr.Ledger().Len() != 0 {
		t.Fatal("logging in should reset the ledger")
	}
}

func TestApplyRejectsUnknown(t *testing.T) {
	tr := combat.NewTracker()
	if _, err := Apply(tr, protocol.MsgEnvelope{Type: "Chat"}); !errors.Is(err, ErrUnknownMessage) {
		t.Fatalf("want ErrUnknownMessage, got %v", err)
	}
	bad := protocol.MsgEnvelope{Type: protocol.TypeHitsplat, Data: json.RawMessage(`[]`)}
	if _, err := Apply(tr, bad); err == nil {
		t.Fatal("malformed hitsplat applied")
	}
}

// feedServer upgrades requests carrying token and streams msgs, then holds
// the connection open until the client leaves.
func feedServer(t *testing.T, token string, msgs ...[]byte) *httptest.Server {
	t.Helper()
	up := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+token || r.URL.Query().Get("token") != token {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		c, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer c.Close()
		for _, m := range msgs {
			if err := c.WriteMessage(websocket.TextMessage, m); err != nil {
				return
			}
		}
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string { return "ws" + strings.TrimPrefix(srv.URL, "http") }

func TestDialStreamsMessages(t *testing.T) {
	death, _ := protocol.Encode(protocol.TypeActorDeath, protocol.ActorDeath{EntityID: 1, NpcID: 2})
	srv := feedServer(t, "s3cret", []byte("not json"), death)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	cl, err := Dial(ctx, wsURL(srv), "s3cret")
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	select {
	case m := <-cl.Messages():
		if m.Type != protocol.TypeActorDeath {
			t.Fatalf("got %q, malformed frame should be skipped", m.Type)
		}
	case <-ctx.Done():
		t.Fatal("no message")
	}
	if err := cl.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !cl.IsClosed() {
		t.Fatal("client not closed")
	}
}

func TestDialRejectedWithoutToken(t *testing.T) {
	srv := feedServer(t, "s3cret")
	_, err := Dial(context.Background(), wsURL(srv), "wrong")
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Fatalf("want 401 error, got %v", err)
	}
	if strings.Contains(err.Error(), "wrong") {
		t.Fatalf("token leaked into error: %v", err)
	}
}

func TestRunReconnects(t *testing.T) {
	var hits atomic.Int64
	up := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		n := hits.Add(1)
		b, _ := protocol.Encode(protocol.TypeNpcDespawned, protocol.NpcDespawned{EntityID: n})
		_ = c.WriteMessage(websocket.TextMessage, b)
		_ = c.Close()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	out := make(chan protocol.MsgEnvelope)
	done := make(chan struct{})
	go func() {
		Run(ctx, wsURL(srv), "", 10*time.Millisecond, out)
		close(done)
	}()

	for want := int64(1); want <= 2; want++ {
		select {
		case m := <-out:
			var d protocol.NpcDespawned
			if err := m.Decode(&d); err != nil || d.EntityID != want {
				t.Fatalf("message %d: %+v %v", want, d, err)
			}
		case <-ctx.Done():
			t.Fatal("timed out waiting for reconnect")
		}
	}
	cancel()
	<-done
}
