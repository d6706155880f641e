package app

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"go.uber.org/mock/gomock"

	"github.com/j3kstrum/runelite-bingo/internal/audio"
	"github.com/j3kstrum/runelite-bingo/internal/bingo"
	"github.com/j3kstrum/runelite-bingo/internal/store/mocks"
	"github.com/j3kstrum/runelite-bingo/internal/tasks"
	"github.com/j3kstrum/runelite-bingo/shared/protocol"
)

type countingSink struct{ n int }

func (s *countingSink) Play(beep.Streamer) { s.n++ }

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

// cowBoard is a board of single cow kills. The first cell of the top row is
// open when nearlyDone is set, every other top row cell is finished.
func cowBoard(nearlyDone bool) bingo.Snapshot {
	return cowsBoard(1, nearlyDone)
}

// cowsBoard asks for required cows per cell, so one kill never finishes it
// unless nearlyDone leaves a single kill missing on the top row.
func cowsBoard(required int, nearlyDone bool) bingo.Snapshot {
	s := bingo.Snapshot{Tasks: make([][]tasks.Record, bingo.Size)}
	for r := range s.Tasks {
		row := make([]tasks.Record, bingo.Size)
		for c := range row {
			row[c] = tasks.Record{Type: tasks.KindCombat, Target: "Cow", Required: required}
			if nearlyDone && r == 0 && c > 0 {
				row[c].Current = required
			}
		}
		s.Tasks[r] = row
	}
	return s
}

func envelope(t *testing.T, typ string, v any) protocol.MsgEnvelope {
	t.Helper()
	data, err := protocol.Encode(typ, v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var m protocol.MsgEnvelope
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	return m
}

func killCow(t *testing.T, s *Session, id int64) {
	t.Helper()
	s.Handle(envelope(t, protocol.TypeHitsplat, protocol.Hitsplat{EntityID: id, Amount: 8, Mine: true}))
	s.Handle(envelope(t, protocol.TypeActorDeath, protocol.ActorDeath{EntityID: id, NpcID: 2790}))
}

func newSession(t *testing.T, st *mocks.MockStore, sink audio.Sink, clk *clock) *Session {
	t.Helper()
	s, err := New(context.Background(), Options{
		Store: st,
		Sink:  sink,
		Sound: true,
		Seed:  7,
		Now:   clk.now,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestLoadSkipsAbandonedBoards(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	abandoned := cowBoard(false)
	abandoned.Cancelled = true
	st.EXPECT().Load(gomock.Any()).Return([]bingo.Snapshot{abandoned, cowBoard(false)}, nil)

	s := newSession(t, st, nil, &clock{})
	if n := len(s.Overlay().Boards()); n != 1 {
		t.Fatalf("loaded %d boards, want 1", n)
	}
	if n := s.Tracker().Listeners(); n != bingo.Size*bingo.Size {
		t.Fatalf("%d listeners, want %d", n, bingo.Size*bingo.Size)
	}
}

func TestLoadFailures(t *testing.T) {
	ctrl := gomock.NewController(t)

	broken := mocks.NewMockStore(ctrl)
	bad := cowBoard(false)
	bad.Tasks = bad.Tasks[:3]
	broken.EXPECT().Load(gomock.Any()).Return([]bingo.Snapshot{cowBoard(false), bad}, nil)
	if _, err := New(context.Background(), Options{Store: broken}); !errors.Is(err, bingo.ErrGridShape) {
		t.Fatalf("corrupt board: err = %v", err)
	}

	failing := mocks.NewMockStore(ctrl)
	boom := errors.New("disk gone")
	failing.EXPECT().Load(gomock.Any()).Return(nil, boom)
	if _, err := New(context.Background(), Options{Store: failing}); !errors.Is(err, boom) {
		t.Fatalf("load error: err = %v", err)
	}

	if _, err := New(context.Background(), Options{}); err == nil {
		t.Fatal("expected error without a store")
	}
}

func TestKillCompletesBoard(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	st.EXPECT().Load(gomock.Any()).Return([]bingo.Snapshot{cowBoard(true)}, nil)
	var saved []bingo.Snapshot
	st.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, b []bingo.Snapshot) error {
		saved = b
		return nil
	}).Times(1)

	sink := &countingSink{}
	clk := &clock{t: time.Unix(1000, 0)}
	s := newSession(t, st, sink, clk)

	killCow(t, s, 11)
	s.Tick(context.Background())

	if sink.n != 1 {
		t.Fatalf("chime played %d times, want 1", sink.n)
	}
	if got := s.Status(); got != "Bingo!" {
		t.Fatalf("status = %q", got)
	}
	if len(saved) != 1 || saved[0].Tasks[0][0].Current != 1 {
		t.Fatalf("saved %+v", saved)
	}

	// announced once; nothing left to save
	s.Tick(context.Background())
	if sink.n != 1 {
		t.Fatalf("chime replayed: %d", sink.n)
	}

	clk.t = clk.t.Add(statusTTL + time.Millisecond)
	if got := s.Status(); got != "" {
		t.Fatalf("status did not expire: %q", got)
	}
}

func TestFirstLoginCreatesBoard(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	st.EXPECT().Load(gomock.Any()).Return(nil, nil)
	st.EXPECT().Save(gomock.Any(), gomock.Len(1)).Return(nil).Times(1)

	clk := &clock{t: time.Unix(1000, 0)}
	s := newSession(t, st, nil, clk)

	s.Handle(envelope(t, protocol.TypeGameState, protocol.GameState{State: protocol.StateLoggingIn}))
	if n := len(s.Overlay().Boards()); n != 0 {
		t.Fatalf("board created before login: %d", n)
	}
	login := envelope(t, protocol.TypeGameState, protocol.GameState{State: protocol.StateLoggedIn})
	s.Handle(login)
	s.Handle(login)
	if n := len(s.Overlay().Boards()); n != 1 {
		t.Fatalf("%d boards after login, want 1", n)
	}
	s.Tick(context.Background())
}

func TestSaveIsThrottled(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	st.EXPECT().Load(gomock.Any()).Return([]bingo.Snapshot{cowsBoard(5, false)}, nil)
	var progress []int
	st.EXPECT().Save(gomock.Any(), gomock.Len(1)).DoAndReturn(func(_ context.Context, b []bingo.Snapshot) error {
		progress = append(progress, b[0].Tasks[0][0].Current)
		return nil
	}).Times(2)

	clk := &clock{t: time.Unix(1000, 0)}
	s := newSession(t, st, nil, clk)

	// nothing changed yet
	s.Tick(context.Background())

	killCow(t, s, 1)
	s.Tick(context.Background())

	clk.t = clk.t.Add(saveInterval / 2)
	killCow(t, s, 2)
	s.Tick(context.Background())
	if len(progress) != 1 {
		t.Fatalf("saved %d times within the interval, want 1", len(progress))
	}

	clk.t = clk.t.Add(saveInterval)
	s.Tick(context.Background())
	s.Tick(context.Background())

	if len(progress) != 2 || progress[0] != 1 || progress[1] != 2 {
		t.Fatalf("saved progress %v, want [1 2]", progress)
	}
	if s.Overlay().Boards()[0].Complete() {
		t.Fatal("two kills must not finish a board of five-cow tasks")
	}
}

func TestFailedSaveStaysDirty(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	st.EXPECT().Load(gomock.Any()).Return([]bingo.Snapshot{cowsBoard(5, false)}, nil)
	gomock.InOrder(
		st.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("read-only")),
		st.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, b []bingo.Snapshot) error {
			if got := b[0].Tasks[0][0].Current; got != 1 {
				t.Errorf("flushed progress %d, want 1", got)
			}
			return nil
		}),
		st.EXPECT().Close().Return(nil),
	)

	clk := &clock{t: time.Unix(1000, 0)}
	s := newSession(t, st, nil, clk)
	killCow(t, s, 1)
	s.Tick(context.Background())
	// retried only once the interval passed; Close flushes first
	s.Tick(context.Background())
	if n := s.Tracker().Listeners(); n != bingo.Size*bingo.Size {
		t.Fatalf("%d listeners before close, want %d", n, bingo.Size*bingo.Size)
	}

	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if n := s.Tracker().Listeners(); n != 0 {
		t.Fatalf("%d listeners after close", n)
	}
}

func TestSettingsTogglesSound(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	st.EXPECT().Load(gomock.Any()).Return(nil, nil)

	sink := &countingSink{}
	s := newSession(t, st, sink, &clock{t: time.Unix(1000, 0)})
	s.toggleSound()
	if s.Chime().Enabled() || s.Status() != "Sound off" {
		t.Fatalf("enabled=%v status=%q", s.Chime().Enabled(), s.Status())
	}
	s.toggleSound()
	if !s.Chime().Enabled() || s.Status() != "Sound on" {
		t.Fatalf("enabled=%v status=%q", s.Chime().Enabled(), s.Status())
	}
}

func TestExportActiveBoard(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	st.EXPECT().Load(gomock.Any()).Return(nil, nil)

	s := newSession(t, st, nil, &clock{})
	if _, err := s.Export(); !errors.Is(err, ErrNoBoard) {
		t.Fatalf("Export without boards: %v", err)
	}
	if err := s.Overlay().AddNew(); err != nil {
		t.Fatalf("AddNew: %v", err)
	}
	out, err := s.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	var snap bingo.Snapshot
	if err := json.Unmarshal([]byte(out), &snap); err != nil {
		t.Fatalf("exported JSON: %v", err)
	}
	if len(snap.Tasks) != bingo.Size || !strings.Contains(out, `"taskType": "combat"`) {
		t.Fatalf("unexpected export:\n%s", out)
	}
}
