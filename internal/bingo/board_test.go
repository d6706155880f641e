package bingo

import (
	"encoding/json"
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/j3kstrum/runelite-bingo/internal/combat"
	"github.com/j3kstrum/runelite-bingo/internal/tasks"
)

// stubTask is a test implementation of tasks.Task
type stubTask struct{ done bool }

func (s *stubTask) Kind() tasks.Kind { return "stub" }
func (s *stubTask) Complete() bool { return s.done }
func (s *stubTask) Progress() (int, int) { return 0, 1 }
func (s *stubTask) Description() string { return "stub" }
func (s *stubTask) Icon() string { return "" }
func (s *stubTask) Record() tasks.Record { return tasks.Record{Type: "stub"} }
func (s *stubTask) Detach() {}

func boardWith(t *testing.T, done ...[2]int) *Board {
	t.Helper()
	var cells [Size][Size]tasks.Task
	for r := range cells {
		for c := range cells[r] {
			cells[r][c] = &stubTask{}
		}
	}
	for _, rc := range done {
		cells[rc[0]][rc[1]].(*stubTask).done = true
	}
	b, err := New(cells)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b
}

func TestWinDetection(t *testing.T) {
	cases := []struct {
		name string
		done [][2]int
		want bool
		line Line
	}{
		{"empty", nil, false, Line{}},
		{"top row", [][2]int{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}}, true, Line{LineRow, 0}},
		{"last column", [][2]int{{0, 4}, {1, 4}, {2, 4}, {3, 4}, {4, 4}}, true, Line{LineColumn, 4}},
		{"diagonal missing corner", [][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}}, false, Line{}},
		{"diagonal", [][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 4}}, true, Line{LineDiagonal, 0}},
		{"anti-diagonal", [][2]int{{0, 4}, {1, 3}, {2, 2}, {3, 1}, {4, 0}}, true, Line{LineAntiDiagonal, 0}},
		{"four corners", [][2]int{{0, 0}, {0, 4}, {4, 0}, {4, 4}}, false, Line{}},
		{"broken row", [][2]int{{2, 0}, {2, 1}, {2, 3}, {2, 4}}, false, Line{}},
	}
	for _, tc := range cases {
		b := boardWith(t, tc.done...)
		if got := b.Complete(); got != tc.want {
			t.Errorf("%s: Complete() = %v, want %v", tc.name, got, tc.want)
		}
		line, ok := b.WinningLine()
		if ok != tc.want || line != tc.line {
			t.Errorf("%s: WinningLine() = %+v %v, want %+v", tc.name, line, ok, tc.line)
		}
	}
}

// Every 5x5 completion matrix agrees with a brute-force line check.
func TestWinDetectionMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 0; n < 2000; n++ {
		var grid [Size][Size]bool
		var done [][2]int
		for r := 0; r < Size; r++ {
			for c := 0; c < Size; c++ {
				if rng.Intn(3) > 0 {
					grid[r][c] = true
					done = append(done, [2]int{r, c})
				}
			}
		}
		want := false
		for _, l := range allLines() {
			all := true
			for _, rc := range l.Cells() {
				all = all && grid[rc[0]][rc[1]]
			}
			want = want || all
		}
		if got := boardWith(t, done...).Complete(); got != want {
			t.Fatalf("grid %v: Complete() = %v, want %v", grid, got, want)
		}
	}
}

func allLines() []Line {
	var out []Line
	for i := 0; i < Size; i++ {
		out = append(out, Line{LineRow, i}, Line{LineColumn, i})
	}
	return append(out, Line{Kind: LineDiagonal}, Line{Kind: LineAntiDiagonal})
}

func TestNewRejectsEmptyCell(t *testing.T) {
	var cells [Size][Size]tasks.Task
	if _, err := New(cells); !errors.Is(err, ErrGridShape) {
		t.Fatalf("want ErrGridShape, got %v", err)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	for _, cancelled := range []bool{false, true} {
		rng := rand.New(rand.NewSource(42))
		b, err := Random(rng, tasks.Env{})
		if err != nil {
			t.Fatalf("Random: %v", err)
		}
		// finish a few cells so the snapshot mixes states
		for i := 0; i < Size; i++ {
			ct := b.Task(i, (i*2)%Size).(*tasks.Combat)
			for !ct.Complete() {
				ct.OnKill(combat.Kill{Class: ct.Target().Classes()[0], Damage: ct.Target().TotalHealth})
			}
		}
		if cancelled {
			b.Cancel()
		}

		snap := b.Snapshot()
		raw, err := json.Marshal(snap)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var decoded Snapshot
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		loaded, err := Load(decoded, tasks.Env{})
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if !reflect.DeepEqual(loaded.Snapshot(), snap) {
			t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", loaded.Snapshot(), snap)
		}
		if loaded.ID() != b.ID() || loaded.Cancelled() != cancelled {
			t.Fatalf("identity lost: id %v/%v cancelled %v", loaded.ID(), b.ID(), loaded.Cancelled())
		}
		if loaded.Completed() != b.Completed() {
			t.Fatalf("completed cells: got %d want %d", loaded.Completed(), b.Completed())
		}
	}
}

func TestLoadAssignsMissingID(t *testing.T) {
	rec := tasks.Record{Type: tasks.KindCombat, Target: "Goblin", Required: 2, Current: 1}
	snap := Snapshot{Cancelled: true, Tasks: make([][]tasks.Record, Size)}
	for r := range snap.Tasks {
		snap.Tasks[r] = []tasks.Record{rec, rec, rec, rec, rec}
	}

	b, err := Load(snap, tasks.Env{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := b.Snapshot()
	if got.ID == "" || got.ID != b.ID().String() {
		t.Fatalf("want a fresh id, got %q", got.ID)
	}
	again := got
	got.ID = ""
	if !reflect.DeepEqual(got, snap) {
		t.Fatalf("fields other than id changed:\n got %+v\nwant %+v", got, snap)
	}

	// once assigned the id round-trips exactly
	reloaded, err := Load(again, tasks.Env{})
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reflect.DeepEqual(reloaded.Snapshot(), again) {
		t.Fatalf("reload changed the snapshot:\n got %+v\nwant %+v", reloaded.Snapshot(), again)
	}
}

func TestLoadFailsFast(t *testing.T) {
	good := tasks.Record{Type: tasks.KindCombat, Target: "Cow", Required: 1}
	grid := func() [][]tasks.Record {
		g := make([][]tasks.Record, Size)
		for r := range g {
			g[r] = []tasks.Record{good, good, good, good, good}
		}
		return g
	}

	short := grid()[:4]
	ragged := grid()
	ragged[3] = ragged[3][:2]
	badType := grid()
	badType[2][2] = tasks.Record{Type: "quest", Target: "Cow", Required: 1}
	badTarget := grid()
	badTarget[4][0] = tasks.Record{Type: tasks.KindCombat, Target: "Jad", Required: 1}

	cases := []struct {
		name string
		snap Snapshot
		want error
	}{
		{"short grid", Snapshot{Tasks: short}, ErrGridShape},
		{"ragged row", Snapshot{Tasks: ragged}, ErrGridShape},
		{"unknown type", Snapshot{Tasks: badType}, tasks.ErrUnknownTaskType},
		{"unknown target", Snapshot{Tasks: badTarget}, tasks.ErrUnknownTarget},
	}
	for _, tc := range cases {
		tr := combat.NewTracker()
		_, err := Load(tc.snap, tasks.Env{Kills: tr})
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: want %v, got %v", tc.name, tc.want, err)
		}
		if tr.Listeners() != 0 {
			t.Errorf("%s: failed load left %d listeners behind", tc.name, tr.Listeners())
		}
	}
}

func TestCancelDetachesTasks(t *testing.T) {
	tr := combat.NewTracker()
	b, err := Random(rand.New(rand.NewSource(1)), tasks.Env{Kills: tr})
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	if tr.Listeners() != Size*Size {
		t.Fatalf("want %d listeners, got %d", Size*Size, tr.Listeners())
	}
	b.Cancel()
	if tr.Listeners() != 0 || !b.Cancelled() {
		t.Fatalf("cancel should detach all tasks, %d left", tr.Listeners())
	}

	loaded, err := Load(b.Snapshot(), tasks.Env{Kills: tr})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tr.Listeners() != 0 || !loaded.Cancelled() {
		t.Fatalf("cancelled board must not listen after load, %d listeners", tr.Listeners())
	}
}
