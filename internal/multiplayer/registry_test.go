package multiplayer

import (
	"testing"
	"time"

	"github.com/vovakirdan/lanecross/internal/crossing"
)

func TestRegistryLifecycle(t *testing.T) {
	reg := NewSessionRegistry()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	w := crossing.NewWorld(crossing.DefaultGridWidth, crossing.DefaultGridHeight)
	w.Reset("42", -1)
	cell := &SnapshotCell{}
	cell.Store(w.Snapshot())

	reg.Register(SessionInfo{ID: "b", Mode: MatchModeSolo, Player: "bob", StartedAt: base}, SoloSource{Name: "bob", Cell: cell})
	reg.Register(SessionInfo{ID: "a", Mode: MatchModeSolo, Player: "amy", StartedAt: base}, SoloSource{Name: "amy", Cell: cell})
	reg.Register(SessionInfo{ID: "c", Mode: MatchModeVersus, StartedAt: base.Add(-time.Minute)}, newTestMatch("42", -1))

	if reg.Count() != 3 {
		t.Fatalf("Count() = %d, expected 3", reg.Count())
	}

	list := reg.List()
	order := []SessionID{list[0].ID, list[1].ID, list[2].ID}
	if order[0] != "c" || order[1] != "a" || order[2] != "b" {
		t.Errorf("List() order = %v, expected [c a b]", order)
	}

	f, ok := reg.Frame("a")
	if !ok {
		t.Fatal("Frame(a) not found")
	}
	if f.Session != "a" || f.Mode != MatchModeSolo || len(f.Players) != 1 {
		t.Errorf("frame = %+v", f)
	}
	if f.Players[0].Name != "amy" || f.Players[0].Snapshot.Seed != "4242424242" {
		t.Errorf("player frame = %+v", f.Players[0])
	}

	vf, _ := reg.Frame("c")
	if vf.Mode != MatchModeVersus || len(vf.Players) != 2 || vf.Outcome != OutcomePending {
		t.Errorf("versus frame = %+v", vf)
	}

	reg.Unregister("a")
	if _, ok := reg.Frame("a"); ok {
		t.Error("Frame(a) should be gone after Unregister")
	}
	if reg.Count() != 2 {
		t.Errorf("Count() = %d, expected 2", reg.Count())
	}
}
