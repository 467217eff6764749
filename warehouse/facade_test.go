package warehouse

import (
	"testing"

	"github.com/pallman14/MARL-QMIX-Warehouse-Robots/types"
)

func newTestWarehouse(t *testing.T, nAgents, nActions, obsShape int) (*Warehouse, *fakeConn) {
	t.Helper()
	conn := newFakeConn(nAgents, nActions, obsShape)
	env := newTestEnv(t, conn, Config{})
	return NewWarehouse(env), conn
}

func TestWarehouseEnvInfo(t *testing.T) {
	w, _ := newTestWarehouse(t, 4, 6, 47)

	want := types.EnvInfo{
		StateShape:   188,
		ObsShape:     47,
		NActions:     6,
		NAgents:      4,
		EpisodeLimit: DefaultEpisodeLimit,
	}
	if got := w.GetEnvInfo(); got != want {
		t.Errorf("expected env info %+v, got %+v", want, got)
	}
}

func TestWarehouseEnvInfoIsCached(t *testing.T) {
	w, conn := newTestWarehouse(t, 4, 6, 47)
	before := w.GetEnvInfo()

	// the live agent count drops mid-episode, the descriptor must not move
	if _, _, err := w.Reset(); err != nil {
		t.Fatal(err)
	}
	conn.onStep = func(f *fakeConn) {
		f.decision = makeSteps(2, 47, 0.1, 0)
	}
	if _, err := w.Step([]int{0, 0, 0, 0}); err != nil {
		t.Fatal(err)
	}

	if after := w.GetEnvInfo(); after != before {
		t.Errorf("env info changed from %+v to %+v", before, after)
	}
}

func TestWarehouseDelegation(t *testing.T) {
	w, _ := newTestWarehouse(t, 3, 5, 7)
	if _, _, err := w.Reset(); err != nil {
		t.Fatal(err)
	}

	if w.GetObsSize() != 7 {
		t.Errorf("expected obs size 7, got %d", w.GetObsSize())
	}
	if w.GetStateSize() != 21 {
		t.Errorf("expected state size 21, got %d", w.GetStateSize())
	}
	if w.GetTotalActions() != 5 {
		t.Errorf("expected 5 actions, got %d", w.GetTotalActions())
	}
	if len(w.GetObs()) != 3 {
		t.Errorf("expected 3 observations, got %d", len(w.GetObs()))
	}
	if len(w.GetState()) != 21 {
		t.Errorf("expected state length 21, got %d", len(w.GetState()))
	}
	if len(w.GetAvailActions()) != 3 {
		t.Errorf("expected 3 masks, got %d", len(w.GetAvailActions()))
	}
	if len(w.GetAvailAgentActions(0)) != 5 {
		t.Errorf("expected mask length 5, got %d", len(w.GetAvailAgentActions(0)))
	}
	if len(w.GetObsAgent(1)) != 7 {
		t.Errorf("expected obs length 7, got %d", len(w.GetObsAgent(1)))
	}
}

func TestWarehouseStubs(t *testing.T) {
	w, conn := newTestWarehouse(t, 2, 3, 4)

	if stats := w.GetStats(); len(stats) != 0 {
		t.Errorf("expected empty stats, got %v", stats)
	}
	w.Seed(42)
	w.Render()
	w.SaveReplay()

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if conn.closes != 1 {
		t.Errorf("expected connection closed once, got %d", conn.closes)
	}
}
