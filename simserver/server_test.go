package simserver

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pallman14/MARL-QMIX-Warehouse-Robots/warehouse"
)

func startTestServer(t *testing.T, cfg SimConfig) *warehouse.RemoteConnection {
	t.Helper()
	srv := NewServer(context.Background(), 0, New(cfg))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	conn, err := warehouse.DialRemote(strings.TrimPrefix(ts.URL, "http://"), time.Second)
	if err != nil {
		t.Fatalf("DialRemote failed: %v", err)
	}
	return conn
}

func TestServerSpecsRoundTrip(t *testing.T) {
	conn := startTestServer(t, SimConfig{NumRobots: 3, ObsSize: 12, Seed: 7})
	defer conn.Close()

	specs, err := conn.BehaviorSpecs()
	if err != nil {
		t.Fatalf("BehaviorSpecs failed: %v", err)
	}
	if len(specs) != 1 || specs[0].Name != BehaviorName {
		t.Fatalf("expected behavior %q, got %v", BehaviorName, specs)
	}
	if specs[0].ActionSpec.DiscreteBranches[0] != int(NumActions) {
		t.Errorf("expected %d actions, got %v", NumActions, specs[0].ActionSpec.DiscreteBranches)
	}
	if specs[0].ObservationSpecs[0].Shape[0] != 12 {
		t.Errorf("expected obs shape 12, got %v", specs[0].ObservationSpecs)
	}
}

func TestServerStepsRoundTrip(t *testing.T) {
	conn := startTestServer(t, SimConfig{NumRobots: 2, ObsSize: 9, Seed: 7})
	defer conn.Close()

	if err := conn.SetTimeScale(20); err != nil {
		t.Fatalf("SetTimeScale failed: %v", err)
	}
	if err := conn.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if err := conn.SetActions(BehaviorName, [][]int{{int(ActionUp)}, {int(ActionStay)}}); err != nil {
		t.Fatalf("SetActions failed: %v", err)
	}
	if err := conn.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}

	decision, terminal, err := conn.GetSteps(BehaviorName)
	if err != nil {
		t.Fatalf("GetSteps failed: %v", err)
	}
	if decision.Len() != 2 {
		t.Errorf("expected 2 decision agents, got %d", decision.Len())
	}
	if terminal.Len() != 0 {
		t.Errorf("expected 0 terminal agents, got %d", terminal.Len())
	}
	for i, obs := range decision.Obs {
		if len(obs) != 9 {
			t.Errorf("robot %d: expected obs width 9, got %d", i, len(obs))
		}
	}
}

func TestServerDrivesAdapter(t *testing.T) {
	conn := startTestServer(t, SimConfig{NumRobots: 4, ObsSize: 15, Seed: 7})

	env, err := warehouse.NewWarehouseEnv(warehouse.Config{EpisodeLimit: 10}, conn)
	if err != nil {
		t.Fatalf("NewWarehouseEnv failed: %v", err)
	}
	defer env.Close()

	if env.NAgents() != 4 {
		t.Errorf("expected 4 agents, got %d", env.NAgents())
	}
	if env.NActions() != int(NumActions) {
		t.Errorf("expected %d actions, got %d", NumActions, env.NActions())
	}
	if env.ObsSize() != 15 {
		t.Errorf("expected obs size 15, got %d", env.ObsSize())
	}

	obs, state, err := env.Reset()
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if len(obs) != 4 || len(state) != 60 {
		t.Fatalf("expected 4 observations and state length 60, got %d and %d", len(obs), len(state))
	}

	result, err := env.Step([]int{0, 1, 2, 3})
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if len(result.Obs) != 4 {
		t.Errorf("expected 4 observations, got %d", len(result.Obs))
	}
	if result.Info.EpisodeSteps != 1 {
		t.Errorf("expected episode_steps 1, got %d", result.Info.EpisodeSteps)
	}
}

func TestDialRemoteTimeout(t *testing.T) {
	_, err := warehouse.DialRemote("localhost:1", 10*time.Millisecond)
	if !errors.Is(err, warehouse.ErrConnectionTimeout) {
		t.Fatalf("expected ErrConnectionTimeout, got %v", err)
	}
}
