package envs

import (
	"errors"
	"testing"

	"github.com/pallman14/MARL-QMIX-Warehouse-Robots/simserver"
)

func boolPtr(b bool) *bool { return &b }

func validArgs() Args {
	return Args{
		CommonReward:        boolPtr(true),
		RewardScalarisation: "sum",
		Sim:                 simserver.SimConfig{Seed: 7},
	}
}

func TestRegistryNames(t *testing.T) {
	names := Names()
	want := map[string]bool{"warehouse": false, "warehouse-local": false}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for n, seen := range want {
		if !seen {
			t.Errorf("environment %q not registered", n)
		}
	}
}

func TestNewUnknownEnv(t *testing.T) {
	if _, err := New("nonexistent", validArgs()); !errors.Is(err, ErrUnknownEnv) {
		t.Errorf("expected ErrUnknownEnv, got %v", err)
	}
}

func TestNewRejectsMissingRewardFlags(t *testing.T) {
	args := validArgs()
	args.CommonReward = nil
	if _, err := New("warehouse-local", args); !errors.Is(err, ErrMissingRewardFlags) {
		t.Errorf("expected ErrMissingRewardFlags, got %v", err)
	}

	args = validArgs()
	args.RewardScalarisation = ""
	if _, err := New("warehouse-local", args); !errors.Is(err, ErrMissingRewardFlags) {
		t.Errorf("expected ErrMissingRewardFlags, got %v", err)
	}
}

func TestNewRejectsGeneralSumReward(t *testing.T) {
	args := validArgs()
	args.CommonReward = boolPtr(false)
	if _, err := New("warehouse-local", args); !errors.Is(err, ErrCommonRewardRequired) {
		t.Errorf("expected ErrCommonRewardRequired, got %v", err)
	}
}

func TestNewWarehouseLocal(t *testing.T) {
	env, err := New("warehouse-local", validArgs())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer env.Close()

	info := env.GetEnvInfo()
	if info.NAgents != 4 {
		t.Errorf("expected 4 agents, got %d", info.NAgents)
	}
	if info.NActions != int(simserver.NumActions) {
		t.Errorf("expected %d actions, got %d", simserver.NumActions, info.NActions)
	}
	if info.ObsShape != 47 {
		t.Errorf("expected obs shape 47, got %d", info.ObsShape)
	}
	if info.StateShape != 4*47 {
		t.Errorf("expected state shape %d, got %d", 4*47, info.StateShape)
	}

	obs, state, err := env.Reset()
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if len(obs) != 4 || len(state) != 4*47 {
		t.Fatalf("expected 4 observations and state length %d, got %d and %d", 4*47, len(obs), len(state))
	}

	result, err := env.Step([]int{0, 0, 0, 0})
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if result.Terminated || result.Truncated {
		t.Error("episode ended on the first step")
	}
}

func TestArgsEpisodeLimitPropagates(t *testing.T) {
	args := validArgs()
	args.EpisodeLimit = 25
	env, err := New("warehouse-local", args)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer env.Close()

	if got := env.GetEnvInfo().EpisodeLimit; got != 25 {
		t.Errorf("expected episode limit 25, got %d", got)
	}
}
