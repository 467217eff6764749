package types

import (
	"testing"
)

// stubEnv terminates after a fixed number of steps and counts the calls it
// receives.
type stubEnv struct {
	nAgents    int
	nActions   int
	obsShape   int
	endAfter   int
	stepReward float64

	steps  int
	resets int
}

var _ MultiAgentEnv = &stubEnv{}

func (s *stubEnv) obs() [][]float64 {
	obs := make([][]float64, s.nAgents)
	for i := range obs {
		obs[i] = make([]float64, s.obsShape)
	}
	return obs
}

func (s *stubEnv) Reset() ([][]float64, []float64, error) {
	s.resets++
	s.steps = 0
	return s.obs(), make([]float64, s.nAgents*s.obsShape), nil
}

func (s *stubEnv) Step(actions []int) (StepResult, error) {
	s.steps++
	return StepResult{
		Obs:        s.obs(),
		Reward:     s.stepReward,
		Terminated: s.steps >= s.endAfter,
		Info:       StepInfo{EpisodeSteps: s.steps, TotalSteps: s.steps},
	}, nil
}

func (s *stubEnv) GetObs() [][]float64          { return s.obs() }
func (s *stubEnv) GetObsAgent(int) []float64    { return make([]float64, s.obsShape) }
func (s *stubEnv) GetObsSize() int              { return s.obsShape }
func (s *stubEnv) GetState() []float64          { return make([]float64, s.nAgents*s.obsShape) }
func (s *stubEnv) GetStateSize() int            { return s.nAgents * s.obsShape }
func (s *stubEnv) GetAvailActions() [][]int {
	masks := make([][]int, s.nAgents)
	for i := range masks {
		mask := make([]int, s.nActions)
		for a := range mask {
			mask[a] = 1
		}
		masks[i] = mask
	}
	return masks
}
func (s *stubEnv) GetAvailAgentActions(int) []int {
	mask := make([]int, s.nActions)
	for a := range mask {
		mask[a] = 1
	}
	return mask
}
func (s *stubEnv) GetTotalActions() int { return s.nActions }
func (s *stubEnv) GetEnvInfo() EnvInfo {
	return EnvInfo{
		StateShape:   s.nAgents * s.obsShape,
		ObsShape:     s.obsShape,
		NActions:     s.nActions,
		NAgents:      s.nAgents,
		EpisodeLimit: s.endAfter,
	}
}
func (s *stubEnv) GetStats() map[string]float64 { return map[string]float64{} }
func (s *stubEnv) Seed(int64)                   {}
func (s *stubEnv) Render()                      {}
func (s *stubEnv) SaveReplay()                  {}
func (s *stubEnv) Close() error                 { return nil }

func TestAgentRun(t *testing.T) {
	env := &stubEnv{nAgents: 2, nActions: 3, obsShape: 4, endAfter: 5, stepReward: 1}
	agent := NewAgent(&AgentConfig{
		Episodes:    3,
		Policy:      NewRandomPolicy(),
		Environment: env,
	})
	if err := agent.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if env.resets != 3 {
		t.Errorf("expected 3 resets, got %d", env.resets)
	}
	for i, trace := range agent.traces {
		if trace.Len() != 5 {
			t.Errorf("episode %d: expected 5 transitions, got %d", i, trace.Len())
		}
		if !trace.Terminated() {
			t.Errorf("episode %d: expected natural termination", i)
		}
		if trace.Return() != 5 {
			t.Errorf("episode %d: expected return 5, got %f", i, trace.Return())
		}
	}
}

func TestAgentHorizonCutsEpisode(t *testing.T) {
	env := &stubEnv{nAgents: 2, nActions: 3, obsShape: 4, endAfter: 100}
	agent := NewAgent(&AgentConfig{
		Episodes:    1,
		Horizon:     7,
		Policy:      NewRandomPolicy(),
		Environment: env,
	})
	if err := agent.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if agent.traces[0].Len() != 7 {
		t.Errorf("expected 7 transitions, got %d", agent.traces[0].Len())
	}
	if agent.traces[0].Terminated() {
		t.Error("horizon-cut episode reported as terminated")
	}
}

func TestTrace(t *testing.T) {
	trace := NewTrace()
	if _, ok := trace.Last(); ok {
		t.Error("expected no last transition on an empty trace")
	}
	if trace.Return() != 0 {
		t.Errorf("expected zero return, got %f", trace.Return())
	}

	obs := [][]float64{{1}, {2}}
	trace.Append(obs, []int{0, 1}, StepResult{Reward: 1.5})
	trace.Append(obs, []int{1, 0}, StepResult{Reward: -0.5, Truncated: true})

	if trace.Len() != 2 {
		t.Fatalf("expected 2 transitions, got %d", trace.Len())
	}
	if trace.Return() != 1.0 {
		t.Errorf("expected return 1.0, got %f", trace.Return())
	}
	if trace.Terminated() {
		t.Error("expected not terminated")
	}
	if !trace.Truncated() {
		t.Error("expected truncated")
	}
	if _, ok := trace.Get(2); ok {
		t.Error("expected out-of-range Get to fail")
	}
	tr, ok := trace.Get(0)
	if !ok || tr.Result.Reward != 1.5 {
		t.Errorf("unexpected first transition: %v %v", tr, ok)
	}
}

func TestRandomPolicyRespectsMask(t *testing.T) {
	policy := NewRandomPolicy()
	avail := [][]int{
		{0, 1, 0},
		{0, 0, 1},
		{0, 0, 0},
	}
	for i := 0; i < 20; i++ {
		actions := policy.NextActions(0, nil, avail)
		if actions[0] != 1 {
			t.Fatalf("agent 0: expected action 1, got %d", actions[0])
		}
		if actions[1] != 2 {
			t.Fatalf("agent 1: expected action 2, got %d", actions[1])
		}
		if actions[2] != 0 {
			t.Fatalf("agent 2: expected fallback action 0, got %d", actions[2])
		}
	}
}
