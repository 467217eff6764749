package types

// EnvInfo is the static shape descriptor of a multi-agent environment.
// It is computed once when the environment is constructed and never
// recomputed; the training side reads it to build its networks before
// the first reset.
type EnvInfo struct {
	StateShape   int `json:"state_shape" yaml:"state_shape"`
	ObsShape     int `json:"obs_shape" yaml:"obs_shape"`
	NActions     int `json:"n_actions" yaml:"n_actions"`
	NAgents      int `json:"n_agents" yaml:"n_agents"`
	EpisodeLimit int `json:"episode_limit" yaml:"episode_limit"`
}

// StepInfo carries the step counters reported with every step result.
// EpisodeSteps resets to zero on reset, TotalSteps never does.
type StepInfo struct {
	EpisodeSteps int `json:"episode_steps"`
	TotalSteps   int `json:"total_steps"`
}

// StepResult is the normalized outcome of one environment tick.
// Terminated and Truncated are mutually exclusive: truncation is only
// reported when the episode hit its step horizon without ending naturally.
type StepResult struct {
	Obs        [][]float64
	Reward     float64
	Terminated bool
	Truncated  bool
	Info       StepInfo
}

// MultiAgentEnv is the environment contract consumed by the training side.
// Observations are fixed-width float vectors, one per agent, in a stable
// agent order. The global state is the concatenation of all observations
// in that order. Actions are discrete indices in [0, GetTotalActions()).
//
// Implementations are not safe for concurrent use: one environment instance
// is owned by exactly one caller.
type MultiAgentEnv interface {
	// Reset starts a new episode and returns the initial per-agent
	// observations and the global state.
	Reset() ([][]float64, []float64, error)
	// Step submits one action per agent and advances the environment by
	// one tick.
	Step(actions []int) (StepResult, error)

	GetObs() [][]float64
	GetObsAgent(agentID int) []float64
	GetObsSize() int
	GetState() []float64
	GetStateSize() int
	// GetAvailActions returns a 0/1 availability mask per agent per action.
	GetAvailActions() [][]int
	GetAvailAgentActions(agentID int) []int
	GetTotalActions() int
	GetEnvInfo() EnvInfo
	GetStats() map[string]float64
	// Seed seeds the environment's local randomness only; it does not
	// reach into the simulation's own determinism.
	Seed(seed int64)
	Render()
	SaveReplay()
	// Close releases the underlying simulation connection. Safe to call
	// more than once.
	Close() error
}
