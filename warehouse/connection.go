package warehouse

// ActionSpec describes the discrete action layout of one behavior. Each
// branch is an independent discrete choice; this adapter only consumes the
// first branch.
type ActionSpec struct {
	DiscreteBranches []int `json:"discrete_branches"`
}

// ObservationSpec describes one observation component declared by a
// behavior. Only vector components (rank-1 shapes) are consumed here.
type ObservationSpec struct {
	Shape []int `json:"shape"`
}

// BehaviorSpec describes a named decision-requesting behavior exposed by
// the simulation.
type BehaviorSpec struct {
	Name             string            `json:"name"`
	ActionSpec       ActionSpec        `json:"action_spec"`
	ObservationSpecs []ObservationSpec `json:"observation_specs"`
}

// AgentSteps is the per-agent payload the simulation reports for one tick:
// agent identifiers, one observation vector per agent and one reward per
// agent, all in the same order.
type AgentSteps struct {
	AgentIDs []int       `json:"agent_ids"`
	Obs      [][]float64 `json:"obs"`
	Rewards  []float64   `json:"rewards"`
}

func (s AgentSteps) Len() int {
	return len(s.AgentIDs)
}

// Connection is the transport surface the simulation must satisfy. The
// adapter is the exclusive owner of a connection: calls are strictly
// ordered (set actions, step, read steps back) and never overlap.
//
// Implementations block until the simulation acknowledges the call. The
// only bounded wait is connection establishment; a stalled tick blocks.
type Connection interface {
	// BehaviorSpecs lists the decision-requesting behaviors the simulation
	// currently exposes.
	BehaviorSpecs() ([]BehaviorSpec, error)
	// SetTimeScale applies the time-acceleration factor to the simulation.
	SetTimeScale(scale float64) error
	// Reset restarts the simulation episode.
	Reset() error
	// SetActions queues one discrete action row per pending agent of the
	// behavior, to be consumed by the next Step.
	SetActions(behavior string, actions [][]int) error
	// Step advances the simulation by exactly one tick.
	Step() error
	// GetSteps reads back the decision-requesting and terminal agent sets
	// of the behavior for the current tick, without advancing it.
	GetSteps(behavior string) (decision AgentSteps, terminal AgentSteps, err error)
	// Close releases the connection. Must be idempotent.
	Close() error
}
