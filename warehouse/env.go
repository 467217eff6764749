package warehouse

import (
	"errors"
	"fmt"
	"log"

	"gonum.org/v1/gonum/floats"

	"github.com/pallman14/MARL-QMIX-Warehouse-Robots/types"
	"github.com/pallman14/MARL-QMIX-Warehouse-Robots/util"
)

var (
	// ErrClosed is returned by Reset and Step after Close.
	ErrClosed = errors.New("warehouse: environment is closed")
	// ErrNotStarted is returned by Step before the first Reset, when the
	// per-agent alignment is still undefined.
	ErrNotStarted = errors.New("warehouse: step before first reset")
	// ErrConnectionTimeout is returned when the simulation cannot be
	// reached within the configured bounded wait.
	ErrConnectionTimeout = errors.New("warehouse: simulation connection timed out")
)

// WarehouseEnv adapts the warehouse simulation to the multi-agent
// environment contract. It owns the only stateful connection to the
// simulation and converts between the simulation's per-agent batched
// representation and ordered fixed-cardinality observation lists.
//
// Not safe for concurrent use; one instance per training worker.
type WarehouseEnv struct {
	conn Connection
	cfg  Config

	behavior string
	nAgents  int
	nActions int
	obsShape int

	// decision set read back after the latest reset or tick; pure queries
	// derive observations from it without advancing the simulation
	lastDecision AgentSteps

	episodeLimit int
	episodeSteps int
	episodeCount int
	totalSteps   int

	started bool
	closed  bool
}

// NewWarehouseEnv connects the adapter to the simulation behind conn:
// applies the time scale, performs one blind reset and one blind tick so
// the simulation surfaces its controllable agents, and fixes the agent
// count, action cardinality and observation width for the lifetime of the
// adapter. Zero agents or an absent observation spec fall back to the
// configured defaults with a warning; every other fault is fatal.
func NewWarehouseEnv(cfg Config, conn Connection) (*WarehouseEnv, error) {
	if conn == nil {
		return nil, errors.New("warehouse: nil simulation connection")
	}
	cfg = cfg.withDefaults()
	e := &WarehouseEnv{
		conn:         conn,
		cfg:          cfg,
		episodeLimit: cfg.EpisodeLimit,
	}

	if err := conn.SetTimeScale(cfg.TimeScale); err != nil {
		conn.Close()
		return nil, fmt.Errorf("warehouse: set time scale: %w", err)
	}
	if err := conn.Reset(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("warehouse: initial reset: %w", err)
	}

	specs, err := conn.BehaviorSpecs()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("warehouse: behavior specs: %w", err)
	}
	if len(specs) == 0 {
		conn.Close()
		return nil, errors.New("warehouse: simulation exposes no behaviors")
	}
	spec := specs[0]
	e.behavior = spec.Name

	// one blind tick to force the agents to request their first decisions
	if err := conn.Step(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("warehouse: initial tick: %w", err)
	}
	decision, _, err := conn.GetSteps(e.behavior)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("warehouse: initial steps: %w", err)
	}
	e.lastDecision = decision

	e.nAgents = decision.Len()
	if e.nAgents == 0 {
		// transient startup race, not fatal
		log.Printf("warehouse: no agents found in first step, using default n_agents=%d", cfg.DefaultAgents)
		e.nAgents = cfg.DefaultAgents
	}

	if len(spec.ActionSpec.DiscreteBranches) == 0 {
		conn.Close()
		return nil, fmt.Errorf("warehouse: behavior %q declares no discrete actions", spec.Name)
	}
	e.nActions = spec.ActionSpec.DiscreteBranches[0]

	if len(spec.ObservationSpecs) > 0 && len(spec.ObservationSpecs[0].Shape) > 0 {
		e.obsShape = spec.ObservationSpecs[0].Shape[0]
	} else {
		log.Printf("warehouse: behavior %q declares no observation spec, using default obs_shape=%d", spec.Name, cfg.DefaultObsShape)
		e.obsShape = cfg.DefaultObsShape
	}

	log.Printf("warehouse: environment initialized: behavior=%s agents=%d actions=%d obs_shape=%d",
		e.behavior, e.nAgents, e.nActions, e.obsShape)
	return e, nil
}

// Reset restarts the simulation episode, zeroes the episode step counter
// and returns the fresh observation list and global state.
func (e *WarehouseEnv) Reset() ([][]float64, []float64, error) {
	if e.closed {
		return nil, nil, ErrClosed
	}
	if err := e.conn.Reset(); err != nil {
		return nil, nil, fmt.Errorf("warehouse: reset: %w", err)
	}
	e.episodeSteps = 0
	e.episodeCount++
	e.started = true

	decision, _, err := e.conn.GetSteps(e.behavior)
	if err != nil {
		return nil, nil, fmt.Errorf("warehouse: reset steps: %w", err)
	}
	e.lastDecision = decision

	return e.Obs(), e.State(), nil
}

// Step submits one discrete action per agent, advances the simulation by
// one tick and classifies the outcome. The team reward is the exact sum of
// the rewards reported by the still-active and freshly-terminal agent sets.
func (e *WarehouseEnv) Step(actions []int) (types.StepResult, error) {
	if e.closed {
		return types.StepResult{}, ErrClosed
	}
	if !e.started {
		return types.StepResult{}, ErrNotStarted
	}
	if len(actions) != e.nAgents {
		return types.StepResult{}, fmt.Errorf("warehouse: got %d actions for %d agents", len(actions), e.nAgents)
	}
	rows := make([][]int, len(actions))
	for i, a := range actions {
		if a < 0 || a >= e.nActions {
			return types.StepResult{}, fmt.Errorf("warehouse: action %d out of range [0, %d)", a, e.nActions)
		}
		rows[i] = []int{a}
	}

	// submit, advance, read back; strictly in that order
	if err := e.conn.SetActions(e.behavior, rows); err != nil {
		return types.StepResult{}, fmt.Errorf("warehouse: set actions: %w", err)
	}
	if err := e.conn.Step(); err != nil {
		return types.StepResult{}, fmt.Errorf("warehouse: step: %w", err)
	}
	decision, terminal, err := e.conn.GetSteps(e.behavior)
	if err != nil {
		return types.StepResult{}, fmt.Errorf("warehouse: read steps: %w", err)
	}
	e.lastDecision = decision

	reward := floats.Sum(decision.Rewards) + floats.Sum(terminal.Rewards)

	e.episodeSteps++
	e.totalSteps++

	terminated := terminal.Len() > 0
	truncated := e.episodeSteps >= e.episodeLimit && !terminated

	return types.StepResult{
		Obs:        e.Obs(),
		Reward:     reward,
		Terminated: terminated,
		Truncated:  truncated,
		Info: types.StepInfo{
			EpisodeSteps: e.episodeSteps,
			TotalSteps:   e.totalSteps,
		},
	}, nil
}

// Obs returns one observation vector per agent in agent order. Agents
// missing from the current decision set observe zero vectors.
func (e *WarehouseEnv) Obs() [][]float64 {
	e.mustBeOpen()
	obs := make([][]float64, e.nAgents)
	for i := range obs {
		if i < len(e.lastDecision.Obs) {
			obs[i] = util.PadVector(e.lastDecision.Obs[i], e.obsShape)
		} else {
			obs[i] = util.ZeroVector(e.obsShape)
		}
	}
	return obs
}

// ObsAgent returns the observation of one agent. An out-of-range index
// yields a zero vector rather than failing.
func (e *WarehouseEnv) ObsAgent(agentID int) []float64 {
	e.mustBeOpen()
	if agentID < 0 || agentID >= e.nAgents {
		return util.ZeroVector(e.obsShape)
	}
	return e.Obs()[agentID]
}

// State is the global state visible to a centralized critic: the
// concatenation of all per-agent observations in agent order.
func (e *WarehouseEnv) State() []float64 {
	e.mustBeOpen()
	state := make([]float64, 0, e.nAgents*e.obsShape)
	for _, o := range e.Obs() {
		state = append(state, o...)
	}
	return state
}

// AvailActions returns the availability mask for every agent. Every action
// is always legal in this domain, so the mask is all ones; if the
// simulation ever reports action constraints this is where they surface.
func (e *WarehouseEnv) AvailActions() [][]int {
	e.mustBeOpen()
	masks := make([][]int, e.nAgents)
	for i := range masks {
		masks[i] = util.OnesMask(e.nActions)
	}
	return masks
}

func (e *WarehouseEnv) AvailAgentActions(agentID int) []int {
	e.mustBeOpen()
	return util.OnesMask(e.nActions)
}

func (e *WarehouseEnv) NAgents() int  { return e.nAgents }
func (e *WarehouseEnv) NActions() int { return e.nActions }
func (e *WarehouseEnv) ObsSize() int  { return e.obsShape }
func (e *WarehouseEnv) StateSize() int {
	return e.nAgents * e.obsShape
}
func (e *WarehouseEnv) EpisodeLimit() int { return e.episodeLimit }
func (e *WarehouseEnv) EpisodeSteps() int { return e.episodeSteps }
func (e *WarehouseEnv) EpisodeCount() int { return e.episodeCount }
func (e *WarehouseEnv) TotalSteps() int   { return e.totalSteps }

// EnvInfo builds the static shape descriptor of this adapter.
func (e *WarehouseEnv) EnvInfo() types.EnvInfo {
	return types.EnvInfo{
		StateShape:   e.StateSize(),
		ObsShape:     e.obsShape,
		NActions:     e.nActions,
		NAgents:      e.nAgents,
		EpisodeLimit: e.episodeLimit,
	}
}

// Close releases the simulation connection. Calling Close again is a
// no-op; calling anything else afterwards is a programming error.
func (e *WarehouseEnv) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	return e.conn.Close()
}

func (e *WarehouseEnv) mustBeOpen() {
	if e.closed {
		panic("warehouse: use after Close")
	}
}
