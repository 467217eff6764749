package simserver

import (
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/pallman14/MARL-QMIX-Warehouse-Robots/warehouse"
)

// BehaviorName is the single decision-requesting behavior this simulation
// exposes.
const BehaviorName = "WarehouseRobot"

// RobotAction is one discrete action a robot can take in a tick.
type RobotAction int

const (
	ActionStay RobotAction = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	// ActionInteract picks a package up from the robot's cell, or drops it
	// off when the robot is carrying one and standing on its drop cell.
	ActionInteract

	NumActions
)

// reward constants of the warehouse task
const (
	stepPenalty    = -0.01
	pickupReward   = 1.0
	deliveryReward = 5.0
)

type SimConfig struct {
	Width       int   `yaml:"width"`
	Height      int   `yaml:"height"`
	NumRobots   int   `yaml:"num_robots"`
	NumPackages int   `yaml:"num_packages"`
	ObsSize     int   `yaml:"obs_size"`
	Seed        int64 `yaml:"seed"`
}

func (c SimConfig) withDefaults() SimConfig {
	if c.Width == 0 {
		c.Width = 10
	}
	if c.Height == 0 {
		c.Height = 10
	}
	if c.NumRobots == 0 {
		c.NumRobots = 4
	}
	if c.NumPackages == 0 {
		c.NumPackages = 8
	}
	if c.ObsSize == 0 {
		c.ObsSize = 47
	}
	return c
}

type Robot struct {
	ID int
	X  int
	Y  int
	// Carrying holds the id of the loaded package, empty when unloaded.
	Carrying string

	reward   float64
	terminal bool
}

type Package struct {
	ID        string
	X         int
	Y         int
	DropX     int
	DropY     int
	Carried   bool
	Delivered bool
}

// Simulation is the warehouse world: a grid of robots that pick packages
// up and deliver them to their drop cells. The episode ends naturally when
// every package is delivered.
type Simulation struct {
	cfg SimConfig
	rng *rand.Rand

	timeScale float64

	robots   []*Robot
	packages []*Package
	pending  [][]int
	tick     int
	done     bool

	lastDecision warehouse.AgentSteps
	lastTerminal warehouse.AgentSteps

	// the HTTP surface serves handlers concurrently
	mu sync.Mutex
}

func New(cfg SimConfig) *Simulation {
	cfg = cfg.withDefaults()
	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}
	s := &Simulation{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
	s.reset()
	return s
}

// Specs describes the behavior this simulation exposes.
func (s *Simulation) Specs() []warehouse.BehaviorSpec {
	s.mu.Lock()
	defer s.mu.Unlock()
	return []warehouse.BehaviorSpec{
		{
			Name: BehaviorName,
			ActionSpec: warehouse.ActionSpec{
				DiscreteBranches: []int{int(NumActions)},
			},
			ObservationSpecs: []warehouse.ObservationSpec{
				{Shape: []int{s.cfg.ObsSize}},
			},
		},
	}
}

// SetTimeScale records the requested acceleration factor. The world is
// tick-driven, so the factor has no wall-clock meaning here; it is kept
// for parity with simulations that do render in real time.
func (s *Simulation) SetTimeScale(scale float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeScale = scale
}

func (s *Simulation) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Simulation) reset() {
	s.robots = make([]*Robot, s.cfg.NumRobots)
	for i := range s.robots {
		s.robots[i] = &Robot{
			ID: i,
			X:  s.rng.Intn(s.cfg.Width),
			Y:  s.rng.Intn(s.cfg.Height),
		}
	}
	s.packages = make([]*Package, s.cfg.NumPackages)
	for i := range s.packages {
		s.packages[i] = &Package{
			ID:    uuid.NewString(),
			X:     s.rng.Intn(s.cfg.Width),
			Y:     s.rng.Intn(s.cfg.Height),
			DropX: s.rng.Intn(s.cfg.Width),
			DropY: s.rng.Intn(s.cfg.Height),
		}
	}
	s.pending = nil
	s.tick = 0
	s.done = false
	s.buildSteps()
}

// SetActions queues one discrete action row per pending robot for the next
// tick.
func (s *Simulation) SetActions(behavior string, actions [][]int) {
	if behavior != BehaviorName {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = actions
}

// Step advances the world by one tick, applying the queued actions.
func (s *Simulation) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		// terminal state is sticky until the next reset
		s.buildSteps()
		return
	}

	for _, r := range s.robots {
		r.reward = stepPenalty
		r.terminal = false
	}

	for i, r := range s.robots {
		action := ActionStay
		if i < len(s.pending) && len(s.pending[i]) > 0 {
			action = RobotAction(s.pending[i][0])
		}
		s.apply(r, action)
	}
	s.pending = nil
	s.tick++

	delivered := 0
	for _, p := range s.packages {
		if p.Delivered {
			delivered++
		}
	}
	if delivered == len(s.packages) {
		s.done = true
		for _, r := range s.robots {
			r.terminal = true
		}
	}
	s.buildSteps()
}

func (s *Simulation) apply(r *Robot, action RobotAction) {
	switch action {
	case ActionStay:
	case ActionUp:
		r.Y = min(s.cfg.Height-1, r.Y+1)
	case ActionDown:
		r.Y = max(0, r.Y-1)
	case ActionLeft:
		r.X = max(0, r.X-1)
	case ActionRight:
		r.X = min(s.cfg.Width-1, r.X+1)
	case ActionInteract:
		s.interact(r)
	}
	if r.Carrying != "" {
		if p := s.packageByID(r.Carrying); p != nil {
			p.X = r.X
			p.Y = r.Y
		}
	}
}

func (s *Simulation) interact(r *Robot) {
	if r.Carrying == "" {
		for _, p := range s.packages {
			if !p.Carried && !p.Delivered && p.X == r.X && p.Y == r.Y {
				p.Carried = true
				r.Carrying = p.ID
				r.reward += pickupReward
				return
			}
		}
		return
	}
	p := s.packageByID(r.Carrying)
	if p == nil {
		r.Carrying = ""
		return
	}
	if p.DropX == r.X && p.DropY == r.Y {
		p.Delivered = true
		p.Carried = false
		r.Carrying = ""
		r.reward += deliveryReward
	}
}

func (s *Simulation) packageByID(id string) *Package {
	for _, p := range s.packages {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// GetSteps returns the decision-requesting and terminal robot sets of the
// current tick.
func (s *Simulation) GetSteps(behavior string) (warehouse.AgentSteps, warehouse.AgentSteps) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if behavior != BehaviorName {
		return warehouse.AgentSteps{}, warehouse.AgentSteps{}
	}
	return s.lastDecision, s.lastTerminal
}

func (s *Simulation) Tick() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick
}

func (s *Simulation) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

func (s *Simulation) buildSteps() {
	decision := warehouse.AgentSteps{
		AgentIDs: make([]int, 0, len(s.robots)),
		Obs:      make([][]float64, 0, len(s.robots)),
		Rewards:  make([]float64, 0, len(s.robots)),
	}
	terminal := warehouse.AgentSteps{
		AgentIDs: make([]int, 0),
		Obs:      make([][]float64, 0),
		Rewards:  make([]float64, 0),
	}
	for _, r := range s.robots {
		if r.terminal {
			terminal.AgentIDs = append(terminal.AgentIDs, r.ID)
			terminal.Obs = append(terminal.Obs, s.buildObs(r))
			terminal.Rewards = append(terminal.Rewards, r.reward)
		} else if !s.done {
			decision.AgentIDs = append(decision.AgentIDs, r.ID)
			decision.Obs = append(decision.Obs, s.buildObs(r))
			decision.Rewards = append(decision.Rewards, r.reward)
		}
	}
	s.lastDecision = decision
	s.lastTerminal = terminal
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
