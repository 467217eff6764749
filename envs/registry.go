// Package envs holds the environment registry: a capability-keyed factory
// map the orchestration layer uses to construct environments by name.
package envs

import (
	"errors"
	"fmt"
	"sort"

	"github.com/pallman14/MARL-QMIX-Warehouse-Robots/simserver"
	"github.com/pallman14/MARL-QMIX-Warehouse-Robots/types"
	"github.com/pallman14/MARL-QMIX-Warehouse-Robots/warehouse"
)

var (
	ErrUnknownEnv = errors.New("envs: unknown environment")
	// ErrMissingRewardFlags is raised before any connection attempt when the
	// orchestration layer forgot to state its reward semantics.
	ErrMissingRewardFlags = errors.New("envs: common_reward and reward_scalarisation must be set")
	// ErrCommonRewardRequired rejects general-sum reward requests: this
	// adapter only supports a team-shared scalar reward.
	ErrCommonRewardRequired = errors.New("envs: only common reward is supported, set common_reward=true or choose a different environment")
)

// Args carries the environment arguments handed down from the experiment
// configuration. CommonReward and RewardScalarisation are asserted and
// stripped here; the environments never see them.
type Args struct {
	CommonReward        *bool  `yaml:"common_reward"`
	RewardScalarisation string `yaml:"reward_scalarisation"`

	EnvPath      string  `yaml:"env_path"`
	NoGraphics   bool    `yaml:"no_graphics"`
	TimeScale    float64 `yaml:"time_scale"`
	WorkerID     int     `yaml:"worker_id"`
	EpisodeLimit int     `yaml:"episode_limit"`

	// Sim configures the in-process simulation backend; ignored by the
	// remote backend, which gets its world from the external process.
	Sim simserver.SimConfig `yaml:"sim"`
}

type Factory func(args Args) (types.MultiAgentEnv, error)

var registry = map[string]Factory{}

func Register(name string, f Factory) {
	registry[name] = f
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New constructs the named environment. Configuration faults surface
// before any connection attempt.
func New(name string, args Args) (types.MultiAgentEnv, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownEnv, name, Names())
	}
	return f(args)
}

func checkCommonRewardArgs(args Args) error {
	if args.CommonReward == nil || args.RewardScalarisation == "" {
		return ErrMissingRewardFlags
	}
	if !*args.CommonReward {
		return ErrCommonRewardRequired
	}
	return nil
}

func warehouseConfig(args Args) warehouse.Config {
	return warehouse.Config{
		EnvPath:      args.EnvPath,
		NoGraphics:   args.NoGraphics,
		TimeScale:    args.TimeScale,
		WorkerID:     args.WorkerID,
		EpisodeLimit: args.EpisodeLimit,
	}
}

// warehouseFn connects to an external simulation process: launched from
// EnvPath when set, otherwise attached at the worker's port.
func warehouseFn(args Args) (types.MultiAgentEnv, error) {
	if err := checkCommonRewardArgs(args); err != nil {
		return nil, err
	}
	cfg := warehouseConfig(args)
	conn, err := warehouse.Connect(cfg)
	if err != nil {
		return nil, err
	}
	env, err := warehouse.NewWarehouseEnv(cfg, conn)
	if err != nil {
		return nil, err
	}
	return warehouse.NewWarehouse(env), nil
}

// warehouseLocalFn hosts the simulation in-process, no transport involved.
func warehouseLocalFn(args Args) (types.MultiAgentEnv, error) {
	if err := checkCommonRewardArgs(args); err != nil {
		return nil, err
	}
	sim := simserver.New(args.Sim)
	env, err := warehouse.NewWarehouseEnv(warehouseConfig(args), simserver.NewLocalConnection(sim))
	if err != nil {
		return nil, err
	}
	return warehouse.NewWarehouse(env), nil
}

func init() {
	Register("warehouse", warehouseFn)
	Register("warehouse-local", warehouseLocalFn)
}
