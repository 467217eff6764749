package benchmarks

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pallman14/MARL-QMIX-Warehouse-Robots/config"
	"github.com/pallman14/MARL-QMIX-Warehouse-Robots/envs"
	"github.com/pallman14/MARL-QMIX-Warehouse-Robots/policies"
	"github.com/pallman14/MARL-QMIX-Warehouse-Robots/types"
	"github.com/pallman14/MARL-QMIX-Warehouse-Robots/util"
)

// Warehouse runs random, epsilon-greedy and softmax policies against the
// warehouse environment and compares their episode returns.
func Warehouse(cfg *config.Config) error {
	env, err := envs.New(cfg.Env, cfg.EnvArgs)
	if err != nil {
		return err
	}
	defer env.Close()
	if cfg.Seed != 0 {
		env.Seed(cfg.Seed)
	}

	info := env.GetEnvInfo()
	fmt.Printf("Environment initialized: agents=%d actions=%d obs_shape=%d state_shape=%d episode_limit=%d\n",
		info.NAgents, info.NActions, info.ObsShape, info.StateShape, info.EpisodeLimit)

	c := types.NewComparison(types.EpisodeReturns(), types.ReturnsPlotter(cfg.SaveDir))
	c.AddExperiment(types.NewExperiment(
		"Random",
		&types.AgentConfig{
			Episodes:    cfg.Episodes,
			Horizon:     cfg.Horizon,
			Policy:      types.NewRandomPolicy(),
			Environment: env,
		},
	))
	c.AddExperiment(types.NewExperiment(
		"EpsGreedy-Q",
		&types.AgentConfig{
			Episodes:    cfg.Episodes,
			Horizon:     cfg.Horizon,
			Policy:      policies.NewEpsilonGreedyQ(info, 0.1, 0.99, 0.05),
			Environment: env,
		},
	))
	c.AddExperiment(types.NewExperiment(
		"Softmax-Q",
		&types.AgentConfig{
			Episodes:    cfg.Episodes,
			Horizon:     cfg.Horizon,
			Policy:      policies.NewSoftmaxQ(info, 0.1, 0.99),
			Environment: env,
		},
	))
	if err := c.Run(); err != nil {
		return err
	}

	for _, e := range c.Experiments {
		returns := types.EpisodeReturns()(e.Result).([]float64)
		if err := util.SaveReturns(cfg.SaveDir, e.Name(), returns); err != nil {
			return err
		}
	}
	return nil
}

func WarehouseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "warehouse",
		Short: "Run policy comparison experiments on the warehouse environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configFile != "" {
				loaded, err := config.Load(configFile)
				if err != nil {
					return err
				}
				cfg = loaded
			} else {
				cfg.Episodes = episodes
				cfg.Horizon = horizon
				cfg.SaveDir = saveDir
				cfg.ApplyEnvOverrides()
			}
			return Warehouse(cfg)
		},
	}
	return cmd
}
