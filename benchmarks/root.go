package benchmarks

import "github.com/spf13/cobra"

var (
	episodes   int
	horizon    int
	saveDir    string
	configFile string
)

func GetRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "marl-warehouse",
		Short: "Multi-agent RL experiments on the warehouse robot simulation",
	}
	rootCommand.PersistentFlags().IntVarP(&episodes, "episodes", "e", 100, "Number of episodes to run")
	rootCommand.PersistentFlags().IntVar(&horizon, "horizon", 0, "Driver-side step cap per episode (0 = environment's own limit)")
	rootCommand.PersistentFlags().StringVarP(&saveDir, "save", "s", "results", "Save the result data in the specified folder")
	rootCommand.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Experiment config file")
	// adding the subcommands here
	rootCommand.AddCommand(WarehouseCommand())
	rootCommand.AddCommand(ServeCommand())
	return rootCommand
}
