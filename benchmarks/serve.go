package benchmarks

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pallman14/MARL-QMIX-Warehouse-Robots/simserver"
	"github.com/pallman14/MARL-QMIX-Warehouse-Robots/warehouse"
)

// Serve hosts the warehouse simulation as an external process the adapter
// can attach to. Blocks until interrupted.
func Serve(port int, cfg simserver.SimConfig) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	go func() {
		<-sigChan
		cancel()
	}()

	sim := simserver.New(cfg)
	server := simserver.NewServer(ctx, port, sim)
	server.Start()
	fmt.Printf("Warehouse simulation serving on localhost:%d\n", port)
	<-ctx.Done()
}

func ServeCommand() *cobra.Command {
	var port int
	var width int
	var height int
	var robots int
	var packages int
	var obsSize int
	var seed int64
	var noGraphics bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the warehouse simulation server",
		Run: func(cmd *cobra.Command, args []string) {
			Serve(port, simserver.SimConfig{
				Width:       width,
				Height:      height,
				NumRobots:   robots,
				NumPackages: packages,
				ObsSize:     obsSize,
				Seed:        seed,
			})
		},
	}
	cmd.Flags().IntVar(&port, "port", warehouse.BasePort, "Port to serve the simulation on")
	cmd.Flags().IntVar(&width, "width", 10, "Width of the warehouse grid")
	cmd.Flags().IntVar(&height, "height", 10, "Height of the warehouse grid")
	cmd.Flags().IntVar(&robots, "robots", 4, "Number of robots")
	cmd.Flags().IntVar(&packages, "packages", 8, "Number of packages per episode")
	cmd.Flags().IntVar(&obsSize, "obs-size", 47, "Width of each observation vector")
	cmd.Flags().Int64Var(&seed, "seed", 0, "World generation seed")
	cmd.Flags().BoolVar(&noGraphics, "no-graphics", false, "Accepted for launcher compatibility; the server never renders")
	return cmd
}
