package types

import (
	"fmt"
	"os"
	"path"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// EpisodeReturns collects the total reward of each episode.
func EpisodeReturns() Analyzer {
	return func(t []*Trace) DataSet {
		returns := make([]float64, len(t))
		for i, trace := range t {
			returns[i] = trace.Return()
		}
		return returns
	}
}

// ReturnsPlotter plots per-episode returns of each experiment on a single
// canvas and prints the mean return per experiment.
func ReturnsPlotter(plotPath string) Comparator {
	if _, err := os.Stat(plotPath); err != nil {
		os.Mkdir(plotPath, os.ModePerm)
	}
	return func(names []string, ds []DataSet) {
		p := plot.New()
		p.Title.Text = "Episode returns"
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = "Return"
		for i := 0; i < len(names); i++ {
			returns := ds[i].([]float64)
			points := make(plotter.XYs, len(returns))
			for j, v := range returns {
				points[j] = plotter.XY{
					X: float64(j),
					Y: v,
				}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(names[i], line)
			fmt.Printf("Mean return: %.3f for experiment: %s\n", stat.Mean(returns, nil), names[i])
		}
		p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, "episode_returns.png"))
	}
}

// TerminationAnalyzer counts how many episodes ended naturally versus by
// hitting the step horizon.
func TerminationAnalyzer() Analyzer {
	return func(t []*Trace) DataSet {
		counts := make([]int, 2)
		for _, trace := range t {
			if trace.Terminated() {
				counts[0] += 1
			}
			if trace.Truncated() {
				counts[1] += 1
			}
		}
		return counts
	}
}

// TerminationPrinter prints the terminated/truncated split per experiment.
func TerminationPrinter() Comparator {
	return func(names []string, ds []DataSet) {
		for i, name := range names {
			counts := ds[i].([]int)
			fmt.Printf("Experiment %s: %d terminated, %d truncated\n", name, counts[0], counts[1])
		}
	}
}
