package simserver

import (
	"math"

	"github.com/pallman14/MARL-QMIX-Warehouse-Robots/util"
)

// buildObs assembles one robot's observation vector: own position, load
// state, the delta to its current target, the remaining-package fraction
// and the deltas to the other robots. The vector is padded to the
// configured width so the downstream shape never depends on world size.
// Caller holds s.mu.
func (s *Simulation) buildObs(r *Robot) []float64 {
	w := float64(s.cfg.Width)
	h := float64(s.cfg.Height)

	features := make([]float64, 0, s.cfg.ObsSize)
	features = append(features,
		float64(r.X)/w,
		float64(r.Y)/h,
	)
	if r.Carrying != "" {
		features = append(features, 1)
	} else {
		features = append(features, 0)
	}

	tx, ty, ok := s.targetFor(r)
	if ok {
		features = append(features, 1, float64(tx-r.X)/w, float64(ty-r.Y)/h)
	} else {
		features = append(features, 0, 0, 0)
	}

	remaining := 0
	for _, p := range s.packages {
		if !p.Delivered {
			remaining++
		}
	}
	features = append(features, float64(remaining)/float64(len(s.packages)))

	for _, other := range s.robots {
		if other.ID == r.ID {
			continue
		}
		features = append(features,
			float64(other.X-r.X)/w,
			float64(other.Y-r.Y)/h,
		)
	}

	return util.PadVector(features, s.cfg.ObsSize)
}

// targetFor picks the robot's current objective cell: the drop cell of the
// carried package, or the nearest package still waiting for pickup.
func (s *Simulation) targetFor(r *Robot) (int, int, bool) {
	if r.Carrying != "" {
		if p := s.packageByID(r.Carrying); p != nil {
			return p.DropX, p.DropY, true
		}
		return 0, 0, false
	}
	best := -1
	bestDist := math.MaxFloat64
	for i, p := range s.packages {
		if p.Carried || p.Delivered {
			continue
		}
		d := math.Abs(float64(p.X-r.X)) + math.Abs(float64(p.Y-r.Y))
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	if best < 0 {
		return 0, 0, false
	}
	return s.packages[best].X, s.packages[best].Y, true
}
