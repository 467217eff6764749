package types

import (
	"math/rand"
	"time"
)

// Policy selects one discrete action per agent each step.
type Policy interface {
	// NextActions picks a joint action given the per-agent observations and
	// the per-agent availability masks (1 = legal).
	NextActions(step int, obs [][]float64, avail [][]int) []int
	// Update is called after every step with the shared team reward.
	Update(step int, obs [][]float64, actions []int, reward float64, nextObs [][]float64)
	// UpdateIteration is called once at the end of every episode.
	UpdateIteration(episode int, trace *Trace)
	Reset()
}

type RandomPolicy struct {
	rand *rand.Rand
}

var _ Policy = &RandomPolicy{}

func NewRandomPolicy() *RandomPolicy {
	return &RandomPolicy{
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *RandomPolicy) Reset() {

}

func (r *RandomPolicy) UpdateIteration(_ int, _ *Trace) {

}

func (r *RandomPolicy) NextActions(step int, obs [][]float64, avail [][]int) []int {
	actions := make([]int, len(avail))
	for i, mask := range avail {
		legal := make([]int, 0, len(mask))
		for a, ok := range mask {
			if ok == 1 {
				legal = append(legal, a)
			}
		}
		if len(legal) == 0 {
			actions[i] = 0
			continue
		}
		actions[i] = legal[r.rand.Intn(len(legal))]
	}
	return actions
}

func (r *RandomPolicy) Update(_ int, _ [][]float64, _ []int, _ float64, _ [][]float64) {}
