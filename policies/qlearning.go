package policies

import (
	"time"

	"golang.org/x/exp/rand"

	"github.com/pallman14/MARL-QMIX-Warehouse-Robots/types"
	"github.com/pallman14/MARL-QMIX-Warehouse-Robots/util"
)

// how coarsely observations are bucketed into table keys
const keyDecimals = 1

// EpsilonGreedyQ is an independent tabular Q learner per agent over
// discretized observations, all agents updating from the shared team
// reward.
type EpsilonGreedyQ struct {
	qTables  []*QTable
	alpha    float64
	discount float64
	epsilon  float64
	nActions int
	rand     *rand.Rand
}

var _ types.Policy = &EpsilonGreedyQ{}

func NewEpsilonGreedyQ(info types.EnvInfo, alpha, discount, epsilon float64) *EpsilonGreedyQ {
	qTables := make([]*QTable, info.NAgents)
	for i := range qTables {
		qTables[i] = NewQTable(info.NActions)
	}
	return &EpsilonGreedyQ{
		qTables:  qTables,
		alpha:    alpha,
		discount: discount,
		epsilon:  epsilon,
		nActions: info.NActions,
		rand:     rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

func (p *EpsilonGreedyQ) Reset() {
	for i := range p.qTables {
		p.qTables[i] = NewQTable(p.nActions)
	}
}

func (p *EpsilonGreedyQ) NextActions(step int, obs [][]float64, avail [][]int) []int {
	actions := make([]int, len(obs))
	for i := range obs {
		mask := util.OnesMask(p.nActions)
		if i < len(avail) {
			mask = avail[i]
		}
		if p.rand.Float64() < p.epsilon {
			actions[i] = randomLegal(p.rand, mask)
			continue
		}
		key := util.DiscretizeKey(obs[i], keyDecimals)
		actions[i], _ = p.qTables[i].MaxAmong(key, mask)
	}
	return actions
}

func (p *EpsilonGreedyQ) Update(step int, obs [][]float64, actions []int, reward float64, nextObs [][]float64) {
	for i := range obs {
		if i >= len(actions) || i >= len(nextObs) {
			break
		}
		key := util.DiscretizeKey(obs[i], keyDecimals)
		nextKey := util.DiscretizeKey(nextObs[i], keyDecimals)
		cur := p.qTables[i].Row(key)[actions[i]]
		target := reward + p.discount*p.qTables[i].Max(nextKey)
		p.qTables[i].Set(key, actions[i], (1-p.alpha)*cur+p.alpha*target)
	}
}

func (p *EpsilonGreedyQ) UpdateIteration(_ int, _ *types.Trace) {

}

func randomLegal(rng *rand.Rand, mask []int) int {
	legal := make([]int, 0, len(mask))
	for a, ok := range mask {
		if ok == 1 {
			legal = append(legal, a)
		}
	}
	if len(legal) == 0 {
		return 0
	}
	return legal[rng.Intn(len(legal))]
}
