package policies

import (
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/pallman14/MARL-QMIX-Warehouse-Robots/types"
	"github.com/pallman14/MARL-QMIX-Warehouse-Robots/util"
)

// SoftmaxQ samples each agent's action from a Boltzmann distribution over
// its Q row instead of acting greedily.
type SoftmaxQ struct {
	qTables  []*QTable
	alpha    float64
	discount float64
	nActions int
	rand     *rand.Rand
}

var _ types.Policy = &SoftmaxQ{}

func NewSoftmaxQ(info types.EnvInfo, alpha, discount float64) *SoftmaxQ {
	qTables := make([]*QTable, info.NAgents)
	for i := range qTables {
		qTables[i] = NewQTable(info.NActions)
	}
	return &SoftmaxQ{
		qTables:  qTables,
		alpha:    alpha,
		discount: discount,
		nActions: info.NActions,
		rand:     rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

func (p *SoftmaxQ) Reset() {
	for i := range p.qTables {
		p.qTables[i] = NewQTable(p.nActions)
	}
}

func (p *SoftmaxQ) NextActions(step int, obs [][]float64, avail [][]int) []int {
	actions := make([]int, len(obs))
	for i := range obs {
		key := util.DiscretizeKey(obs[i], keyDecimals)
		row := p.qTables[i].Row(key)

		sum := float64(0)
		weights := make([]float64, len(row))
		for a, v := range row {
			if i < len(avail) && a < len(avail[i]) && avail[i][a] != 1 {
				continue
			}
			exp := math.Exp(v)
			weights[a] = exp
			sum += exp
		}
		if sum == 0 {
			actions[i] = randomLegal(p.rand, util.OnesMask(p.nActions))
			continue
		}
		for a := range weights {
			weights[a] = weights[a] / sum
		}
		a, ok := sampleuv.NewWeighted(weights, nil).Take()
		if !ok {
			actions[i] = 0
			continue
		}
		actions[i] = a
	}
	return actions
}

func (p *SoftmaxQ) Update(step int, obs [][]float64, actions []int, reward float64, nextObs [][]float64) {
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

func (p *SoftmaxQ) UpdateIteration(_ int, _ *types.Trace) {

}
