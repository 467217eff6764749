package warehouse

import (
	"math/rand"
	"time"

	"github.com/pallman14/MARL-QMIX-Warehouse-Robots/types"
)

// Warehouse is the stable training-framework-facing surface over a
// WarehouseEnv adapter. It owns no simulation state: every data-bearing
// call delegates to the adapter, and the env-info descriptor is computed
// once at construction so the training side sees a fixed shape even if the
// simulation's live agent count later fluctuates.
type Warehouse struct {
	env  *WarehouseEnv
	info types.EnvInfo
	rng  *rand.Rand
}

var _ types.MultiAgentEnv = &Warehouse{}

func NewWarehouse(env *WarehouseEnv) *Warehouse {
	return &Warehouse{
		env:  env,
		info: env.EnvInfo(),
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (w *Warehouse) Reset() ([][]float64, []float64, error) {
	return w.env.Reset()
}

func (w *Warehouse) Step(actions []int) (types.StepResult, error) {
	return w.env.Step(actions)
}

func (w *Warehouse) GetObs() [][]float64 {
	return w.env.Obs()
}

func (w *Warehouse) GetObsAgent(agentID int) []float64 {
	return w.env.ObsAgent(agentID)
}

func (w *Warehouse) GetObsSize() int {
	return w.env.ObsSize()
}

func (w *Warehouse) GetState() []float64 {
	return w.env.State()
}

func (w *Warehouse) GetStateSize() int {
	return w.env.StateSize()
}

func (w *Warehouse) GetAvailActions() [][]int {
	return w.env.AvailActions()
}

func (w *Warehouse) GetAvailAgentActions(agentID int) []int {
	return w.env.AvailAgentActions(agentID)
}

func (w *Warehouse) GetTotalActions() int {
	return w.env.NActions()
}

// GetEnvInfo returns the descriptor cached at construction, never
// recomputed.
func (w *Warehouse) GetEnvInfo() types.EnvInfo {
	return w.info
}

// GetStats reports no environment statistics; the contract requires the
// call, not the content.
func (w *Warehouse) GetStats() map[string]float64 {
	return map[string]float64{}
}

// Seed seeds only this layer's randomness source. The simulation keeps its
// own determinism.
func (w *Warehouse) Seed(seed int64) {
	w.rng = rand.New(rand.NewSource(seed))
}

// Render is a no-op: the simulation renders itself out of process.
func (w *Warehouse) Render() {}

// SaveReplay is a contractual stub.
func (w *Warehouse) SaveReplay() {}

func (w *Warehouse) Close() error {
	return w.env.Close()
}
