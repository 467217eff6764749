package simserver

import "github.com/pallman14/MARL-QMIX-Warehouse-Robots/warehouse"

// LocalConnection drives an in-process simulation directly, with no
// transport in between. It is the analog of attaching to an editor-hosted
// instance and is what the tests run against.
type LocalConnection struct {
	sim *Simulation
}

var _ warehouse.Connection = &LocalConnection{}

func NewLocalConnection(sim *Simulation) *LocalConnection {
	return &LocalConnection{sim: sim}
}

func (c *LocalConnection) BehaviorSpecs() ([]warehouse.BehaviorSpec, error) {
	return c.sim.Specs(), nil
}

func (c *LocalConnection) SetTimeScale(scale float64) error {
	c.sim.SetTimeScale(scale)
	return nil
}

func (c *LocalConnection) Reset() error {
	c.sim.Reset()
	return nil
}

func (c *LocalConnection) SetActions(behavior string, actions [][]int) error {
	c.sim.SetActions(behavior, actions)
	return nil
}

func (c *LocalConnection) Step() error {
	c.sim.Step()
	return nil
}

func (c *LocalConnection) GetSteps(behavior string) (warehouse.AgentSteps, warehouse.AgentSteps, error) {
	decision, terminal := c.sim.GetSteps(behavior)
	return decision, terminal, nil
}

func (c *LocalConnection) Close() error {
	return nil
}
