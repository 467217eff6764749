package types

type AgentConfig struct {
	Episodes int
	// Horizon caps the steps per episode on the driver side. Zero means run
	// until the environment itself terminates or truncates.
	Horizon     int
	Policy      Policy
	Environment MultiAgentEnv
}

// RL Agent driving episodes of the configured environment with the
// corresponding policy
type Agent struct {
	config *AgentConfig
	// collects the traces of the run
	// Only populated if the Run function is invoked
	traces      []*Trace
	policy      Policy
	environment MultiAgentEnv
}

// Instantiates a new Agent
func NewAgent(config *AgentConfig) *Agent {
	return &Agent{
		config:      config,
		traces:      make([]*Trace, config.Episodes),
		policy:      config.Policy,
		environment: config.Environment,
	}
}

// Run the agent for the specified number of episodes
func (a *Agent) Run() error {
	for i := 0; i < a.config.Episodes; i++ {
		trace, err := a.runEpisode(i)
		if err != nil {
			return err
		}
		a.traces[i] = trace
	}
	return nil
}

// run a single episode and return the resulting trace
func (a *Agent) runEpisode(episode int) (*Trace, error) {
	obs, _, err := a.environment.Reset()
	if err != nil {
		return nil, err
	}
	trace := NewTrace()

	for step := 0; a.config.Horizon == 0 || step < a.config.Horizon; step++ {
		avail := a.environment.GetAvailActions()
		actions := a.policy.NextActions(step, obs, avail)

		result, err := a.environment.Step(actions)
		if err != nil {
			return nil, err
		}
		a.policy.Update(step, obs, actions, result.Reward, result.Obs)

		trace.Append(obs, actions, result)
		obs = result.Obs
		if result.Terminated || result.Truncated {
			break
		}
	}
	a.policy.UpdateIteration(episode, trace)

	return trace, nil
}
