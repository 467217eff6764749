package types

// Transition is one step of an episode: the observations the actions were
// chosen from, the joint action and the step result that followed.
type Transition struct {
	Obs     [][]float64
	Actions []int
	Result  StepResult
}

// Trace of an episode as a sequence of transitions
type Trace struct {
	transitions []*Transition
}

func NewTrace() *Trace {
	return &Trace{
		transitions: make([]*Transition, 0),
	}
}

func (t *Trace) Append(obs [][]float64, actions []int, result StepResult) {
	t.transitions = append(t.transitions, &Transition{
		Obs:     obs,
		Actions: actions,
		Result:  result,
	})
}

func (t *Trace) Len() int {
	return len(t.transitions)
}

func (t *Trace) Get(i int) (*Transition, bool) {
	if i < 0 || i >= len(t.transitions) {
		return nil, false
	}
	return t.transitions[i], true
}

func (t *Trace) Last() (*Transition, bool) {
	if len(t.transitions) < 1 {
		return nil, false
	}
	return t.transitions[len(t.transitions)-1], true
}

// Return is the undiscounted sum of rewards over the episode.
func (t *Trace) Return() float64 {
	total := 0.0
	for _, tr := range t.transitions {
		total += tr.Result.Reward
	}
	return total
}

// Terminated reports whether the episode ended naturally rather than by
// running out of trace or hitting the step horizon.
func (t *Trace) Terminated() bool {
	last, ok := t.Last()
	if !ok {
		return false
	}
	return last.Result.Terminated
}

// Truncated reports whether the episode was cut short by the step horizon.
func (t *Trace) Truncated() bool {
	last, ok := t.Last()
	if !ok {
		return false
	}
	return last.Result.Truncated
}
