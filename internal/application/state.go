package application

// State is a stage of one release notes step execution.
type State int

const (
	StateStart State = iota
	StatePreconditionCheck
	StateCredentialsResolved
	StateRequestBuilt
	StateInvoked
	StateSuccess
	StateContainedFailure
)

// String returns the string representation of State.
func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StatePreconditionCheck:
		return "precondition-check"
	case StateCredentialsResolved:
		return "credentials-resolved"
	case StateRequestBuilt:
		return "request-built"
	case StateInvoked:
		return "invoked"
	case StateSuccess:
		return "success"
	case StateContainedFailure:
		return "contained-failure"
	default:
		return "unknown"
	}
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == StateSuccess || s == StateContainedFailure
}

// Outcome is how a step execution ended.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeContainedFailure
)

// String returns the string representation of Outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeContainedFailure:
		return "contained-failure"
	default:
		return "unknown"
	}
}

// StepResult records how a step execution went. Both outcomes mean the step
// passed as far as the host job is concerned; Reason explains a contained failure.
type StepResult struct {
	InvocationID string
	Outcome      Outcome
	Reason       error
	Path         []State // every state visited, in order, ending with a terminal state
}

// State returns the terminal state of the execution.
func (r StepResult) State() State {
	if len(r.Path) == 0 {
		return StateStart
	}
	return r.Path[len(r.Path)-1]
}

// Reached reports whether the execution passed through s.
func (r StepResult) Reached(s State) bool {
	for _, visited := range r.Path {
		if visited == s {
			return true
		}
	}
	return false
}
