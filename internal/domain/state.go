package domain

// CommandState tracks a command through the validation pipeline:
// received -> segmented -> classified -> [confirmed] -> executing ->
// {completed, failed, timed_out}. Rejected is terminal and reachable from
// classified, confirmed, or the executor's own policy refusal.
type CommandState string

const (
	StateReceived   CommandState = "received"
	StateSegmented  CommandState = "segmented"
	StateClassified CommandState = "classified"
	StateConfirmed  CommandState = "confirmed"
	StateExecuting  CommandState = "executing"
	StateCompleted  CommandState = "completed"
	StateFailed     CommandState = "failed"
	StateTimedOut   CommandState = "timed_out"
	StateRejected   CommandState = "rejected"
)

var stateTransitions = map[CommandState][]CommandState{
	StateReceived:   {StateSegmented},
	StateSegmented:  {StateClassified},
	StateClassified: {StateConfirmed, StateExecuting, StateRejected},
	StateConfirmed:  {StateExecuting, StateRejected},
	StateExecuting:  {StateCompleted, StateFailed, StateTimedOut},
}

// CanTransitionTo reports whether next is a legal successor state.
func (s CommandState) CanTransitionTo(next CommandState) bool {
	for _, allowed := range stateTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func (s CommandState) Terminal() bool {
	return len(stateTransitions[s]) == 0
}
