package domain

import "time"

// ExecutionResult captures everything observable about one command run.
// Created only by the executor; immutable afterwards.
type ExecutionResult struct {
	Command *Command

	Stdout []byte
	Stderr []byte

	// ExitCode is nil when the process never produced one: killed by a
	// signal or terminated by the watchdog.
	ExitCode *int

	// Signal names the terminating signal when the process died to one.
	Signal string

	Duration time.Duration
	TimedOut bool

	// Err holds the spawn failure when the process never started.
	Err error
}

// Succeeded reports a clean zero exit.
func (r ExecutionResult) Succeeded() bool {
	return !r.TimedOut && r.Err == nil && r.ExitCode != nil && *r.ExitCode == 0
}
