package domain

import "context"

// QueryRequest captures user intent originating from the CLI.
type QueryRequest struct {
	Context context.Context

	// Prompt is the natural-language query. Literal is set instead when the
	// user supplies a shell command directly (nlsh check).
	Prompt  string
	Literal string

	ModelOverride string
	PreviewOnly   bool

	// AssumeYes approves caution-level commands without prompting. It never
	// overrides a dangerous verdict.
	AssumeYes bool

	TimeoutOverride int
	WorkDirOverride string
	Debug           bool
}

// QueryResponse is the canonical response propagated back to the CLI.
type QueryResponse struct {
	Prompt          string
	Command         string
	Verdict         Verdict
	State           CommandState
	ExecutionResult *ExecutionResult
	RejectedReason  string
}
