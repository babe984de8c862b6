package domain

import "time"

// HistoryRecord is one prompt/command/outcome row persisted after every run.
type HistoryRecord struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Prompt    string    `json:"prompt"`
	Command   string    `json:"command"`
	RiskLevel string    `json:"risk_level"`
	Executed  bool      `json:"executed"`
	ExitCode  int       `json:"exit_code"`
	TimedOut  bool      `json:"timed_out"`
	Outcome   string    `json:"outcome"`

	DurationMS int64 `json:"duration_ms"`
}
