// Package ports defines the interfaces between the application core and the
// infrastructure adapters. The application depends only on these
// abstractions, never on a concrete backend, database, or CLI framework.
package ports

import (
	"context"

	"github.com/nlshell/nlsh/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.nlsh/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// TranslatorFactory builds translation backends from model definitions.
type TranslatorFactory interface {
	ForModel(domain.ModelDefinition) (Translator, error)
}

// Translator produces a shell command string from a natural-language query.
// The safety core is decoupled from any specific backend through this
// interface.
type Translator interface {
	Name() string
	Translate(ctx context.Context, req TranslationRequest) (TranslationResult, error)
}

// TranslationRequest carries the query plus the environment hints a backend
// may use to produce a better command.
type TranslationRequest struct {
	Prompt     string
	WorkingDir string
	Shell      string
	OS         string
}

// TranslationResult is the backend's raw output: the command plus the reply
// it was extracted from.
type TranslationResult struct {
	Command string
	Reply   string
}

// Segmenter splits a raw command string into ordered sub-commands along
// unquoted chaining/pipe operators, preserving quoting. Returns
// domain.ErrMalformedInput when quoting is unterminated.
type Segmenter interface {
	Segment(raw string) ([]domain.Segment, error)
}

// SafetyPolicy classifies segments against the ordered rule set. Pure:
// the same input and rule set always yield the same verdict.
type SafetyPolicy interface {
	Classify(raw string, segments []domain.Segment) domain.Verdict
}

// CommandExecutor runs an approved command as a bounded child process.
// It must refuse dangerous or unclassified commands regardless of what the
// caller already checked.
type CommandExecutor interface {
	Execute(ctx context.Context, cmd *domain.Command, settings domain.ExecutionSettings) (domain.ExecutionResult, error)
}

// ConfirmationPrompter handles the confirmation gate for caution-level
// commands. Enabled reports whether a user is actually present to answer.
type ConfirmationPrompter interface {
	Confirm(level domain.RiskLevel, command string, reasons []string) (bool, error)
	Enabled() bool
}

// HistoryStore persists one record per processed query.
type HistoryStore interface {
	Save(domain.HistoryRecord) error
	Records(limit int, search string) ([]domain.HistoryRecord, error)
	Clear() error
}

// Logger provides structured logging for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
