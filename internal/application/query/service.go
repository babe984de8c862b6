// Package query orchestrates one natural-language request end to end:
// validate the query, translate it to a command, segment and classify the
// command, gate it behind confirmation when needed, execute it, and record
// the outcome.
package query

import (
	"context"
	"errors"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nlshell/nlsh/internal/application/report"
	"github.com/nlshell/nlsh/internal/domain"
	"github.com/nlshell/nlsh/internal/ports"
)

// Service wires the safety pipeline. All collaborators are ports; the
// pipeline itself has no knowledge of HTTP, SQLite, or the terminal.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Translators    ports.TranslatorFactory
	Segmenter      ports.Segmenter
	Policy         ports.SafetyPolicy
	Executor       ports.CommandExecutor
	Prompter       ports.ConfirmationPrompter
	History        ports.HistoryStore
	Logger         ports.Logger
}

// Run processes a single request. Verdict rejections and malformed input
// come back as errors wrapping the domain taxonomy; execution failures and
// timeouts are captured inside the response's ExecutionResult instead.
func (s *Service) Run(req domain.QueryRequest) (domain.QueryResponse, error) {
	if s.ConfigProvider == nil || s.Segmenter == nil || s.Policy == nil ||
		s.Executor == nil || s.Logger == nil {
		return domain.QueryResponse{}, domain.NewInternalError("query.Service dependencies not satisfied")
	}

	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return domain.QueryResponse{}, domain.NewInternalError("load config: " + err.Error())
	}

	raw, err := s.resolveCommand(ctx, cfg, req)
	if err != nil {
		return domain.QueryResponse{Prompt: req.Prompt}, err
	}

	resp := domain.QueryResponse{Prompt: req.Prompt, Command: raw}
	cmd := domain.NewCommand(raw)

	segments, err := s.Segmenter.Segment(raw)
	if err != nil {
		resp.RejectedReason = err.Error()
		s.record(req, resp, nil, "rejected")
		return resp, err
	}
	if err := cmd.SetSegments(segments); err != nil {
		return resp, err
	}

	verdict := s.Policy.Classify(cmd.Raw, cmd.Segments)
	if err := cmd.Classify(verdict); err != nil {
		return resp, err
	}
	resp.Verdict = verdict

	s.Logger.Info("command classified", map[string]interface{}{
		"command": raw,
		"level":   string(verdict.Level),
	})
	if req.Debug {
		for _, finding := range verdict.Findings {
			s.Logger.Debug("segment finding", map[string]interface{}{
				"segment": finding.Segment,
				"rule":    finding.RuleID,
				"level":   string(finding.Level),
			})
		}
	}

	if err := s.gate(cmd, req); err != nil {
		resp.State = cmd.State()
		resp.RejectedReason = err.Error()
		s.record(req, resp, nil, "rejected")
		return resp, err
	}

	if req.PreviewOnly {
		resp.State = cmd.State()
		s.record(req, resp, nil, "preview")
		return resp, nil
	}

	result, execErr := s.Executor.Execute(ctx, cmd, s.settings(cfg, req))
	resp.ExecutionResult = &result
	resp.State = cmd.State()

	summary := report.Summarize(result)
	s.record(req, resp, &result, string(summary.Outcome))

	if execErr != nil {
		return resp, execErr
	}
	return resp, nil
}

// resolveCommand returns the shell command to classify: the user's literal
// command, or the translation of their natural-language prompt.
func (s *Service) resolveCommand(ctx context.Context, cfg domain.Config, req domain.QueryRequest) (string, error) {
	if req.Literal != "" {
		return req.Literal, nil
	}

	if err := ValidateQuery(req.Prompt); err != nil {
		return "", err
	}
	if s.Translators == nil {
		return "", domain.NewInternalError("no translator configured")
	}

	model, err := pickModel(cfg, req.ModelOverride)
	if err != nil {
		return "", domain.NewInternalError(err.Error())
	}
	translator, err := s.Translators.ForModel(model)
	if err != nil {
		return "", domain.NewInternalError("translator init: " + err.Error())
	}

	s.Logger.Info("translating query", map[string]interface{}{
		"translator": translator.Name(),
		"model":      model.ModelID,
	})

	wd, _ := os.Getwd()
	result, err := translator.Translate(ctx, ports.TranslationRequest{
		Prompt:     req.Prompt,
		WorkingDir: wd,
		Shell:      cfg.Execution.Shell,
		OS:         runtime.GOOS,
	})
	if err != nil {
		return "", domain.NewInternalError("translate: " + err.Error())
	}
	if strings.TrimSpace(result.Command) == "" {
		return "", domain.NewMalformedInput("translator produced an empty command")
	}
	return result.Command, nil
}

// gate applies the confirmation gate. Dangerous commands always terminate
// here; caution-level commands need explicit approval from the prompter or
// the --yes flag; safe commands pass through.
func (s *Service) gate(cmd *domain.Command, req domain.QueryRequest) error {
	switch cmd.Risk() {
	case domain.RiskSafe:
		return nil

	case domain.RiskCaution:
		if req.AssumeYes {
			return cmd.Confirm()
		}
		if req.PreviewOnly {
			// Preview never executes, so the gate is moot.
			return nil
		}
		if s.Prompter == nil || !s.Prompter.Enabled() {
			_ = cmd.Reject()
			return domain.NewPolicyRejected("caution-level command needs confirmation, but no interactive prompt is available")
		}
		approved, err := s.Prompter.Confirm(cmd.Risk(), cmd.Raw, cmd.Verdict().Reasons())
		if err != nil {
			_ = cmd.Reject()
			return domain.NewInternalError("confirmation prompt: " + err.Error())
		}
		if !approved {
			_ = cmd.Reject()
			return domain.NewPolicyRejected("confirmation declined")
		}
		return cmd.Confirm()

	default:
		_ = cmd.Reject()
		return domain.NewPolicyRejected("%s", strings.Join(cmd.Verdict().Reasons(), "; "))
	}
}

func (s *Service) settings(cfg domain.Config, req domain.QueryRequest) domain.ExecutionSettings {
	settings := cfg.Execution
	if req.TimeoutOverride > 0 {
		settings.TimeoutSeconds = req.TimeoutOverride
	}
	if req.WorkDirOverride != "" {
		settings.WorkDir = req.WorkDirOverride
	}
	return settings
}

// record persists one history row; storage failures are logged, never
// surfaced.
func (s *Service) record(req domain.QueryRequest, resp domain.QueryResponse, result *domain.ExecutionResult, outcome string) {
	if s.History == nil {
		return
	}
	rec := domain.HistoryRecord{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Prompt:    req.Prompt,
		Command:   resp.Command,
		RiskLevel: string(resp.Verdict.Level),
		Outcome:   outcome,
	}
	if result != nil {
		rec.Executed = true
		rec.TimedOut = result.TimedOut
		rec.DurationMS = result.Duration.Milliseconds()
		if result.ExitCode != nil {
			rec.ExitCode = *result.ExitCode
		} else {
			rec.ExitCode = -1
		}
	}
	if err := s.History.Save(rec); err != nil {
		s.Logger.Warn("history save failed", map[string]interface{}{"error": err.Error()})
	}
}

func pickModel(cfg domain.Config, override string) (domain.ModelDefinition, error) {
	name := override
	if name == "" {
		name = cfg.Preferences.DefaultModel
	}
	if name == "" && len(cfg.Models) > 0 {
		return cfg.Models[0], nil
	}
	for _, model := range cfg.Models {
		if model.Name == name {
			return model, nil
		}
	}
	return domain.ModelDefinition{}, errors.New("model " + name + " not configured")
}
