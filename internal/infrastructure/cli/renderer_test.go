package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/nlshell/nlsh/internal/domain"
)

func TestRenderResponseShowsVerdictAndRejection(t *testing.T) {
	var out strings.Builder
	RenderResponse(&out, domain.QueryResponse{
		Prompt:  "wipe the disk",
		Command: "rm -rf /",
		Verdict: domain.Verdict{
			Level: domain.RiskDangerous,
			Findings: []domain.Finding{{
				RuleID:    "rm-recursive-root",
				Level:     domain.RiskDangerous,
				Rationale: "recursive delete of the filesystem root",
			}},
		},
		State:          domain.StateRejected,
		RejectedReason: "recursive delete of the filesystem root",
	})

	text := out.String()
	for _, want := range []string{"rm -rf /", "DANGEROUS", "rm-recursive-root", "Not executed"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestRenderResponseShowsExecutionStreams(t *testing.T) {
	code := 0
	var out strings.Builder
	RenderResponse(&out, domain.QueryResponse{
		Command: "echo hi",
		Verdict: domain.Verdict{Level: domain.RiskSafe},
		State:   domain.StateCompleted,
		ExecutionResult: &domain.ExecutionResult{
			ExitCode: &code,
			Stdout:   []byte("hi\n"),
			Duration: 3 * time.Millisecond,
		},
	})

	text := out.String()
	if !strings.Contains(text, "completed") {
		t.Errorf("output missing completion headline:\n%s", text)
	}
	if !strings.Contains(text, "hi\n") {
		t.Errorf("output missing stdout:\n%s", text)
	}
}

func TestRenderHistoryEmpty(t *testing.T) {
	var out strings.Builder
	RenderHistory(&out, nil)
	if !strings.Contains(out.String(), "No history") {
		t.Fatalf("empty history message missing: %s", out.String())
	}
}
