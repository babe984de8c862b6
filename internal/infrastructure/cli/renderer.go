package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/nlshell/nlsh/internal/application/report"
	"github.com/nlshell/nlsh/internal/domain"
)

// RenderResponse prints the pipeline outcome in a plain, ASCII-only format.
func RenderResponse(out io.Writer, resp domain.QueryResponse) {
	if resp.Prompt != "" {
		fmt.Fprintf(out, "Query: %s\n", resp.Prompt)
	}
	fmt.Fprintln(out, "Command:")
	fmt.Fprintf(out, "  %s\n", resp.Command)

	renderVerdict(out, resp.Verdict)

	if resp.RejectedReason != "" && resp.ExecutionResult == nil {
		fmt.Fprintf(out, "\nNot executed: %s\n", resp.RejectedReason)
		return
	}

	if resp.ExecutionResult == nil {
		fmt.Fprintln(out, "\nCommand was not executed.")
		return
	}

	summary := report.Summarize(*resp.ExecutionResult)
	fmt.Fprintf(out, "\n%s\n", summary.Headline)
	if summary.Stdout != "" {
		fmt.Fprintln(out, "\nstdout:")
		fmt.Fprint(out, summary.Stdout)
		if !strings.HasSuffix(summary.Stdout, "\n") {
			fmt.Fprintln(out)
		}
	}
	if summary.Stderr != "" {
		fmt.Fprintln(out, "\nstderr:")
		fmt.Fprint(out, summary.Stderr)
		if !strings.HasSuffix(summary.Stderr, "\n") {
			fmt.Fprintln(out)
		}
	}
}

func renderVerdict(out io.Writer, verdict domain.Verdict) {
	fmt.Fprintf(out, "\nRisk: %s\n", strings.ToUpper(string(verdict.Level)))
	for _, finding := range verdict.Findings {
		fmt.Fprintf(out, " - [%s] %s\n", finding.RuleID, finding.Rationale)
	}
}

// RenderHistory prints history records, newest first.
func RenderHistory(out io.Writer, records []domain.HistoryRecord) {
	if len(records) == 0 {
		fmt.Fprintln(out, "No history recorded yet.")
		return
	}
	for _, rec := range records {
		status := rec.Outcome
		if !rec.Executed {
			status = "not executed (" + rec.Outcome + ")"
		}
		fmt.Fprintf(out, "%s | %s | %s | %s\n",
			humanize.Time(rec.Timestamp),
			rec.RiskLevel,
			status,
			rec.Command)
	}
}
