// Package cli wires the cobra command tree around the query pipeline.
package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nlshell/nlsh/internal/app"
	"github.com/nlshell/nlsh/internal/application/report"
	"github.com/nlshell/nlsh/internal/domain"
	"github.com/nlshell/nlsh/internal/pkg/logger"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd builds the container and wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}
	container.QueryService.Prompter = NewPrompter(nil, nil)
	return newRoot(container), nil
}

// newRoot wires the command tree around an already-built container. A bare
// `nlsh <words>` is the query command with default flags; unknown leading
// words are the prompt, not a subcommand lookup, so the root accepts
// arbitrary positionals and calls the query RunE directly (re-entering
// cobra's Execute from inside a RunE would recurse).
func newRoot(container *app.Container) *cobra.Command {
	queryCmd := newQueryCommand(container)

	root := &cobra.Command{
		Use:   "nlsh [query]",
		Short: "nlsh - natural language shell",
		Long:  "nlsh translates natural language to shell commands and runs them behind a safety policy.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return queryCmd.RunE(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(queryCmd)
	root.AddCommand(newCheckCommand(container))
	root.AddCommand(newHistoryCommand(container))
	root.AddCommand(newVersionCommand())
	return root
}

func newQueryCommand(container *app.Container) *cobra.Command {
	var (
		model      string
		noExecute  bool
		assumeYes  bool
		timeoutSec int
		workDir    string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "query [natural language]",
		Short: "Translate a request into a command and run it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				container.QueryService.Logger = logger.NewStd(true)
			}
			req := domain.QueryRequest{
				Context:         cmd.Context(),
				Prompt:          strings.Join(args, " "),
				ModelOverride:   model,
				PreviewOnly:     noExecute,
				AssumeYes:       assumeYes,
				TimeoutOverride: timeoutSec,
				WorkDirOverride: workDir,
				Debug:           verbose,
			}
			resp, err := container.QueryService.Run(req)
			RenderResponse(cmd.OutOrStdout(), resp)
			if err != nil {
				return err
			}
			if resp.ExecutionResult != nil {
				return report.ExitStatusError(report.Summarize(*resp.ExecutionResult))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "Override model name (default from config)")
	cmd.Flags().BoolVarP(&noExecute, "no-execute", "n", false, "Classify and preview only, never execute")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Approve caution-level commands without prompting (never unlocks dangerous ones)")
	cmd.Flags().IntVar(&timeoutSec, "timeout", 0, "Override execution timeout in seconds")
	cmd.Flags().StringVar(&workDir, "dir", "", "Working directory for the command")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")

	return cmd
}

func newCheckCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "check <command>",
		Short: "Classify a shell command without executing it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := domain.QueryRequest{
				Context:     cmd.Context(),
				Literal:     strings.Join(args, " "),
				PreviewOnly: true,
			}
			resp, err := container.QueryService.Run(req)
			RenderResponse(cmd.OutOrStdout(), resp)
			return err
		},
	}
}

func newHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect query history",
	}

	var limit int
	var search string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent history entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := container.HistoryStore.Records(limit, search)
			if err != nil {
				return err
			}
			RenderHistory(cmd.OutOrStdout(), records)
			return nil
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", domain.DefaultHistoryLimit, "Max entries to show")
	listCmd.Flags().StringVar(&search, "search", "", "Filter by keyword in prompt or command")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all history entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return container.HistoryStore.Clear()
		},
	}

	historyCmd.AddCommand(listCmd, clearCmd)
	return historyCmd
}
