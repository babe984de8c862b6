package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/nlshell/nlsh/internal/domain"
	"github.com/nlshell/nlsh/internal/infrastructure/cli"
)

func main() {
	ctx := context.Background()
	opts := cli.Options{Verbose: isVerbose()}

	root, err := cli.NewRootCmd(ctx, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(domain.ExitInternalError)
	}

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(domain.ExitCodeFor(err))
	}
}

func isVerbose() bool {
	return strings.EqualFold(os.Getenv("NLSH_DEBUG"), "1") || strings.EqualFold(os.Getenv("NLSH_DEBUG"), "true")
}
