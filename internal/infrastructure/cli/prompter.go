package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/nlshell/nlsh/internal/domain"
	"github.com/nlshell/nlsh/internal/ports"
)

// Prompter implements the confirmation gate over stdio. A prompter built on
// a non-terminal stdin reports Enabled() == false, which makes the pipeline
// reject caution-level commands instead of blocking on a read.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewPrompter constructs a prompter referencing stdio. Passing explicit
// streams (tests, embedding) marks the prompter interactive.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	interactive := true
	if in == nil {
		in = os.Stdin
		interactive = isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: interactive,
	}
}

// Enabled reports whether a user is present to answer.
func (p *Prompter) Enabled() bool {
	return p.interactive
}

// Confirm shows the verdict and asks for approval. Only caution-level
// commands are ever offered; anything else is refused outright.
func (p *Prompter) Confirm(level domain.RiskLevel, command string, reasons []string) (bool, error) {
	fmt.Fprintf(p.out, "\n%s risk detected\n", strings.ToUpper(string(level)))
	for _, reason := range reasons {
		fmt.Fprintf(p.out, " - %s\n", reason)
	}
	fmt.Fprintf(p.out, "Command:\n  %s\n", command)

	if level != domain.RiskCaution {
		return false, nil
	}
	return p.ask("[y/N]: ")
}

func (p *Prompter) ask(prompt string) (bool, error) {
	fmt.Fprint(p.out, "Run it? ", prompt)
	line, err := p.in.ReadString('\n')
	if err != nil {
		return false, err
	}
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes", nil
}

var _ ports.ConfirmationPrompter = (*Prompter)(nil)
