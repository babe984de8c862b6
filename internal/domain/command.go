package domain

import "strings"

// RiskLevel classifies how dangerous a command is to execute.
type RiskLevel string

const (
	// RiskUnclassified is the zero value; the executor refuses it.
	RiskUnclassified RiskLevel = ""
	RiskSafe         RiskLevel = "safe"
	RiskCaution      RiskLevel = "caution"
	RiskDangerous    RiskLevel = "dangerous"
)

// MoreSevere reports whether next outranks current.
func MoreSevere(next, current RiskLevel) bool {
	order := map[RiskLevel]int{
		RiskUnclassified: 0,
		RiskSafe:         1,
		RiskCaution:      2,
		RiskDangerous:    3,
	}
	return order[next] > order[current]
}

// Operator joins two adjacent segments of a compound command.
type Operator string

const (
	OpNone Operator = ""
	OpSeq  Operator = ";"
	OpAnd  Operator = "&&"
	OpOr   Operator = "||"
	OpPipe Operator = "|"
)

// Token is a single shell word with quoting resolved. Operator tokens mark
// the boundary between segments when a command is flattened.
type Token struct {
	Text     string
	Operator bool
}

// Segment is one sub-command produced by splitting on chaining/pipe
// operators. Next is the operator joining it to the following segment and is
// kept for display only; risk is judged per segment.
type Segment struct {
	Raw    string
	Tokens []Token
	Next   Operator
}

// Normalized returns the segment's tokens joined by single spaces, with
// quoting already resolved. Safety rules match against this form.
func (s Segment) Normalized() string {
	words := make([]string, 0, len(s.Tokens))
	for _, tok := range s.Tokens {
		words = append(words, tok.Text)
	}
	return strings.Join(words, " ")
}

// Finding records why a rule matched one segment.
type Finding struct {
	Segment   string
	RuleID    string
	Level     RiskLevel
	Rationale string
}

// Verdict is the aggregate classification of a command: the highest risk
// level across all segments plus the per-segment rationale.
type Verdict struct {
	Level    RiskLevel
	Findings []Finding
}

// Reasons flattens finding rationales for display.
func (v Verdict) Reasons() []string {
	reasons := make([]string, 0, len(v.Findings))
	for _, f := range v.Findings {
		reasons = append(reasons, f.Rationale)
	}
	return reasons
}

// Command is a shell command moving through the validation pipeline.
// Its risk level is assigned exactly once, at classification.
type Command struct {
	Raw      string
	Segments []Segment

	state     CommandState
	verdict   Verdict
	confirmed bool
}

// NewCommand wraps a raw command string in the Received state.
func NewCommand(raw string) *Command {
	return &Command{Raw: raw, state: StateReceived}
}

// State returns the current lifecycle state.
func (c *Command) State() CommandState { return c.state }

// Risk returns the classified risk level (RiskUnclassified before
// classification).
func (c *Command) Risk() RiskLevel { return c.verdict.Level }

// Verdict returns the classification verdict.
func (c *Command) Verdict() Verdict { return c.verdict }

// Confirmed reports whether the user approved a caution-level command.
func (c *Command) Confirmed() bool { return c.confirmed }

// Tokens flattens all segments into a single token stream, inserting
// operator tokens at segment boundaries.
func (c *Command) Tokens() []Token {
	var tokens []Token
	for _, seg := range c.Segments {
		tokens = append(tokens, seg.Tokens...)
		if seg.Next != OpNone {
			tokens = append(tokens, Token{Text: string(seg.Next), Operator: true})
		}
	}
	return tokens
}

// SetSegments records the segmenter output and moves to Segmented.
func (c *Command) SetSegments(segments []Segment) error {
	if err := c.transition(StateSegmented); err != nil {
		return err
	}
	c.Segments = segments
	return nil
}

// Classify assigns the verdict. A command transitions risk level exactly
// once; a second call fails.
func (c *Command) Classify(v Verdict) error {
	if c.state == StateClassified {
		return NewInternalError("command already classified")
	}
	if err := c.transition(StateClassified); err != nil {
		return err
	}
	c.verdict = v
	return nil
}

// Confirm records explicit user approval of a caution-level command.
func (c *Command) Confirm() error {
	if c.verdict.Level != RiskCaution {
		return NewInternalError("only caution-level commands take confirmation")
	}
	if err := c.transition(StateConfirmed); err != nil {
		return err
	}
	c.confirmed = true
	return nil
}

// Reject terminates the command without execution.
func (c *Command) Reject() error { return c.transition(StateRejected) }

// Begin marks the command as executing.
func (c *Command) Begin() error { return c.transition(StateExecuting) }

// Finish records the terminal execution state.
func (c *Command) Finish(state CommandState) error { return c.transition(state) }

func (c *Command) transition(next CommandState) error {
	if !c.state.CanTransitionTo(next) {
		return NewInternalError("invalid state transition " + string(c.state) + " -> " + string(next))
	}
	c.state = next
	return nil
}
