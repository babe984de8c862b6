package shellparse

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nlshell/nlsh/internal/domain"
)

func TestSegmentSplitsOnChainOperator(t *testing.T) {
	segments, err := New().Segment("ls -la && rm file.txt")
	if err != nil {
		t.Fatalf("Segment error: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d: %+v", len(segments), segments)
	}
	if segments[0].Raw != "ls -la" || segments[1].Raw != "rm file.txt" {
		t.Fatalf("unexpected segment texts: %q, %q", segments[0].Raw, segments[1].Raw)
	}
	if segments[0].Next != domain.OpAnd {
		t.Fatalf("expected && joining segments, got %q", segments[0].Next)
	}
	if segments[1].Next != domain.OpNone {
		t.Fatalf("last segment should have no trailing operator, got %q", segments[1].Next)
	}
}

func TestSegmentOperatorsInsideQuotesAreLiteral(t *testing.T) {
	segments, err := New().Segment("echo 'a;b'")
	if err != nil {
		t.Fatalf("Segment error: %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("expected a single segment, got %d: %+v", len(segments), segments)
	}
	want := []domain.Token{{Text: "echo"}, {Text: "a;b"}}
	if diff := cmp.Diff(want, segments[0].Tokens); diff != "" {
		t.Fatalf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestSegmentOperatorVariants(t *testing.T) {
	cases := []struct {
		name  string
		input string
		texts []string
		ops   []domain.Operator
	}{
		{
			name:  "semicolon",
			input: "cd /tmp; ls",
			texts: []string{"cd /tmp", "ls"},
			ops:   []domain.Operator{domain.OpSeq, domain.OpNone},
		},
		{
			name:  "pipe",
			input: "ps aux | grep nginx",
			texts: []string{"ps aux", "grep nginx"},
			ops:   []domain.Operator{domain.OpPipe, domain.OpNone},
		},
		{
			name:  "or",
			input: "make || echo failed",
			texts: []string{"make", "echo failed"},
			ops:   []domain.Operator{domain.OpOr, domain.OpNone},
		},
		{
			name:  "double quotes protect operators",
			input: `echo "a && b" && ls`,
			texts: []string{`echo "a && b"`, "ls"},
			ops:   []domain.Operator{domain.OpAnd, domain.OpNone},
		},
		{
			name:  "escaped semicolon stays literal",
			input: `echo a\;b`,
			texts: []string{`echo a\;b`},
			ops:   []domain.Operator{domain.OpNone},
		},
		{
			name:  "background ampersand is not an operator",
			input: "sleep 5 &",
			texts: []string{"sleep 5 &"},
			ops:   []domain.Operator{domain.OpNone},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			segments, err := New().Segment(tc.input)
			if err != nil {
				t.Fatalf("Segment(%q) error: %v", tc.input, err)
			}
			if len(segments) != len(tc.texts) {
				t.Fatalf("expected %d segments, got %d: %+v", len(tc.texts), len(segments), segments)
			}
			for i, seg := range segments {
				if seg.Raw != tc.texts[i] {
					t.Errorf("segment %d: want %q, got %q", i, tc.texts[i], seg.Raw)
				}
				if seg.Next != tc.ops[i] {
					t.Errorf("segment %d operator: want %q, got %q", i, tc.ops[i], seg.Next)
				}
			}
		})
	}
}

func TestSegmentMalformedInput(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"unterminated single quote", "echo 'oops"},
		{"unterminated double quote", `grep "pattern file.txt`},
		{"trailing escape", `echo abc\`},
		{"empty input", "   "},
		{"dangling operator", "ls &&"},
		{"leading operator", "| grep x"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New().Segment(tc.input)
			if !errors.Is(err, domain.ErrMalformedInput) {
				t.Fatalf("Segment(%q): expected ErrMalformedInput, got %v", tc.input, err)
			}
		})
	}
}

func TestSegmentTokensResolveQuoting(t *testing.T) {
	segments, err := New().Segment(`grep "two words" file.txt`)
	if err != nil {
		t.Fatalf("Segment error: %v", err)
	}
	want := []domain.Token{{Text: "grep"}, {Text: "two words"}, {Text: "file.txt"}}
	if diff := cmp.Diff(want, segments[0].Tokens); diff != "" {
		t.Fatalf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestCommandTokensMarkOperatorBoundaries(t *testing.T) {
	segments, err := New().Segment("ls | wc -l")
	if err != nil {
		t.Fatalf("Segment error: %v", err)
	}
	cmd := domain.NewCommand("ls | wc -l")
	if err := cmd.SetSegments(segments); err != nil {
		t.Fatalf("SetSegments error: %v", err)
	}
	tokens := cmd.Tokens()
	want := []domain.Token{
		{Text: "ls"},
		{Text: "|", Operator: true},
		{Text: "wc"},
		{Text: "-l"},
	}
	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Fatalf("flattened tokens mismatch (-want +got):\n%s", diff)
	}
}
