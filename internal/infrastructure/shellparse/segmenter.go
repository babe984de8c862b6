// Package shellparse splits raw shell command strings into segments and
// tokens ahead of safety classification. It understands quoting, escapes,
// and the chaining/pipe operators, and nothing more: here-docs, subshells,
// and expansion are left to the real shell.
package shellparse

import (
	"strings"

	"github.com/google/shlex"

	"github.com/nlshell/nlsh/internal/domain"
	"github.com/nlshell/nlsh/internal/ports"
)

// Segmenter splits on unquoted ;, &&, || and | while preserving quoted
// substrings verbatim.
type Segmenter struct{}

// New builds a Segmenter.
func New() *Segmenter {
	return &Segmenter{}
}

// Segment implements ports.Segmenter. The operator joining each pair of
// segments is retained for display; it plays no part in risk computation.
func (s *Segmenter) Segment(raw string) ([]domain.Segment, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, domain.NewMalformedInput("empty command")
	}

	parts, err := splitOperators(raw)
	if err != nil {
		return nil, err
	}

	segments := make([]domain.Segment, 0, len(parts))
	for _, part := range parts {
		tokens, err := tokenize(part.text)
		if err != nil {
			return nil, err
		}
		segments = append(segments, domain.Segment{
			Raw:    part.text,
			Tokens: tokens,
			Next:   part.next,
		})
	}
	return segments, nil
}

type rawSegment struct {
	text string
	next domain.Operator
}

// splitOperators scans the string once, tracking quote and escape state.
// A lone & (background job) is not a chaining operator and stays in the
// segment text.
func splitOperators(raw string) ([]rawSegment, error) {
	var (
		parts    []rawSegment
		current  strings.Builder
		inSingle bool
		inDouble bool
		escaped  bool
	)
	runes := []rune(raw)

	cutHere := func(op domain.Operator) error {
		text := strings.TrimSpace(current.String())
		if text == "" {
			return domain.NewMalformedInput("missing command around %q", string(op))
		}
		parts = append(parts, rawSegment{text: text, next: op})
		current.Reset()
		return nil
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if escaped {
			current.WriteRune(r)
			escaped = false
			continue
		}

		switch {
		case r == '\\' && !inSingle:
			current.WriteRune(r)
			escaped = true
		case r == '\'' && !inDouble:
			current.WriteRune(r)
			inSingle = !inSingle
		case r == '"' && !inSingle:
			current.WriteRune(r)
			inDouble = !inDouble
		case inSingle || inDouble:
			current.WriteRune(r)
		case r == ';':
			if err := cutHere(domain.OpSeq); err != nil {
				return nil, err
			}
		case r == '&' && i+1 < len(runes) && runes[i+1] == '&':
			if err := cutHere(domain.OpAnd); err != nil {
				return nil, err
			}
			i++
		case r == '|' && i+1 < len(runes) && runes[i+1] == '|':
			if err := cutHere(domain.OpOr); err != nil {
				return nil, err
			}
			i++
		case r == '|':
			if err := cutHere(domain.OpPipe); err != nil {
				return nil, err
			}
		default:
			current.WriteRune(r)
		}
	}

	if inSingle || inDouble {
		return nil, domain.NewMalformedInput("unterminated quote")
	}
	if escaped {
		return nil, domain.NewMalformedInput("trailing escape character")
	}

	text := strings.TrimSpace(current.String())
	if text == "" {
		return nil, domain.NewMalformedInput("missing command after operator")
	}
	parts = append(parts, rawSegment{text: text, next: domain.OpNone})
	return parts, nil
}

// tokenize splits one segment into words on unquoted whitespace, resolving
// quotes. POSIX word splitting comes from shlex; quoting was already
// validated by the scanner, so an error here means genuinely bad input.
func tokenize(segment string) ([]domain.Token, error) {
	words, err := shlex.Split(segment)
	if err != nil {
		return nil, domain.NewMalformedInput("tokenize %q: %v", segment, err)
	}
	tokens := make([]domain.Token, 0, len(words))
	for _, word := range words {
		tokens = append(tokens, domain.Token{Text: word})
	}
	return tokens, nil
}

var _ ports.Segmenter = (*Segmenter)(nil)
