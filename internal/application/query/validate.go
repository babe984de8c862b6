package query

import (
	"regexp"
	"strings"

	"github.com/nlshell/nlsh/internal/domain"
)

// conversationalPatterns flag queries addressed at a chatbot rather than
// asking for a shell operation. Matched case-insensitively against the
// trimmed query.
var conversationalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(hi|hello|hey|greetings)\b`),
	regexp.MustCompile(`how are you`),
	regexp.MustCompile(`what'?s your name`),
	regexp.MustCompile(`who (are|created) you`),
	regexp.MustCompile(`tell me (about|a) joke`),
	regexp.MustCompile(`can you help me with .+\?`),
	regexp.MustCompile(`what do you think about`),
	regexp.MustCompile(`explain \w+ to me`),
}

// ValidateQuery rejects queries that cannot sensibly be turned into a shell
// command before any backend is contacted.
func ValidateQuery(query string) error {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return domain.NewMalformedInput("empty query")
	}

	lowered := strings.ToLower(trimmed)
	for _, pattern := range conversationalPatterns {
		if pattern.MatchString(lowered) {
			return domain.NewMalformedInput("this appears to be a conversational query rather than a shell command request")
		}
	}
	return nil
}
