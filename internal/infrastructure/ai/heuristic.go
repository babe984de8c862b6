package ai

import (
	"context"
	"strings"

	"github.com/nlshell/nlsh/internal/domain"
	"github.com/nlshell/nlsh/internal/ports"
)

// heuristicTranslator answers a handful of common requests offline. It is
// the fallback when a model has no recognizable endpoint.
type heuristicTranslator struct {
	model domain.ModelDefinition
}

func newHeuristicTranslator(model domain.ModelDefinition) ports.Translator {
	return &heuristicTranslator{model: model}
}

func (t *heuristicTranslator) Name() string {
	return "heuristic"
}

func (t *heuristicTranslator) Translate(_ context.Context, req ports.TranslationRequest) (ports.TranslationResult, error) {
	command := guessCommand(req.Prompt)
	return ports.TranslationResult{
		Command: command,
		Reply:   "offline fallback suggestion: " + command,
	}, nil
}

func guessCommand(prompt string) string {
	prompt = strings.ToLower(prompt)
	switch {
	case strings.Contains(prompt, "disk") && (strings.Contains(prompt, "space") || strings.Contains(prompt, "usage")):
		return "df -h"
	case strings.Contains(prompt, "list") && strings.Contains(prompt, "file"):
		return "ls -la"
	case strings.Contains(prompt, "git status"):
		return "git status"
	case strings.Contains(prompt, "docker"):
		return "docker ps"
	case strings.Contains(prompt, "memory") || strings.Contains(prompt, "ram"):
		return "free -h"
	case strings.Contains(prompt, "process"):
		return "ps aux"
	default:
		return "echo \"no translation backend configured\""
	}
}
