// Package ai implements the translation backends that turn a natural
// language prompt into a shell command.
package ai

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nlshell/nlsh/internal/domain"
	"github.com/nlshell/nlsh/internal/ports"
)

type translatorKind string

const (
	kindAnthropic translatorKind = "anthropic"
	kindOpenAI    translatorKind = "openai"
	kindOllama    translatorKind = "ollama"
	kindUnknown   translatorKind = "unknown"
)

type Factory struct {
	httpClient *http.Client
}

func NewFactory() *Factory {
	return &Factory{
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (f *Factory) ForModel(model domain.ModelDefinition) (ports.Translator, error) {
	switch inferTranslatorKind(model.Endpoint, model.Name) {
	case kindAnthropic:
		return newHTTPTranslator("anthropic", model, f.httpClient, anthropicAdapter()), nil
	case kindOpenAI:
		return newHTTPTranslator("openai", model, f.httpClient, openaiAdapter()), nil
	case kindOllama:
		return newHTTPTranslator("ollama", model, f.httpClient, ollamaAdapter()), nil
	case kindUnknown:
		return newHeuristicTranslator(model), nil
	default:
		return nil, fmt.Errorf("unsupported translator kind for model %s", model.Name)
	}
}

func inferTranslatorKind(endpoint string, name string) translatorKind {
	nameLower := strings.ToLower(name)

	switch {
	case strings.Contains(endpoint, "anthropic.com"):
		return kindAnthropic
	case strings.Contains(endpoint, "openai.com"):
		return kindOpenAI
	case strings.Contains(nameLower, "ollama"), strings.Contains(nameLower, "codellama"),
		strings.Contains(endpoint, "11434"), strings.Contains(endpoint, "localhost"):
		return kindOllama
	default:
		return kindUnknown
	}
}

var _ ports.TranslatorFactory = (*Factory)(nil)
