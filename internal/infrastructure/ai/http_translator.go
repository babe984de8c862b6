package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/nlshell/nlsh/internal/domain"
	"github.com/nlshell/nlsh/internal/ports"
)

// promptMessage is one chat message in provider-neutral form.
type promptMessage struct {
	Role    string
	Content string
}

type httpTranslator struct {
	name       string
	model      domain.ModelDefinition
	httpClient *http.Client
	adapter    translatorAdapter
}

// translatorAdapter captures what differs between backends: the request
// body, the response shape, and the auth headers.
type translatorAdapter struct {
	buildRequest  func(domain.ModelDefinition, []promptMessage) ([]byte, error)
	parseResponse func([]byte) (string, error)
	setHeaders    func(*http.Request, domain.ModelDefinition) error
}

func newHTTPTranslator(name string, model domain.ModelDefinition, client *http.Client, adapter translatorAdapter) ports.Translator {
	return &httpTranslator{
		name:       name,
		model:      model,
		httpClient: client,
		adapter:    adapter,
	}
}

func (t *httpTranslator) Name() string {
	return t.name
}

func (t *httpTranslator) Translate(ctx context.Context, req ports.TranslationRequest) (ports.TranslationResult, error) {
	messages := renderPromptMessages(req)

	requestBody, err := t.adapter.buildRequest(t.model, messages)
	if err != nil {
		return ports.TranslationResult{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.model.Endpoint, bytes.NewReader(requestBody))
	if err != nil {
		return ports.TranslationResult{}, err
	}

	httpReq.Header.Set("content-type", "application/json")
	if err := t.adapter.setHeaders(httpReq, t.model); err != nil {
		return ports.TranslationResult{}, err
	}

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return ports.TranslationResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return ports.TranslationResult{}, fmt.Errorf("%s: %s", t.name, resp.Status)
	}

	var responseBody bytes.Buffer
	if _, err := responseBody.ReadFrom(resp.Body); err != nil {
		return ports.TranslationResult{}, err
	}

	content, err := t.adapter.parseResponse(responseBody.Bytes())
	if err != nil {
		return ports.TranslationResult{}, err
	}

	return ports.TranslationResult{
		Command: ExtractCommand(content),
		Reply:   content,
	}, nil
}

// renderPromptMessages produces the system and user messages shared by all
// backends. The system prompt pins the output contract: a single command,
// nothing else.
func renderPromptMessages(req ports.TranslationRequest) []promptMessage {
	var system strings.Builder
	system.WriteString("You translate natural language requests into a single ")
	system.WriteString(defaultString(req.Shell, "POSIX shell"))
	system.WriteString(" command.\n")
	system.WriteString("Respond with ONLY the command. No explanation, no markdown.")

	var user strings.Builder
	user.WriteString("Request:\n")
	user.WriteString(req.Prompt)
	user.WriteString("\n\nEnvironment:\n")
	if req.WorkingDir != "" {
		user.WriteString(fmt.Sprintf("- Directory: %s\n", req.WorkingDir))
	}
	if req.Shell != "" {
		user.WriteString(fmt.Sprintf("- Shell: %s\n", req.Shell))
	}
	if req.OS != "" {
		user.WriteString(fmt.Sprintf("- OS: %s\n", req.OS))
	}

	return []promptMessage{
		{Role: "system", Content: system.String()},
		{Role: "user", Content: user.String()},
	}
}

func anthropicAdapter() translatorAdapter {
	return translatorAdapter{
		buildRequest:  buildAnthropicRequest,
		parseResponse: parseAnthropicResponse,
		setHeaders:    setAnthropicHeaders,
	}
}

func openaiAdapter() translatorAdapter {
	return translatorAdapter{
		buildRequest:  buildChatCompletionRequest,
		parseResponse: parseChatCompletionResponse,
		setHeaders:    setOpenAIHeaders,
	}
}

func ollamaAdapter() translatorAdapter {
	return translatorAdapter{
		buildRequest:  buildChatCompletionRequest,
		parseResponse: parseChatCompletionResponse,
		setHeaders:    setOllamaHeaders,
	}
}

func buildAnthropicRequest(model domain.ModelDefinition, messages []promptMessage) ([]byte, error) {
	systemPrompt, chatMessages := splitSystemMessages(messages)

	request := map[string]interface{}{
		"model":      defaultString(model.ModelID, "claude-3-5-sonnet-20240620"),
		"max_tokens": defaultInt(model.MaxTokens, 1024),
		"messages":   chatMessages,
	}
	if systemPrompt != "" {
		request["system"] = systemPrompt
	}

	return json.Marshal(request)
}

func splitSystemMessages(messages []promptMessage) (string, []map[string]interface{}) {
	var systemLines []string
	var chatMessages []map[string]interface{}

	for _, msg := range messages {
		if strings.EqualFold(msg.Role, "system") {
			systemLines = append(systemLines, msg.Content)
			continue
		}
		chatMessages = append(chatMessages, map[string]interface{}{
			"role": msg.Role,
			"content": []map[string]string{
				{"type": "text", "text": msg.Content},
			},
		})
	}

	return strings.TrimSpace(strings.Join(systemLines, "\n")), chatMessages
}

func parseAnthropicResponse(body []byte) (string, error) {
	var response struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		return "", err
	}

	if len(response.Content) == 0 {
		return "", nil
	}
	return response.Content[0].Text, nil
}

func setAnthropicHeaders(req *http.Request, model domain.ModelDefinition) error {
	apiKey := getEnv(model.AuthEnvVar, "ANTHROPIC_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("missing API key: set %s or ANTHROPIC_API_KEY", model.AuthEnvVar)
	}
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	return nil
}

func buildChatCompletionRequest(model domain.ModelDefinition, messages []promptMessage) ([]byte, error) {
	chatMessages := make([]map[string]string, 0, len(messages))
	for _, msg := range messages {
		chatMessages = append(chatMessages, map[string]string{
			"role":    strings.ToLower(msg.Role),
			"content": msg.Content,
		})
	}

	request := map[string]interface{}{
		"model":    model.ModelID,
		"messages": chatMessages,
	}
	if model.MaxTokens > 0 {
		request["max_tokens"] = model.MaxTokens
	}

	return json.Marshal(request)
}

func parseChatCompletionResponse(body []byte) (string, error) {
	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		return "", err
	}

	if len(response.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

func setOpenAIHeaders(req *http.Request, model domain.ModelDefinition) error {
	apiKey := getEnv(model.AuthEnvVar, "OPENAI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("missing API key: set %s or OPENAI_API_KEY", model.AuthEnvVar)
	}
	req.Header.Set("authorization", "Bearer "+apiKey)
	return nil
}

func setOllamaHeaders(req *http.Request, model domain.ModelDefinition) error {
	return nil
}

func getEnv(primary, fallback string) string {
	if primary != "" {
		if value := os.Getenv(primary); value != "" {
			return value
		}
	}
	if fallback != "" {
		return os.Getenv(fallback)
	}
	return ""
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func defaultInt(value, fallback int) int {
	if value == 0 {
		return fallback
	}
	return value
}
