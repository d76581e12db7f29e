package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"resume-screener/internal/ai"
	"resume-screener/internal/extract"
	"resume-screener/internal/shared/telemetry"
)

const (
	providerName   = "openai"
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
	maxResumeRunes = 60000
)

// Extractor extracts résumé text locally and asks Chat Completions for the JSON answer.
type Extractor struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	prompt     ai.Prompt
}

// Option customizes an Extractor.
type Option func(*Extractor)

// WithBaseURL points the extractor at a compatible endpoint.
func WithBaseURL(u string) Option {
	return func(e *Extractor) {
		if u = strings.TrimRight(strings.TrimSpace(u), "/"); u != "" {
			e.baseURL = u
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(e *Extractor) {
		if c != nil {
			e.httpClient = c
		}
	}
}

// New constructs an OpenAI extractor.
func New(apiKey, model string, timeout time.Duration, opts ...Option) (*Extractor, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	e := &Extractor{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: timeout},
		prompt:     ai.ScreeningPrompt(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    *float32       `json:"temperature,omitempty"`
	ResponseFormat responseFormat `json:"response_format"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Extract implements ai.Extractor.
func (e *Extractor) Extract(ctx context.Context, doc ai.Document) (json.RawMessage, error) {
	text, err := extract.Text(ctx, doc.Body, doc.MimeType, doc.FileName)
	if err != nil {
		return nil, ai.Failed(providerName, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ai.Failed(providerName, errors.New("document has no extractable text"))
	}
	if runes := []rune(text); len(runes) > maxResumeRunes {
		text = string(runes[:maxResumeRunes])
	}

	raw, err := e.complete(ctx, e.buildMessages(doc.FileName, text))
	if err != nil {
		return nil, ai.Failed(providerName, err)
	}
	return raw, nil
}

func (e *Extractor) buildMessages(fileName, resumeText string) []chatMessage {
	system := strings.Join([]string{e.prompt.System, e.prompt.Institution, e.prompt.Rubric}, "\n\n")
	user := strings.Join([]string{ai.FileLabel(fileName), resumeText, e.prompt.Instruction}, "\n\n")
	return []chatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
}

func (e *Extractor) complete(ctx context.Context, messages []chatMessage) (json.RawMessage, error) {
	temp := float32(0.2)
	payload, err := json.Marshal(chatRequest{
		Model:          e.model,
		Messages:       messages,
		Temperature:    &temp,
		ResponseFormat: responseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+e.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, fmt.Errorf("openai request timeout: %w", err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("openai response parse (status %d): %w", resp.StatusCode, err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("openai error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("openai response missing choices")
	}

	content := ai.CleanJSONBlock(parsed.Choices[0].Message.Content)
	if content == "" {
		return nil, fmt.Errorf("openai response empty content")
	}

	fields := map[string]any{"provider": providerName, "model": e.model}
	if parsed.Usage != nil {
		fields["prompt_tokens"] = parsed.Usage.PromptTokens
		fields["completion_tokens"] = parsed.Usage.CompletionTokens
		fields["total_tokens"] = parsed.Usage.TotalTokens
	}
	telemetry.Info("ai.extract.response", fields)

	return json.RawMessage(content), nil
}

var _ ai.Extractor = (*Extractor)(nil)
