package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"resume-screener/internal/ai"
	"resume-screener/internal/shared/telemetry"
)

const (
	providerName    = "gemini"
	defaultModel    = "gemini-2.5-flash"
	defaultMimeType = "application/pdf"
	temperature     = 0.2
	topP            = 0.9
)

type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Extractor sends résumés inline to Gemini and returns its JSON answer.
type Extractor struct {
	models  generator
	model   string
	timeout time.Duration
	prompt  ai.Prompt
}

// New creates an Extractor backed by the Gemini API.
func New(ctx context.Context, apiKey, model string, timeout time.Duration) (*Extractor, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return newExtractor(client.Models, model, timeout), nil
}

func newExtractor(models generator, model string, timeout time.Duration) *Extractor {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	return &Extractor{
		models:  models,
		model:   model,
		timeout: timeout,
		prompt:  ai.ScreeningPrompt(),
	}
}

// Extract implements ai.Extractor.
func (e *Extractor) Extract(ctx context.Context, doc ai.Document) (json.RawMessage, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	mimeType := strings.TrimSpace(doc.MimeType)
	if mimeType == "" {
		mimeType = defaultMimeType
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(e.prompt.System),
			genai.NewPartFromText(e.prompt.Institution),
			genai.NewPartFromText(e.prompt.Rubric),
			genai.NewPartFromBytes(doc.Body, mimeType),
			genai.NewPartFromText(ai.FileLabel(doc.FileName)),
			genai.NewPartFromText(e.prompt.Instruction),
		}, genai.RoleUser),
	}
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](temperature),
		TopP:             genai.Ptr[float32](topP),
	}

	start := time.Now()
	resp, err := e.models.GenerateContent(ctx, e.model, contents, cfg)
	if err != nil {
		return nil, ai.Failed(providerName, err)
	}

	text := ai.CleanJSONBlock(responseText(resp))
	if text == "" {
		return nil, ai.Failed(providerName, errors.New("empty response"))
	}

	telemetry.Info("ai.extract.response", map[string]any{
		"provider":    providerName,
		"model":       e.model,
		"file_name":   doc.FileName,
		"duration_ms": time.Since(start).Milliseconds(),
		"bytes":       len(text),
	})
	return json.RawMessage(text), nil
}

// Model returns the configured model name.
func (e *Extractor) Model() string {
	return e.model
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought || strings.TrimSpace(part.Text) == "" {
				continue
			}
			b.WriteString(part.Text)
		}
		// only the first candidate carries the answer
		if b.Len() > 0 {
			break
		}
	}
	return strings.TrimSpace(b.String())
}

var _ ai.Extractor = (*Extractor)(nil)
