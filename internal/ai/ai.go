// Package ai defines the extraction boundary implemented by each AI provider.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrExtractionFailed wraps every provider, transport or empty-response failure.
var ErrExtractionFailed = errors.New("ai extraction failed")

// Document is a résumé handed to a provider.
type Document struct {
	FileName string
	MimeType string
	Body     []byte
}

// Extractor returns the provider's raw JSON answer for a document. The payload is
// untrusted and must go through extraction.Validate before use.
type Extractor interface {
	Extract(ctx context.Context, doc Document) (json.RawMessage, error)
}

// ExtractorFunc adapts a function to Extractor.
type ExtractorFunc func(ctx context.Context, doc Document) (json.RawMessage, error)

// Extract calls f.
func (f ExtractorFunc) Extract(ctx context.Context, doc Document) (json.RawMessage, error) {
	return f(ctx, doc)
}

// Unconfigured is used when no provider credentials are available.
type Unconfigured struct {
	Provider string
}

// Extract always fails.
func (u Unconfigured) Extract(_ context.Context, _ Document) (json.RawMessage, error) {
	return nil, fmt.Errorf("%w: provider %q not configured", ErrExtractionFailed, u.Provider)
}

// CleanJSONBlock strips the markdown code fence some models wrap around JSON.
func CleanJSONBlock(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
		s = s[4:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// Failed wraps cause as an ErrExtractionFailed.
func Failed(provider string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrExtractionFailed, provider, cause)
}
