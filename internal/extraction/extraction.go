// Package extraction turns the untrusted JSON returned by an AI extractor into a
// bounded, normalized record ready to be stored as an analysis.
package extraction

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"

	"resume-screener/internal/ai"
	"resume-screener/internal/areas"
)

const (
	MaxDescriptionRunes = 400
	MaxSummaryRunes     = 300
	MinCultureScore     = 0
	MaxCultureScore     = 10
)

// ErrMalformed marks a payload that cannot be coerced into an Extraction.
var ErrMalformed = errors.New("extraction malformed")

//go:embed schema.json
var schemaJSON string

var (
	payloadSchema = mustSchema(schemaJSON)
	validate      = validator.New()
)

// Extraction is the validated result of one résumé extraction.
type Extraction struct {
	Name                    *string
	Email                   *string
	Phone                   *string
	Areas                   []areas.Area
	CultureScore            int
	RealExperience          bool
	CultureScoreDescription *string
	Summary                 *string
}

type payload struct {
	Name                    *string  `json:"name"`
	Email                   *string  `json:"email"`
	Phone                   *string  `json:"phone"`
	Areas                   []string `json:"areas"`
	CultureScore            any      `json:"culture_score"`
	RealExperience          any      `json:"real_experience"`
	CultureScoreDescription *string  `json:"culture_score_description"`
	Summary                 *string  `json:"summary"`
}

// Validate checks the raw payload structure and coerces it into an Extraction.
// Every failure wraps ErrMalformed.
func Validate(raw json.RawMessage) (Extraction, error) {
	raw = json.RawMessage(ai.CleanJSONBlock(string(raw)))
	if len(raw) == 0 || !json.Valid(raw) {
		return Extraction{}, fmt.Errorf("%w: invalid json", ErrMalformed)
	}

	res, err := payloadSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return Extraction{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if !res.Valid() {
		return Extraction{}, fmt.Errorf("%w: %s", ErrMalformed, schemaIssues(res.Errors()))
	}

	var p payload
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&p); err != nil {
		return Extraction{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	email := optionalText(p.Email, 0)
	if email != nil {
		if err := validate.Var(*email, "email"); err != nil {
			return Extraction{}, fmt.Errorf("%w: email %q is not a valid address", ErrMalformed, *email)
		}
	}

	return Extraction{
		Name:                    optionalText(p.Name, 0),
		Email:                   email,
		Phone:                   optionalText(p.Phone, 0),
		Areas:                   areas.NormalizeAll(p.Areas),
		CultureScore:            ClampScore(coerceNumber(p.CultureScore)),
		RealExperience:          coerceBool(p.RealExperience),
		CultureScoreDescription: optionalText(p.CultureScoreDescription, MaxDescriptionRunes),
		Summary:                 optionalText(p.Summary, MaxSummaryRunes),
	}, nil
}

func optionalText(s *string, limit int) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	if limit > 0 {
		if runes := []rune(trimmed); len(runes) > limit {
			trimmed = strings.TrimSpace(string(runes[:limit]))
		}
	}
	return &trimmed
}

func schemaIssues(errs []gojsonschema.ResultError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, "; ")
}

func mustSchema(raw string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("extraction: compile schema: %v", err))
	}
	return s
}
