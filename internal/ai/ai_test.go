package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: `{"a":1}`, want: `{"a":1}`},
		{name: "json fence", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "upper fence", in: "```JSON {\"a\":1}```", want: `{"a":1}`},
		{name: "bare fence", in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "whitespace", in: "  \n{\"a\":1}\n ", want: `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanJSONBlock(tt.in); got != tt.want {
				t.Fatalf("CleanJSONBlock(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestUnconfiguredFails(t *testing.T) {
	_, err := Unconfigured{Provider: "gemini"}.Extract(context.Background(), Document{FileName: "cv.pdf"})
	if !errors.Is(err, ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}

func TestScreeningPromptListsEveryArea(t *testing.T) {
	p := ScreeningPrompt()
	for _, label := range []string{"Ministerio", "Embaixada do Amor", "Vale do Silicio", "Time Square", "Hogwarts", "Docencia"} {
		if !strings.Contains(p.Institution, label) {
			t.Fatalf("institution context missing area %q", label)
		}
	}
	if !strings.Contains(p.Instruction, "culture_score_description") {
		t.Fatalf("instruction missing output shape")
	}
}
