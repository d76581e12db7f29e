package openai

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"resume-screener/internal/ai"
)

const mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

func docx(t *testing.T, text string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if _, err := w.Write([]byte(`<w:document xmlns:w="w"><w:body><w:p><w:r><w:t>` + text + `</w:t></w:r></w:p></w:body></w:document>`)); err != nil {
		t.Fatalf("write entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractSendsResumeText(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer key" {
			t.Errorf("missing bearer token")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"areas\":[\"Hogwarts\"]}"}}],"usage":{"total_tokens":12}}`))
	}))
	defer srv.Close()

	ex, err := New("key", "", time.Second, WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	raw, err := ex.Extract(context.Background(), ai.Document{FileName: "cv.docx", MimeType: mimeDOCX, Body: docx(t, "Professora de história")})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if string(raw) != `{"areas":["Hogwarts"]}` {
		t.Fatalf("unexpected payload %s", raw)
	}
	if got.Model != defaultModel || got.ResponseFormat.Type != "json_object" {
		t.Fatalf("unexpected request %+v", got)
	}
	if len(got.Messages) != 2 || !strings.Contains(got.Messages[1].Content, "Professora de história") {
		t.Fatalf("expected resume text in user message, got %+v", got.Messages)
	}
	if !strings.Contains(got.Messages[1].Content, "Arquivo: cv.docx") {
		t.Fatalf("expected file label in user message")
	}
}

func TestExtractProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"requests"}}`))
	}))
	defer srv.Close()

	ex, err := New("key", "gpt-4o", time.Second, WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = ex.Extract(context.Background(), ai.Document{FileName: "cv.docx", MimeType: mimeDOCX, Body: docx(t, "texto")})
	if !errors.Is(err, ai.ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("expected provider message in error, got %v", err)
	}
}

func TestExtractUnsupportedDocument(t *testing.T) {
	ex, err := New("key", "", time.Second, WithBaseURL("http://127.0.0.1:1"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = ex.Extract(context.Background(), ai.Document{FileName: "cv.doc", MimeType: "application/msword", Body: []byte{1, 2}})
	if !errors.Is(err, ai.ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}

func TestNewRequiresKey(t *testing.T) {
	if _, err := New("", "gpt-4o", 0); err == nil {
		t.Fatalf("expected error without api key")
	}
}
