package ingestion

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

const (
	MimePDF  = "application/pdf"
	MimeDOC  = "application/msword"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var extMimes = map[string]string{
	".pdf":  MimePDF,
	".doc":  MimeDOC,
	".docx": MimeDOCX,
}

// AllowedMime reports whether the media type is an accepted résumé format.
func AllowedMime(mimeType string) bool {
	switch mimeType {
	case MimePDF, MimeDOC, MimeDOCX:
		return true
	}
	return false
}

// ResolveMime normalizes the declared media type, falling back to the file
// extension when the client sent none or a generic one.
func ResolveMime(fileName, declared string) string {
	if parsed, _, err := mime.ParseMediaType(declared); err == nil {
		declared = parsed
	}
	declared = strings.ToLower(strings.TrimSpace(declared))
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if guessed, ok := extMimes[strings.ToLower(filepath.Ext(fileName))]; ok {
		return guessed
	}
	return declared
}

// CheckInput rejects files the pipeline cannot ingest.
func CheckInput(in UploadInput) error {
	if len(in.Body) == 0 {
		return ErrEmptyFile
	}
	if !AllowedMime(in.MimeType) {
		return fmt.Errorf("%w: %s", ErrUnsupportedMedia, in.MimeType)
	}
	return nil
}
