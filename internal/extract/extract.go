// Package extract pulls plain text out of résumé documents.
package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	mimePDF  = "application/pdf"
	mimeDOC  = "application/msword"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeZip  = "application/zip"

	docxBody = "word/document.xml"
)

// ErrUnsupported is returned for formats without a text extractor.
var ErrUnsupported = errors.New("unsupported document format")

// Text returns the readable lines of a PDF or DOCX résumé, blank lines removed.
func Text(ctx context.Context, data []byte, mimeType, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch format := detectFormat(mimeType, fileName, data); format {
	case mimePDF:
		return pdfText(data)
	case mimeDOCX:
		return docxText(data)
	case mimeDOC:
		return "", fmt.Errorf("%w: legacy word documents (%s)", ErrUnsupported, fileName)
	default:
		return "", fmt.Errorf("%w: unsupported mime type: %s", ErrUnsupported, format)
	}
}

// detectFormat trusts the declared type unless it is a generic container, in
// which case the archive layout or the file extension decides.
func detectFormat(mimeType, fileName string, data []byte) string {
	declared, _, _ := strings.Cut(mimeType, ";")
	declared = strings.ToLower(strings.TrimSpace(declared))
	if declared != mimeZip && declared != "application/octet-stream" && declared != "" {
		return declared
	}
	if zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data))); err == nil {
		if f, err := zr.Open(docxBody); err == nil {
			f.Close()
			return mimeDOCX
		}
	}
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".docx":
		return mimeDOCX
	case ".pdf":
		return mimePDF
	}
	return declared
}

func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("pdf page %d: %w", i, err)
		}
		sb.WriteString(text)
		sb.WriteByte('\n')
	}
	return tidy(sb.String()), nil
}

func docxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	body, err := zr.Open(docxBody)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer body.Close()

	var sb strings.Builder
	dec := xml.NewDecoder(body)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read docx: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			if t.Name.Local == "tab" {
				sb.WriteByte(' ')
			}
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				sb.WriteByte('\n')
			}
		}
	}
	return tidy(sb.String()), nil
}

func tidy(raw string) string {
	lines := strings.Split(raw, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
