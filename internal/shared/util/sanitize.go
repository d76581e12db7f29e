package util

import (
	"path/filepath"
	"regexp"
	"strings"
)

const maxBaseNameRunes = 60

var unsafeRuns = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

var extByMime = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
}

// SanitizeBaseName reduces a file name (without its extension) to a storage-safe stem.
func SanitizeBaseName(name string) string {
	base := filepath.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	s := strings.Trim(unsafeRuns.ReplaceAllString(base, "_"), "_")
	if runes := []rune(s); len(runes) > maxBaseNameRunes {
		s = string(runes[:maxBaseNameRunes])
	}
	if s == "" {
		return "file"
	}
	return s
}

// FileExt returns the lower-cased extension of name, or a guess from the MIME type.
func FileExt(name, mimeType string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(name)))
	if ext != "" && !unsafeRuns.MatchString(strings.TrimPrefix(ext, ".")) {
		return ext
	}
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	return extByMime[clean]
}

// StorageName builds the stored object name: "<prefix>_<sanitized stem><ext>".
func StorageName(prefix, fileName, mimeType string) string {
	return prefix + "_" + SanitizeBaseName(fileName) + FileExt(fileName, mimeType)
}
