package local

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"resume-screener/internal/shared/storage/object"
	"resume-screener/internal/shared/util"
)

// Store implements ObjectStore using the local filesystem.
type Store struct {
	baseDir    string
	publicBase string
	basePath   string
}

// New creates a local object store rooted at baseDir whose files are served under publicBase.
func New(baseDir, publicBase string) *Store {
	publicBase = strings.TrimRight(strings.TrimSpace(publicBase), "/")
	if publicBase == "" {
		publicBase = "/uploads"
	}
	basePath := publicBase
	if u, err := url.Parse(publicBase); err == nil && u.Path != "" {
		basePath = strings.TrimRight(u.Path, "/")
	}
	return &Store{baseDir: baseDir, publicBase: publicBase, basePath: basePath}
}

// Dir returns the directory files are written to.
func (s *Store) Dir() string {
	return s.baseDir
}

// BasePath returns the URL path files are served under.
func (s *Store) BasePath() string {
	return s.basePath
}

// Upload writes body to disk under a random prefix and returns its public URL.
func (s *Store) Upload(ctx context.Context, fileName string, mimeType string, body []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}

	finalName := util.StorageName(util.RandomID(), fileName, mimeType)
	fullPath := filepath.Join(s.baseDir, finalName)
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	if _, err := f.Write(body); err != nil {
		f.Close()
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("write body: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("close file: %w", err)
	}

	return s.publicBase + "/" + finalName, nil
}

// Remove deletes the file addressed by a URL previously returned from Upload.
func (s *Store) Remove(ctx context.Context, rawURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, err := s.nameFromURL(rawURL)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.baseDir, name)); err != nil {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

func (s *Store) nameFromURL(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("%w: %v", object.ErrInvalidURL, err)
	}
	rel, ok := strings.CutPrefix(u.Path, s.basePath+"/")
	if !ok {
		return "", fmt.Errorf("%w: %s", object.ErrInvalidURL, rawURL)
	}
	name := path.Base(path.Clean("/" + rel))
	if name == "/" || name == "." || name != rel {
		return "", fmt.Errorf("%w: %s", object.ErrInvalidURL, rawURL)
	}
	return name, nil
}

var _ object.ObjectStore = (*Store)(nil)
