package object

import (
	"context"
	"errors"
)

// ErrInvalidURL is returned by Remove for URLs the store did not produce.
var ErrInvalidURL = errors.New("object url not owned by this store")

// ObjectStore saves résumé bytes and addresses them by a public URL.
type ObjectStore interface {
	Upload(ctx context.Context, fileName string, mimeType string, body []byte) (url string, err error)
	Remove(ctx context.Context, url string) error
}
