package resumes

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a résumé record does not exist.
var ErrNotFound = errors.New("resume not found")

// Resume is the persisted record of an uploaded file.
type Resume struct {
	ID        string
	URL       string
	FileName  string
	FileType  string
	CreatedAt time.Time
}
