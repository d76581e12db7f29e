package resumes

import "context"

// Repo persists résumé records.
type Repo interface {
	// Create assigns the ID and creation time when they are empty and stores the record.
	Create(ctx context.Context, r Resume) (Resume, error)
	DeleteByID(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Resume, error)
}
