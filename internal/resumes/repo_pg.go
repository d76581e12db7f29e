package resumes

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new résumé row.
func (r *PGRepo) Create(ctx context.Context, res Resume) (Resume, error) {
	const query = `
INSERT INTO resumes (id, url, file_name, file_type, created_at)
VALUES ($1, $2, $3, $4, $5)`

	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now().UTC()
	}
	if _, err := r.DB.ExecContext(ctx, query, res.ID, res.URL, res.FileName, res.FileType, res.CreatedAt); err != nil {
		return Resume{}, err
	}
	return res, nil
}

// DeleteByID removes a résumé row; analyses cascade.
func (r *PGRepo) DeleteByID(ctx context.Context, id string) error {
	const query = `DELETE FROM resumes WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID loads a résumé row.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	const query = `
SELECT id, url, file_name, file_type, created_at
FROM resumes
WHERE id = $1`
	var res Resume
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&res.ID, &res.URL, &res.FileName, &res.FileType, &res.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Resume{}, ErrNotFound
	}
	if err != nil {
		return Resume{}, err
	}
	return res, nil
}

var _ Repo = (*PGRepo)(nil)
