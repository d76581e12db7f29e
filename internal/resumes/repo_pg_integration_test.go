package resumes_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-screener/internal/resumes"
	"resume-screener/internal/shared/storage/db/dbtest"
)

func TestPGRepo_CreateGetDelete(t *testing.T) {
	repo := &resumes.PGRepo{DB: dbtest.Postgres(t)}
	ctx := context.Background()

	created, err := repo.Create(ctx, resumes.Resume{URL: "/uploads/abc_cv.pdf", FileName: "cv.pdf", FileType: "application/pdf"})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.URL, got.URL)
	assert.Equal(t, "application/pdf", got.FileType)

	require.NoError(t, repo.DeleteByID(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, resumes.ErrNotFound)
}
