package analyses

import (
	"context"
	"testing"
	"time"

	"resume-screener/internal/areas"
	"resume-screener/internal/resumes"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

type seed struct {
	fileName   string
	name       string
	score      int
	experience bool
	areas      []areas.Area
	age        time.Duration
}

// seedRepo stores one résumé plus analysis per seed, created fixedNow-age.
func seedRepo(t *testing.T, seeds ...seed) (*MemoryRepo, *resumes.MemoryRepo) {
	t.Helper()
	ctx := context.Background()
	resumeRepo := resumes.NewMemoryRepo()
	repo := NewMemoryRepo(resumeRepo)
	for _, s := range seeds {
		created := fixedNow.Add(-s.age)
		res, err := resumeRepo.Create(ctx, resumes.Resume{
			URL:       "/uploads/" + s.fileName,
			FileName:  s.fileName,
			FileType:  "application/pdf",
			CreatedAt: created,
		})
		if err != nil {
			t.Fatalf("seed resume: %v", err)
		}
		a := Analysis{
			ResumeID:       res.ID,
			Areas:          s.areas,
			CultureScore:   s.score,
			RealExperience: s.experience,
			CreatedAt:      created,
		}
		if s.name != "" {
			a.Name = strPtr(s.name)
		}
		if _, err := repo.Create(ctx, a); err != nil {
			t.Fatalf("seed analysis: %v", err)
		}
	}
	return repo, resumeRepo
}

const day = 24 * time.Hour
