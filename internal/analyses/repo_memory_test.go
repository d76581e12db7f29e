package analyses

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-screener/internal/areas"
)

func TestMemoryRepoFindManyPagination(t *testing.T) {
	var seeds []seed
	for i := 0; i < 45; i++ {
		seeds = append(seeds, seed{fileName: "cv.pdf", score: i % 11, age: day})
	}
	repo, _ := seedRepo(t, seeds...)

	page, err := repo.FindMany(context.Background(), FindParams{Page: 3, PerPage: 20})
	require.NoError(t, err)
	assert.Equal(t, 45, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Items, 5)

	page, err = repo.FindMany(context.Background(), FindParams{Page: 9, PerPage: 20})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 3, page.TotalPages)
}

func TestMemoryRepoFindManyEmpty(t *testing.T) {
	repo, _ := seedRepo(t)
	page, err := repo.FindMany(context.Background(), FindParams{})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, DefaultPerPage, page.PerPage)
	assert.NotNil(t, page.Items)
}

func TestMemoryRepoFindManyOrderAndSearch(t *testing.T) {
	repo, _ := seedRepo(t,
		seed{fileName: "ana.pdf", name: "Ana Souza", score: 4, age: 3 * day},
		seed{fileName: "bruno.pdf", name: "Bruno Lima", score: 9, age: 2 * day},
		seed{fileName: "carla_souza.pdf", name: "Carla", score: 7, age: day},
	)
	ctx := context.Background()

	page, err := repo.FindMany(ctx, FindParams{Order: OrderScoreDesc})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, []int{9, 7, 4}, scores(page.Items))

	page, err = repo.FindMany(ctx, FindParams{Order: OrderOldest})
	require.NoError(t, err)
	assert.Equal(t, []int{4, 9, 7}, scores(page.Items))

	page, err = repo.FindMany(ctx, FindParams{})
	require.NoError(t, err)
	assert.Equal(t, []int{7, 9, 4}, scores(page.Items))

	page, err = repo.FindMany(ctx, FindParams{Search: "SOUZA"})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	for _, item := range page.Items {
		assert.NotEmpty(t, item.Resume.FileName)
		assert.Equal(t, "application/pdf", item.Resume.FileType)
	}
}

func TestMemoryRepoHidesAnalysesOfDeletedResumes(t *testing.T) {
	repo, resumeRepo := seedRepo(t, seed{fileName: "a.pdf", score: 5, age: day})
	ctx := context.Background()

	page, err := repo.FindMany(ctx, FindParams{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.NoError(t, resumeRepo.DeleteByID(ctx, page.Items[0].ResumeID))

	page, err = repo.FindMany(ctx, FindParams{})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)

	stats, err := repo.SummaryStats(ctx, 7, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalAnalyses)
}

func TestMemoryRepoDailyStats(t *testing.T) {
	repo, _ := seedRepo(t,
		seed{fileName: "a.pdf", score: 8, experience: true, areas: []areas.Area{areas.Docencia}, age: 0},
		seed{fileName: "b.pdf", score: 6, areas: []areas.Area{areas.ValeDoSilicio}, age: 1},
		seed{fileName: "c.pdf", score: 5, areas: []areas.Area{areas.Hogwarts, areas.Ministerio}, age: 2 * day},
		seed{fileName: "d.pdf", score: 3, age: 40 * day},
	)

	stats, err := repo.DailyStats(context.Background(), fixedNow.Add(-7*day), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, []DailyStat{
		{Date: "2025-06-13", Total: 1, AvgScore: 5, WithExperience: 0, EducationAligned: 1},
		{Date: "2025-06-15", Total: 2, AvgScore: 7, WithExperience: 1, EducationAligned: 1},
	}, stats)
}

func TestMemoryRepoSummaryStats(t *testing.T) {
	seeds := []seed{
		{fileName: "a.pdf", score: 10, experience: true, areas: []areas.Area{areas.Docencia, areas.Hogwarts}, age: day},
		{fileName: "b.pdf", score: 2, areas: []areas.Area{areas.TimeSquare}, age: 2 * day},
	}
	for i := 0; i < 5; i++ {
		seeds = append(seeds, seed{fileName: "old.pdf", score: 6, age: 20 * day})
	}
	repo, _ := seedRepo(t, seeds...)

	stats, err := repo.SummaryStats(context.Background(), 7, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 7, stats.TotalAnalyses)
	assert.InDelta(t, 42.0/7.0, stats.AvgCultureScore, 1e-9)
	assert.Equal(t, 1, stats.WithExperience)
	assert.Equal(t, 1, stats.EducationAligned)
	assert.Equal(t, 2, stats.NewAnalysesLastWindow)
	assert.Equal(t, 0, stats.NewAnalysesPrevWindow)
	assert.Len(t, stats.ByArea, 6)
	assert.Equal(t, 1, stats.ByArea[areas.Docencia])
	assert.Equal(t, 1, stats.ByArea[areas.Hogwarts])
	assert.Equal(t, 1, stats.ByArea[areas.TimeSquare])
	assert.Equal(t, 0, stats.ByArea[areas.Ministerio])
}

func scores(items []AnalysisView) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.CultureScore
	}
	return out
}
