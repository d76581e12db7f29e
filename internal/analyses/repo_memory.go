package analyses

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"resume-screener/internal/resumes"
)

// ResumeFinder resolves the résumé an analysis belongs to.
type ResumeFinder interface {
	GetByID(ctx context.Context, id string) (resumes.Resume, error)
}

// MemoryRepo is an in-memory implementation of Repo. Analyses whose résumé no
// longer exists are hidden, mirroring the cascading delete of the SQL schema.
type MemoryRepo struct {
	mu      sync.RWMutex
	data    []Analysis
	resumes ResumeFinder
}

// NewMemoryRepo constructs a MemoryRepo. A nil finder disables the résumé join.
func NewMemoryRepo(finder ResumeFinder) *MemoryRepo {
	return &MemoryRepo{resumes: finder}
}

func (r *MemoryRepo) Create(ctx context.Context, analysis Analysis) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	if analysis.ID == "" {
		analysis.ID = uuid.NewString()
	}
	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = time.Now().UTC()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, analysis)
	return analysis, nil
}

func (r *MemoryRepo) FindMany(ctx context.Context, params FindParams) (Page, error) {
	params = params.Normalized()
	views, err := r.live(ctx)
	if err != nil {
		return Page{}, err
	}
	term := strings.TrimSpace(params.Search)
	filtered := views[:0]
	for _, v := range views {
		if matchesSearch(v, term) {
			filtered = append(filtered, v)
		}
	}
	sortViews(filtered, params.Order)
	return paginate(filtered, params), nil
}

func (r *MemoryRepo) DailyStats(ctx context.Context, start, end time.Time) ([]DailyStat, error) {
	views, err := r.live(ctx)
	if err != nil {
		return nil, err
	}
	return dailyBuckets(analysesOf(views), start, end), nil
}

func (r *MemoryRepo) SummaryStats(ctx context.Context, windowDays int, now time.Time) (SummaryStats, error) {
	views, err := r.live(ctx)
	if err != nil {
		return SummaryStats{}, err
	}
	return summarize(analysesOf(views), windowDays, now), nil
}

// live snapshots the stored analyses joined with their résumés, in insertion order.
func (r *MemoryRepo) live(ctx context.Context) ([]AnalysisView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	snapshot := make([]Analysis, len(r.data))
	copy(snapshot, r.data)
	r.mu.RUnlock()

	views := make([]AnalysisView, 0, len(snapshot))
	for _, a := range snapshot {
		view := AnalysisView{Analysis: a, Resume: ResumeInfo{ID: a.ResumeID}}
		if r.resumes != nil {
			res, err := r.resumes.GetByID(ctx, a.ResumeID)
			if errors.Is(err, resumes.ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}
			view.Resume = ResumeInfo{ID: res.ID, FileName: res.FileName, FileType: res.FileType, URL: res.URL}
		}
		views = append(views, view)
	}
	return views, nil
}

func analysesOf(views []AnalysisView) []Analysis {
	out := make([]Analysis, len(views))
	for i, v := range views {
		out[i] = v.Analysis
	}
	return out
}

var _ Repo = (*MemoryRepo)(nil)
