package analyses

import (
	"time"

	"resume-screener/internal/areas"
)

// Analysis is the structured signal extracted from one résumé. Never updated.
type Analysis struct {
	ID                      string       `json:"id"`
	ResumeID                string       `json:"resumeId"`
	Name                    *string      `json:"name"`
	Email                   *string      `json:"email"`
	Phone                   *string      `json:"phone"`
	Areas                   []areas.Area `json:"areas"`
	CultureScore            int          `json:"cultureScore"`
	CultureScoreDescription *string      `json:"cultureScoreDescription"`
	RealExperience          bool         `json:"realExperience"`
	Summary                 *string      `json:"summary"`
	CreatedAt               time.Time    `json:"createdAt"`
}

// ResumeInfo carries the owning résumé's display fields.
type ResumeInfo struct {
	ID       string `json:"id"`
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
	URL      string `json:"url"`
}

// AnalysisView is an Analysis joined with its résumé.
type AnalysisView struct {
	Analysis
	Resume ResumeInfo `json:"resume"`
}

// Order selects the listing sort.
type Order string

const (
	OrderNewest    Order = "newest"
	OrderOldest    Order = "oldest"
	OrderScoreDesc Order = "score_desc"
	OrderScoreAsc  Order = "score_asc"
)

// Valid reports whether o is a known ordering.
func (o Order) Valid() bool {
	switch o {
	case OrderNewest, OrderOldest, OrderScoreDesc, OrderScoreAsc:
		return true
	}
	return false
}

const (
	DefaultPerPage    = 20
	MaxPerPage        = 100
	DefaultWindowDays = 7
)

// FindParams selects a page of analyses.
type FindParams struct {
	Page    int
	PerPage int
	Search  string
	Order   Order
}

// Normalized applies defaults and bounds.
func (p FindParams) Normalized() FindParams {
	if p.Page < 1 {
		p.Page = 1
	}
	switch {
	case p.PerPage == 0:
		p.PerPage = DefaultPerPage
	case p.PerPage < 1:
		p.PerPage = 1
	case p.PerPage > MaxPerPage:
		p.PerPage = MaxPerPage
	}
	if !p.Order.Valid() {
		p.Order = OrderNewest
	}
	return p
}

// Offset is the number of rows skipped before the requested page.
func (p FindParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Page is one page of the analyses listing.
type Page struct {
	Items      []AnalysisView `json:"items"`
	Page       int            `json:"page"`
	PerPage    int            `json:"perPage"`
	Total      int            `json:"total"`
	TotalPages int            `json:"totalPages"`
}

// TotalPages returns ceil(total/perPage), never less than 1.
func TotalPages(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}

// DailyStat is one UTC calendar-day bucket.
type DailyStat struct {
	Date             string  `json:"date"`
	Total            int     `json:"total"`
	AvgScore         float64 `json:"avgScore"`
	WithExperience   int     `json:"withExperience"`
	EducationAligned int     `json:"educationAligned"`
}

// SummaryStats is the all-time and windowed aggregate.
type SummaryStats struct {
	TotalAnalyses         int                `json:"totalAnalyses"`
	AvgCultureScore       float64            `json:"avgCultureScore"`
	WithExperience        int                `json:"withExperience"`
	EducationAligned      int                `json:"educationAligned"`
	ByArea                map[areas.Area]int `json:"byArea"`
	NewAnalysesLastWindow int                `json:"newAnalysesLastWindow"`
	NewAnalysesPrevWindow int                `json:"newAnalysesPrevWindow"`
}

// Summary adds the derived window change to SummaryStats.
type Summary struct {
	SummaryStats
	WindowDays          int     `json:"windowDays"`
	LastWindowChangePct float64 `json:"lastWindowChangePct"`
}

// EmptyByArea returns a map with every area set to zero.
func EmptyByArea() map[areas.Area]int {
	out := make(map[areas.Area]int, len(areas.All()))
	for _, a := range areas.All() {
		out[a] = 0
	}
	return out
}

// ChangePercent compares two window counts. With no previous activity the change
// is 100 when the last window has any, else 0.
func ChangePercent(last, prev int) float64 {
	if prev == 0 {
		if last > 0 {
			return 100
		}
		return 0
	}
	return float64(last-prev) / float64(prev) * 100
}
