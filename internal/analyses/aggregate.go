package analyses

import (
	"sort"
	"strings"
	"time"

	"resume-screener/internal/areas"
)

const dateLayout = "2006-01-02"

func matchesSearch(v AnalysisView, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, field := range []*string{v.Name, v.Email, v.Summary, &v.Resume.FileName} {
		if field != nil && strings.Contains(strings.ToLower(*field), term) {
			return true
		}
	}
	return false
}

func sortViews(views []AnalysisView, order Order) {
	var less func(a, b AnalysisView) bool
	switch order {
	case OrderOldest:
		less = func(a, b AnalysisView) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case OrderScoreDesc:
		less = func(a, b AnalysisView) bool {
			if a.CultureScore != b.CultureScore {
				return a.CultureScore > b.CultureScore
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
	case OrderScoreAsc:
		less = func(a, b AnalysisView) bool {
			if a.CultureScore != b.CultureScore {
				return a.CultureScore < b.CultureScore
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
	default:
		less = func(a, b AnalysisView) bool { return a.CreatedAt.After(b.CreatedAt) }
	}
	sort.SliceStable(views, func(i, j int) bool { return less(views[i], views[j]) })
}

func paginate(views []AnalysisView, params FindParams) Page {
	total := len(views)
	start := params.Offset()
	if start > total {
		start = total
	}
	end := start + params.PerPage
	if end > total {
		end = total
	}
	items := make([]AnalysisView, end-start)
	copy(items, views[start:end])
	return Page{
		Items:      items,
		Page:       params.Page,
		PerPage:    params.PerPage,
		Total:      total,
		TotalPages: TotalPages(total, params.PerPage),
	}
}

type bucket struct {
	total, scoreSum, withExperience, educationAligned int
}

func (b *bucket) add(a Analysis) {
	b.total++
	b.scoreSum += a.CultureScore
	if a.RealExperience {
		b.withExperience++
	}
	if areas.IsEducationAligned(a.Areas) {
		b.educationAligned++
	}
}

func (b bucket) avg() float64 {
	if b.total == 0 {
		return 0
	}
	return float64(b.scoreSum) / float64(b.total)
}

// dailyBuckets groups analyses created within [start, end] by UTC day.
// Days without analyses are omitted.
func dailyBuckets(list []Analysis, start, end time.Time) []DailyStat {
	byDay := make(map[string]*bucket)
	for _, a := range list {
		if a.CreatedAt.Before(start) || a.CreatedAt.After(end) {
			continue
		}
		day := a.CreatedAt.UTC().Format(dateLayout)
		b, ok := byDay[day]
		if !ok {
			b = &bucket{}
			byDay[day] = b
		}
		b.add(a)
	}

	out := make([]DailyStat, 0, len(byDay))
	for day, b := range byDay {
		out = append(out, DailyStat{
			Date:             day,
			Total:            b.total,
			AvgScore:         b.avg(),
			WithExperience:   b.withExperience,
			EducationAligned: b.educationAligned,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// windowBounds returns the start of the last window and the start of the one before it.
func windowBounds(windowDays int, now time.Time) (lastStart, prevStart time.Time) {
	w := time.Duration(windowDays) * 24 * time.Hour
	return now.Add(-w), now.Add(-2 * w)
}

func summarize(list []Analysis, windowDays int, now time.Time) SummaryStats {
	var all bucket
	stats := SummaryStats{ByArea: EmptyByArea()}
	lastStart, prevStart := windowBounds(windowDays, now)

	for _, a := range list {
		all.add(a)
		for _, area := range a.Areas {
			if _, ok := stats.ByArea[area]; ok {
				stats.ByArea[area]++
			}
		}
		switch {
		case !a.CreatedAt.Before(lastStart):
			stats.NewAnalysesLastWindow++
		case !a.CreatedAt.Before(prevStart):
			stats.NewAnalysesPrevWindow++
		}
	}

	stats.TotalAnalyses = all.total
	stats.AvgCultureScore = all.avg()
	stats.WithExperience = all.withExperience
	stats.EducationAligned = all.educationAligned
	return stats
}
