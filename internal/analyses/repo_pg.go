package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"resume-screener/internal/areas"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

var (
	educationArray = sqlTextArray(areas.Strings(areas.EducationAreas()))

	orderClauses = map[Order]string{
		OrderNewest:    "a.created_at DESC, a.id",
		OrderOldest:    "a.created_at ASC, a.id",
		OrderScoreDesc: "a.culture_score DESC, a.created_at DESC, a.id",
		OrderScoreAsc:  "a.culture_score ASC, a.created_at DESC, a.id",
	}

	likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
)

func sqlTextArray(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + strings.ReplaceAll(v, "'", "''") + "'"
	}
	return "ARRAY[" + strings.Join(quoted, ",") + "]"
}

// Create inserts a new analysis.
func (r *PGRepo) Create(ctx context.Context, analysis Analysis) (Analysis, error) {
	const query = `
INSERT INTO resume_analyses (
	id, resume_id, name, email, phone, areas, culture_score,
	culture_score_description, real_experience, summary, created_at
)
VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8, $9, $10, $11)`

	if analysis.ID == "" {
		analysis.ID = uuid.NewString()
	}
	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = time.Now().UTC()
	}
	labels := areas.Strings(analysis.Areas)
	if labels == nil {
		labels = []string{}
	}
	areasJSON, err := json.Marshal(labels)
	if err != nil {
		return Analysis{}, err
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		analysis.ID,
		analysis.ResumeID,
		nullString(analysis.Name),
		nullString(analysis.Email),
		nullString(analysis.Phone),
		string(areasJSON),
		analysis.CultureScore,
		nullString(analysis.CultureScoreDescription),
		analysis.RealExperience,
		nullString(analysis.Summary),
		analysis.CreatedAt,
	)
	if err != nil {
		return Analysis{}, err
	}
	return analysis, nil
}

// FindMany counts and loads one page inside a read-only transaction so both
// statements see the same snapshot.
func (r *PGRepo) FindMany(ctx context.Context, params FindParams) (Page, error) {
	params = params.Normalized()

	where := ""
	var args []any
	if term := strings.TrimSpace(params.Search); term != "" {
		where = `WHERE a.name ILIKE $1 OR a.email ILIKE $1 OR a.summary ILIKE $1 OR r.file_name ILIKE $1`
		args = append(args, "%"+likeEscaper.Replace(term)+"%")
	}

	countQuery := `
SELECT COUNT(*)
FROM resume_analyses a
JOIN resumes r ON r.id = a.resume_id
` + where

	pageQuery := fmt.Sprintf(`
SELECT a.id, a.resume_id, a.name, a.email, a.phone, a.areas, a.culture_score,
       a.culture_score_description, a.real_experience, a.summary, a.created_at,
       r.id, r.file_name, r.file_type, r.url
FROM resume_analyses a
JOIN resumes r ON r.id = a.resume_id
%s
ORDER BY %s
LIMIT $%d OFFSET $%d`, where, orderClauses[params.Order], len(args)+1, len(args)+2)

	tx, err := r.DB.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return Page{}, err
	}
	defer tx.Rollback()

	var total int
	if err := tx.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return Page{}, err
	}

	rows, err := tx.QueryContext(ctx, pageQuery, append(args, params.PerPage, params.Offset())...)
	if err != nil {
		return Page{}, err
	}
	defer rows.Close()

	items := make([]AnalysisView, 0, params.PerPage)
	for rows.Next() {
		view, err := scanView(rows)
		if err != nil {
			return Page{}, err
		}
		items = append(items, view)
	}
	if err := rows.Err(); err != nil {
		return Page{}, err
	}
	if err := tx.Commit(); err != nil {
		return Page{}, err
	}

	return Page{
		Items:      items,
		Page:       params.Page,
		PerPage:    params.PerPage,
		Total:      total,
		TotalPages: TotalPages(total, params.PerPage),
	}, nil
}

// DailyStats groups by the UTC calendar day of created_at.
func (r *PGRepo) DailyStats(ctx context.Context, start, end time.Time) ([]DailyStat, error) {
	query := `
SELECT to_char((created_at AT TIME ZONE 'UTC')::date, 'YYYY-MM-DD') AS day,
       COUNT(*)::int,
       COALESCE(AVG(culture_score), 0)::float8,
       COUNT(*) FILTER (WHERE real_experience)::int,
       COUNT(*) FILTER (WHERE areas ?| ` + educationArray + `)::int
FROM resume_analyses
WHERE created_at BETWEEN $1 AND $2
GROUP BY day
ORDER BY day`

	rows, err := r.DB.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []DailyStat{}
	for rows.Next() {
		var s DailyStat
		if err := rows.Scan(&s.Date, &s.Total, &s.AvgScore, &s.WithExperience, &s.EducationAligned); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// SummaryStats runs the overall, per-area and windowed aggregates concurrently.
func (r *PGRepo) SummaryStats(ctx context.Context, windowDays int, now time.Time) (SummaryStats, error) {
	overallQuery := `
SELECT COUNT(*)::int,
       COALESCE(AVG(culture_score), 0)::float8,
       COUNT(*) FILTER (WHERE real_experience)::int,
       COUNT(*) FILTER (WHERE areas ?| ` + educationArray + `)::int
FROM resume_analyses`

	const byAreaQuery = `
SELECT area, COUNT(*)::int
FROM resume_analyses, jsonb_array_elements_text(areas) AS area
GROUP BY area`

	const windowQuery = `
SELECT COUNT(*) FILTER (WHERE created_at >= $1)::int,
       COUNT(*) FILTER (WHERE created_at >= $2 AND created_at < $1)::int
FROM resume_analyses`

	stats := SummaryStats{ByArea: EmptyByArea()}
	lastStart, prevStart := windowBounds(windowDays, now)
	byArea := make(map[string]int)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.DB.QueryRowContext(gctx, overallQuery).
			Scan(&stats.TotalAnalyses, &stats.AvgCultureScore, &stats.WithExperience, &stats.EducationAligned)
	})
	g.Go(func() error {
		rows, err := r.DB.QueryContext(gctx, byAreaQuery)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var label string
			var count int
			if err := rows.Scan(&label, &count); err != nil {
				return err
			}
			byArea[label] = count
		}
		return rows.Err()
	})
	g.Go(func() error {
		return r.DB.QueryRowContext(gctx, windowQuery, lastStart, prevStart).
			Scan(&stats.NewAnalysesLastWindow, &stats.NewAnalysesPrevWindow)
	})
	if err := g.Wait(); err != nil {
		return SummaryStats{}, err
	}

	for label, count := range byArea {
		if a := areas.Area(label); a.Valid() {
			stats.ByArea[a] = count
		}
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanView(row rowScanner) (AnalysisView, error) {
	var (
		v                                     AnalysisView
		name, email, phone, description, summ sql.NullString
		areasRaw                              []byte
		resumeURL                             sql.NullString
	)
	err := row.Scan(
		&v.ID, &v.ResumeID, &name, &email, &phone, &areasRaw, &v.CultureScore,
		&description, &v.RealExperience, &summ, &v.CreatedAt,
		&v.Resume.ID, &v.Resume.FileName, &v.Resume.FileType, &resumeURL,
	)
	if err != nil {
		return AnalysisView{}, err
	}
	var labels []string
	if len(areasRaw) > 0 {
		if err := json.Unmarshal(areasRaw, &labels); err != nil {
			return AnalysisView{}, fmt.Errorf("decode areas for analysis %s: %w", v.ID, err)
		}
	}
	v.Areas = areas.FromStrings(labels)
	v.Name = stringPtr(name)
	v.Email = stringPtr(email)
	v.Phone = stringPtr(phone)
	v.CultureScoreDescription = stringPtr(description)
	v.Summary = stringPtr(summ)
	v.Resume.URL = resumeURL.String
	return v, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid || strings.TrimSpace(ns.String) == "" {
		return nil
	}
	s := ns.String
	return &s
}

var _ Repo = (*PGRepo)(nil)
