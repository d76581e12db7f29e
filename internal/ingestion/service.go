package ingestion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resume-screener/internal/ai"
	"resume-screener/internal/analyses"
	"resume-screener/internal/extraction"
	"resume-screener/internal/resumes"
	"resume-screener/internal/shared/metrics"
	"resume-screener/internal/shared/result"
	"resume-screener/internal/shared/storage/object"
	"resume-screener/internal/shared/telemetry"
)

// AnalysisWriter persists a validated analysis.
type AnalysisWriter interface {
	Create(ctx context.Context, analysis analyses.Analysis) (analyses.Analysis, error)
}

// Notifier is told about every analysis that was committed.
type Notifier interface {
	AnalysisCreated(ctx context.Context)
}

// UploadInput is one résumé file.
type UploadInput struct {
	FileName string
	MimeType string
	Body     []byte
}

// UploadOutput is returned on success.
type UploadOutput struct {
	URL      string `json:"url"`
	ResumeID string `json:"-"`
}

// Service runs the ingestion saga: store bytes, record the résumé, extract with
// AI, validate, record the analysis. Any failure undoes the committed steps.
type Service struct {
	Store     object.ObjectStore
	Resumes   resumes.Repo
	Analyses  AnalysisWriter
	Extractor ai.Extractor
	Notifier  Notifier
}

// Upload ingests one résumé that already passed CheckInput. The only error
// callers need to branch on after the résumé row exists is ErrIAExtractFailed.
func (s *Service) Upload(ctx context.Context, in UploadInput) result.Result[UploadOutput] {
	metrics.IncIngestionStarted()
	fields := map[string]any{"file_name": in.FileName, "mime_type": in.MimeType, "size_bytes": len(in.Body)}

	tx := newSaga(fields)

	url, err := s.Store.Upload(ctx, in.FileName, in.MimeType, in.Body)
	if err != nil {
		return s.fail(fields, "upload", err, fmt.Errorf("%w: %w", ErrUploadFailed, err))
	}
	fields["url"] = url
	tx.push("remove_object", func(ctx context.Context) error { return s.Store.Remove(ctx, url) })

	res, err := s.Resumes.Create(ctx, resumes.Resume{URL: url, FileName: in.FileName, FileType: in.MimeType})
	if err != nil {
		tx.compensate(ctx)
		return s.fail(fields, "resume_record", err, fmt.Errorf("%w: %w", ErrResumeRecordFailed, err))
	}
	fields["resume_id"] = res.ID
	tx.push("delete_resume", func(ctx context.Context) error { return s.Resumes.DeleteByID(ctx, res.ID) })

	ext, err := s.extract(ctx, in)
	if err != nil {
		tx.compensate(ctx)
		return s.fail(fields, extractReason(err), err, ErrIAExtractFailed)
	}
	if len(ext.Areas) == 0 {
		telemetry.Warn("ingestion.areas_empty", fields)
	}

	analysis, err := s.Analyses.Create(ctx, analyses.Analysis{
		ResumeID:                res.ID,
		Name:                    ext.Name,
		Email:                   ext.Email,
		Phone:                   ext.Phone,
		Areas:                   ext.Areas,
		CultureScore:            ext.CultureScore,
		CultureScoreDescription: ext.CultureScoreDescription,
		RealExperience:          ext.RealExperience,
		Summary:                 ext.Summary,
	})
	if err != nil {
		tx.compensate(ctx)
		return s.fail(fields, "analysis_record", fmt.Errorf("%w: %w", ErrAnalysisRecordFailed, err), ErrIAExtractFailed)
	}

	if s.Notifier != nil {
		s.Notifier.AnalysisCreated(ctx)
	}
	metrics.IncIngestionCompleted()
	telemetry.Info("ingestion.completed", withFields(fields, map[string]any{
		"analysis_id":   analysis.ID,
		"areas":         len(ext.Areas),
		"culture_score": ext.CultureScore,
	}))
	return result.Success(UploadOutput{URL: url, ResumeID: res.ID})
}

// extract asks the provider for a JSON answer and validates it.
func (s *Service) extract(ctx context.Context, in UploadInput) (extraction.Extraction, error) {
	if s.Extractor == nil {
		return extraction.Extraction{}, ai.Failed("none", errors.New("no extractor configured"))
	}
	start := time.Now()
	raw, err := s.Extractor.Extract(ctx, ai.Document{FileName: in.FileName, MimeType: in.MimeType, Body: in.Body})
	metrics.ObserveAIExtractionMs(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		if !errors.Is(err, ai.ErrExtractionFailed) {
			err = fmt.Errorf("%w: %v", ai.ErrExtractionFailed, err)
		}
		return extraction.Extraction{}, err
	}
	return extraction.Validate(raw)
}

func (s *Service) fail(fields map[string]any, reason string, cause, returned error) result.Result[UploadOutput] {
	metrics.IncIngestionFailed()
	telemetry.Error("ingestion.failed", withFields(fields, map[string]any{
		"error":  cause,
		"reason": reason,
	}))
	return result.Failure[UploadOutput](returned)
}

func extractReason(err error) string {
	switch {
	case errors.Is(err, extraction.ErrMalformed):
		return "malformed_extraction"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "ai_extraction"
	}
}

func withFields(base, extra map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
