package ingestion

import "errors"

var (
	// ErrUploadFailed means the bytes never reached the object store.
	ErrUploadFailed = errors.New("upload failed")
	// ErrResumeRecordFailed means the résumé row could not be written; stored bytes are removed.
	ErrResumeRecordFailed = errors.New("resume record failed")
	// ErrAnalysisRecordFailed is logged as the cause when the final write fails.
	ErrAnalysisRecordFailed = errors.New("analysis record failed")
	// ErrIAExtractFailed is the single error callers see for any failure after the résumé row exists.
	ErrIAExtractFailed = errors.New("failed to extract information using ai")

	ErrEmptyFile        = errors.New("file is empty")
	ErrUnsupportedMedia = errors.New("unsupported media type")
)
