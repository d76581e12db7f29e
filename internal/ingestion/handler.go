package ingestion

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/shared/server/middleware"
	"resume-screener/internal/shared/server/respond"
)

const (
	// FormField is the multipart field carrying the résumé.
	FormField = "cv"

	DefaultMaxUploadBytes = 8 << 20 // 8MB
	multipartOverhead     = 1 << 20

	iaExtractFailedMessage = "Failed to extract information using AI."
)

// Handler wires the upload endpoint to the ingestion service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches the upload route to the résumé router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload", h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes+multipartOverhead)

	fileHeader, err := c.FormFile(FormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds the upload limit", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "file_missing", "multipart field \"cv\" is required", nil)
		return
	}
	if fileHeader.Size > h.MaxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds the upload limit", nil)
		return
	}

	mimeType := ResolveMime(fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if !AllowedMime(mimeType) {
		respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_media_type", "only PDF, DOC and DOCX files are accepted", gin.H{"mimeType": mimeType})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "file_missing", "unable to read file", nil)
		return
	}
	defer file.Close()

	body, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "file_missing", "unable to read file", nil)
		return
	}

	in := UploadInput{
		FileName: fileHeader.Filename,
		MimeType: mimeType,
		Body:     body,
	}
	if err := CheckInput(in); err != nil {
		if errors.Is(err, ErrEmptyFile) {
			respond.Error(c, http.StatusBadRequest, "file_missing", "file is empty", nil)
			return
		}
		respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_media_type", "only PDF, DOC and DOCX files are accepted", nil)
		return
	}

	res := h.Svc.Upload(c.Request.Context(), in)
	if res.IsError() {
		if errors.Is(res.Err(), ErrIAExtractFailed) {
			respond.Error(c, http.StatusBadRequest, "ia_extract_failed", iaExtractFailedMessage, nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to store résumé", nil)
		return
	}

	out := res.Value()
	c.Set(middleware.ResumeIDKey, out.ResumeID)
	respond.JSON(c, http.StatusCreated, out)
}
