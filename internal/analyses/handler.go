package analyses

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/shared/server/respond"
	"resume-screener/internal/shared/telemetry"
)

// Handler wires HTTP handlers to the analytics service.
type Handler struct {
	Svc *Service
	Now func() time.Time
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc, Now: time.Now}
}

// RegisterRoutes attaches analytics routes to the résumé router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/analyses", h.list)
	rg.GET("/analyses/timeseries", h.timeseries)
	rg.GET("/analyses/summary", h.summary)
}

func (h *Handler) list(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		validationError(c, bindingErrors(err))
		return
	}
	res := h.Svc.List(c.Request.Context(), q.Params())
	if res.IsError() {
		h.fail(c, res.Err(), "failed to list analyses")
		return
	}
	respond.OK(c, res.Value())
}

func (h *Handler) timeseries(c *gin.Context) {
	var q TimeseriesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		validationError(c, bindingErrors(err))
		return
	}
	start, end, err := q.Range(h.Now())
	if err != nil {
		h.fail(c, err, "invalid range")
		return
	}
	res := h.Svc.Timeseries(c.Request.Context(), start, end)
	if res.IsError() {
		h.fail(c, res.Err(), "failed to load timeseries")
		return
	}
	respond.OK(c, gin.H{"items": res.Value()})
}

func (h *Handler) summary(c *gin.Context) {
	var q SummaryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		validationError(c, bindingErrors(err))
		return
	}
	res := h.Svc.Summary(c.Request.Context(), q.Window())
	if res.IsError() {
		h.fail(c, res.Err(), "failed to load summary")
		return
	}
	respond.OK(c, res.Value())
}

func (h *Handler) fail(c *gin.Context, err error, message string) {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		validationError(c, verrs)
		return
	}
	telemetry.Error("analytics.query_failed", map[string]any{"path": c.FullPath(), "error": err})
	respond.Error(c, http.StatusInternalServerError, "internal", message, nil)
}

func validationError(c *gin.Context, errs ValidationErrors) {
	respond.Error(c, http.StatusBadRequest, "validation_error", "Some query parameters are invalid.", errs)
}
