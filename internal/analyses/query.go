package analyses

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	MaxWindowDays     = 90
	MaxTimeseriesDays = 365
)

// ListQuery is the query string of the listing endpoint.
type ListQuery struct {
	Page    *int   `form:"page" binding:"omitempty,min=1"`
	PerPage *int   `form:"perPage" binding:"omitempty,min=1,max=100"`
	Search  string `form:"search" binding:"max=200"`
	Order   string `form:"order" binding:"omitempty,oneof=newest oldest score_desc score_asc"`
}

// Params converts the query into repository parameters.
func (q ListQuery) Params() FindParams {
	return FindParams{
		Page:    deref(q.Page),
		PerPage: deref(q.PerPage),
		Search:  strings.TrimSpace(q.Search),
		Order:   Order(q.Order),
	}.Normalized()
}

// TimeseriesQuery selects either a trailing day count or an explicit range.
type TimeseriesQuery struct {
	Days  *int   `form:"days" binding:"omitempty,min=1,max=365"`
	Start string `form:"start"`
	End   string `form:"end"`
}

// Range resolves the query to an inclusive [start, end] interval.
func (q TimeseriesQuery) Range(now time.Time) (time.Time, time.Time, error) {
	if q.Days != nil {
		return now.AddDate(0, 0, -*q.Days), now, nil
	}
	if q.Start == "" || q.End == "" {
		return time.Time{}, time.Time{}, ValidationErrors{{Param: "days", Message: "provide ?days=N or both ?start= and ?end="}}
	}

	var errs ValidationErrors
	start, err := parseInstant(q.Start, false)
	if err != nil {
		errs = append(errs, ValidationError{Param: "start", Message: err.Error()})
	}
	end, err := parseInstant(q.End, true)
	if err != nil {
		errs = append(errs, ValidationError{Param: "end", Message: err.Error()})
	}
	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, ValidationErrors{{Param: "start", Message: "must not be after end"}}
	}
	return start, end, nil
}

// parseInstant accepts RFC3339 or a bare UTC date. A bare end date covers the whole day.
func parseInstant(raw string, endOfDay bool) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected RFC3339 or YYYY-MM-DD, got %q", raw)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

// SummaryQuery is the query string of the summary endpoint.
type SummaryQuery struct {
	WindowDays *int `form:"windowDays" binding:"omitempty,min=1,max=90"`
}

// Window returns the requested window, defaulting to seven days.
func (q SummaryQuery) Window() int {
	if q.WindowDays == nil {
		return DefaultWindowDays
	}
	return *q.WindowDays
}

// fieldParams maps struct field names to their query parameter names.
var fieldParams = map[string]string{
	"Page":       "page",
	"PerPage":    "perPage",
	"Search":     "search",
	"Order":      "order",
	"Days":       "days",
	"Start":      "start",
	"End":        "end",
	"WindowDays": "windowDays",
}

// bindingErrors converts a gin binding failure into ValidationErrors.
func bindingErrors(err error) ValidationErrors {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidationErrors{{Param: "query", Message: err.Error()}}
	}
	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		param := fieldParams[fe.Field()]
		if param == "" {
			param = fe.Field()
		}
		out = append(out, ValidationError{Param: param, Message: describe(fe)})
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
