package analyses

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-screener/internal/areas"
)

type errorEnvelope struct {
	Error struct {
		Code    string            `json:"code"`
		Details []ValidationError `json:"details"`
	} `json:"error"`
}

func newTestRouter(t *testing.T, seeds ...seed) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo, _ := seedRepo(t, seeds...)
	h := NewHandler(newTestService(repo, nil))
	h.Now = func() time.Time { return fixedNow }
	r := gin.New()
	h.RegisterRoutes(r.Group("/api/resumes"))
	return r
}

func get(r *gin.Engine, target string) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, target, nil))
	return resp
}

func TestHandlerListPage(t *testing.T) {
	r := newTestRouter(t,
		seed{fileName: "ana.pdf", name: "Ana", score: 9, areas: []areas.Area{areas.Docencia}, age: day},
		seed{fileName: "bia.pdf", name: "Bia", score: 3, age: 2 * day},
	)

	resp := get(r, "/api/resumes/analyses?page=1&perPage=1&order=score_asc")
	require.Equal(t, http.StatusOK, resp.Code)

	var page Page
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &page))
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 3, page.Items[0].CultureScore)
	assert.Equal(t, "bia.pdf", page.Items[0].Resume.FileName)
}

func TestHandlerListValidation(t *testing.T) {
	r := newTestRouter(t)

	resp := get(r, "/api/resumes/analyses?page=0&perPage=500&order=best")
	require.Equal(t, http.StatusBadRequest, resp.Code)

	var body errorEnvelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "validation_error", body.Error.Code)
	params := map[string]bool{}
	for _, d := range body.Error.Details {
		params[d.Param] = true
	}
	assert.True(t, params["page"])
	assert.True(t, params["perPage"])
	assert.True(t, params["order"])
}

func TestHandlerTimeseriesByDays(t *testing.T) {
	r := newTestRouter(t,
		seed{fileName: "a.pdf", score: 8, age: day},
		seed{fileName: "b.pdf", score: 4, age: 60 * day},
	)

	resp := get(r, "/api/resumes/analyses/timeseries?days=30")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Items []DailyStat `json:"items"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, []DailyStat{{Date: "2025-06-14", Total: 1, AvgScore: 8}}, body.Items)
}

func TestHandlerTimeseriesByDateRange(t *testing.T) {
	r := newTestRouter(t, seed{fileName: "a.pdf", score: 6, age: day})

	resp := get(r, "/api/resumes/analyses/timeseries?start=2025-06-14&end=2025-06-14")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"items":[{"date":"2025-06-14","total":1,"avgScore":6,"withExperience":0,"educationAligned":0}]}`, resp.Body.String())
}

func TestHandlerTimeseriesRequiresRange(t *testing.T) {
	r := newTestRouter(t)

	for _, target := range []string{
		"/api/resumes/analyses/timeseries",
		"/api/resumes/analyses/timeseries?start=2025-06-01",
		"/api/resumes/analyses/timeseries?start=2025-06-10&end=2025-06-01",
		"/api/resumes/analyses/timeseries?start=yesterday&end=2025-06-01",
		"/api/resumes/analyses/timeseries?days=366",
	} {
		resp := get(r, target)
		assert.Equal(t, http.StatusBadRequest, resp.Code, target)
	}
}

func TestHandlerSummary(t *testing.T) {
	r := newTestRouter(t,
		seed{fileName: "a.pdf", score: 8, experience: true, areas: []areas.Area{areas.Hogwarts}, age: day},
	)

	resp := get(r, "/api/resumes/analyses/summary?windowDays=14")
	require.Equal(t, http.StatusOK, resp.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.EqualValues(t, 1, body["totalAnalyses"])
	assert.EqualValues(t, 14, body["windowDays"])
	assert.EqualValues(t, 100, body["lastWindowChangePct"])
	byArea, ok := body["byArea"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, byArea, 6)
	assert.EqualValues(t, 1, byArea["Hogwarts"])
	assert.EqualValues(t, 0, byArea["Embaixada do Amor"])
}

func TestHandlerSummaryRejectsWindow(t *testing.T) {
	r := newTestRouter(t)
	assert.Equal(t, http.StatusBadRequest, get(r, "/api/resumes/analyses/summary?windowDays=91").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/api/resumes/analyses/summary?windowDays=abc").Code)
}
