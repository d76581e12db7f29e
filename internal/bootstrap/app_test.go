package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-screener/internal/ai"
	"resume-screener/internal/analyses"
	"resume-screener/internal/shared/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Env:               "dev",
		ObjectStoreType:   "local",
		LocalStoreDir:     t.TempDir(),
		PublicUploadBase:  "/uploads",
		AnalyticsCacheTTL: time.Minute,
		MaxUploadBytes:    1 << 20,
	}
}

func fakeExtractor(payload string) ai.Extractor {
	return ai.ExtractorFunc(func(ctx context.Context, doc ai.Document) (json.RawMessage, error) {
		return json.RawMessage(payload), nil
	})
}

func uploadRequest(t *testing.T, fileName string, body []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("cv", fileName)
	require.NoError(t, err)
	_, err = part.Write(body)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/resumes/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func do(app *App, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	return resp
}

func TestBuildInMemoryEndToEnd(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app, err := Build(context.Background(), testConfig(t), Options{
		Extractor: fakeExtractor(`{"name":"Ana","areas":["Docência","Tecnologia"],"culture_score":8.5,"real_experience":"sim"}`),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	require.Nil(t, app.DB)

	summary := func() map[string]any {
		resp := do(app, httptest.NewRequest(http.MethodGet, "/api/resumes/analyses/summary", nil))
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
		var out map[string]any
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
		return out
	}
	assert.EqualValues(t, 0, summary()["totalAnalyses"])

	resp := do(app, uploadRequest(t, "ana.pdf", []byte("%PDF-1.4 ana")))
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var created struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	require.NotEmpty(t, created.URL)

	file := do(app, httptest.NewRequest(http.MethodGet, created.URL, nil))
	require.Equal(t, http.StatusOK, file.Code)
	assert.Equal(t, "%PDF-1.4 ana", file.Body.String())

	got := summary()
	assert.EqualValues(t, 1, got["totalAnalyses"])
	assert.EqualValues(t, 1, got["educationAligned"])
	assert.EqualValues(t, 1, got["withExperience"])

	list := do(app, httptest.NewRequest(http.MethodGet, "/api/resumes/analyses?search=ana", nil))
	require.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), `"fileName":"ana.pdf"`)

	health := do(app, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, health.Code)
}

func TestBuildRejectsExtractionFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig(t)
	app, err := Build(context.Background(), cfg, Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	require.IsType(t, ai.Unconfigured{}, app.Extractor)

	resp := do(app, uploadRequest(t, "bia.pdf", []byte("%PDF-1.4 bia")))
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Failed to extract information using AI.")

	n, err := app.AnalysesRepo.FindMany(context.Background(), analyses.FindParams{}.Normalized())
	require.NoError(t, err)
	assert.Equal(t, 0, n.Total)
}

func TestBuildRequiresDatabaseOutsideDev(t *testing.T) {
	cfg := testConfig(t)
	cfg.Env = "production"
	_, err := Build(context.Background(), cfg, Options{})
	require.Error(t, err)
}

func TestBuildUnknownProvider(t *testing.T) {
	cfg := testConfig(t)
	cfg.AIProvider = "claude"
	_, err := Build(context.Background(), cfg, Options{})
	require.ErrorContains(t, err, "AI_PROVIDER")
}
