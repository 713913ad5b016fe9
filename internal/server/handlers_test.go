package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-optimizer/internal/config"
	"github.com/jonathan/resume-optimizer/internal/pipeline"
	"github.com/jonathan/resume-optimizer/internal/scoring"
)

const testDocumentJSON = `{
	"name": "Jane Doe",
	"contact": "jane@example.com",
	"sections": [
		{
			"name": "Experience",
			"entries": [
				{
					"kind": "experience",
					"id": "exp-1",
					"company": "Acme",
					"title": "Engineer",
					"date_range": "2020 - Present",
					"units": [
						{"text": "Automated deployment pipelines with Go", "origin_index": 0},
						{"text": "Maintained internal wikis", "origin_index": 1}
					]
				}
			]
		}
	]
}`

func testServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	p := pipeline.New(cfg, scoring.NewScorer(scoring.NewLexicalEmbedder()))
	return New(Config{Port: 0}, p)
}

func doRequest(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	rec := doRequest(t, testServer(t), http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestOptimizeEndpoint(t *testing.T) {
	rec := doRequest(t, testServer(t), http.MethodPost, "/optimize", map[string]any{
		"document":    json.RawMessage(testDocumentJSON),
		"job_context": "Platform engineer with Go and deployment automation experience",
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result pipeline.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.NotEmpty(t, result.RunID)
	require.NotNil(t, result.Fit)
	assert.True(t, result.Fit.FitsOnSinglePage)
}

func TestOptimizeRejectsMissingJobContext(t *testing.T) {
	rec := doRequest(t, testServer(t), http.MethodPost, "/optimize", map[string]any{
		"document": json.RawMessage(testDocumentJSON),
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOptimizeRejectsInvalidDocument(t *testing.T) {
	rec := doRequest(t, testServer(t), http.MethodPost, "/optimize", map[string]any{
		"document":    json.RawMessage(`{"contact": "x", "sections": []}`),
		"job_context": "some job",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestOptimizeRejectsMalformedBody(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/optimize", bytes.NewBufferString("{ nope"))
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid JSON body")
}

func TestScoreEndpoint(t *testing.T) {
	rec := doRequest(t, testServer(t), http.MethodPost, "/score", map[string]any{
		"document":    json.RawMessage(testDocumentJSON),
		"job_context": "Go engineer",
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report pipeline.ScoreReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.NotNil(t, report.Scores)
	assert.Len(t, report.Scores.Units, 2)
}

func TestScoreEmptyJobContextAllowed(t *testing.T) {
	// Score tolerates a missing job context; results are just low confidence.
	rec := doRequest(t, testServer(t), http.MethodPost, "/score", map[string]any{
		"document": json.RawMessage(testDocumentJSON),
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report pipeline.ScoreReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.True(t, report.Scores.LowConfidence)
}

func TestCORSHeadersSet(t *testing.T) {
	rec := doRequest(t, testServer(t), http.MethodGet, "/health", nil)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
