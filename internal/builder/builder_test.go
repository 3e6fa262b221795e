package builder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/futig/vertex-rag-services/internal/config"
	"github.com/futig/vertex-rag-services/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func serverConfig() config.ServerConfig {
	return config.ServerConfig{
		Port:         8080,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
		WriteTimeout: time.Minute,
	}
}

func do(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestCorpusManagerWithMocks(t *testing.T) {
	cfg := &config.CorpusManagerConfig{
		ServerConfig:    serverConfig(),
		ProjectID:       "demo-project",
		Location:        "us-central1",
		DeleteExisting:  true,
		DatabaseMaxConn: 5,
		EnableMocks:     true,
	}

	app, err := NewCorpusManager(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, ":8080", app.server.Addr)
	assert.Equal(t, time.Minute, app.server.WriteTimeout)

	rec := do(app.Handler(), http.MethodPost, "/create_and_import")
	require.Equal(t, http.StatusOK, rec.Code)

	var body entity.CreateAndImportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, strings.HasPrefix(body.CorpusName, "projects/demo-project/locations/us-central1/ragCorpora/"))
	assert.NotEmpty(t, body.Operation)

	rec = do(app.Handler(), http.MethodGet, "/imports")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"imports":[]}`, rec.Body.String())
}

func TestCorpusManagerStartsWithoutProject(t *testing.T) {
	cfg := &config.CorpusManagerConfig{
		ServerConfig:    serverConfig(),
		Location:        "us-central1",
		DatabaseMaxConn: 5,
	}

	app, err := NewCorpusManager(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	rec := do(app.Handler(), http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(app.Handler(), http.MethodPost, "/create_and_import")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body entity.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "GCP_PROJECT_ID")
}

func TestQueryServiceWithMocks(t *testing.T) {
	cfg := &config.QueryServiceConfig{
		ServerConfig:               serverConfig(),
		ProjectID:                  "demo-project",
		Location:                   "us-central1",
		CorpusName:                 "projects/demo-project/locations/us-central1/ragCorpora/1",
		GenerativeModelName:        "gemini-2.5-pro-preview-03-25",
		RetrievalTopK:              15,
		RetrievalDistanceThreshold: 0.5,
		EnableMocks:                true,
	}

	app, err := NewQueryService(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	rec := do(app.Handler(), http.MethodGet, "/?query=what+is+scrum")
	require.Equal(t, http.StatusOK, rec.Code)

	var body entity.QueryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "what is scrum", body.Query)
	assert.Contains(t, body.Response, "what is scrum")

	rec = do(app.Handler(), http.MethodGet, "/")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetupLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := setupLogger("verbose")
	assert.Error(t, err)

	logger, err := setupLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
