package httpapp

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/cesargomez89/fullstack/internal/config"
	"github.com/cesargomez89/fullstack/internal/constants"
	"github.com/cesargomez89/fullstack/internal/logger"
	"github.com/cesargomez89/fullstack/internal/store"
)

func newTestStore(t *testing.T, schema store.Schema) *store.DB {
	t.Helper()
	db, err := store.Open(context.Background(), constants.DriverSQLite, filepath.Join(t.TempDir(), "app.db"), schema)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestRouter(t *testing.T, app string, db *store.DB, routes RouteRegistrar) http.Handler {
	t.Helper()
	cfg := config.Defaults(app)
	cfg.RateLimit = 0
	reg := prometheus.NewRegistry()
	return NewRouter(Deps{
		Config:     cfg,
		Logger:     logger.Discard(),
		Store:      db,
		Registerer: reg,
		Gatherer:   reg,
	}, routes)
}

type request struct {
	method  string
	path    string
	body    interface{}
	token   string
	headers map[string]string
}

func do(t *testing.T, h http.Handler, req request) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	switch b := req.body.(type) {
	case nil:
	case string:
		body = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	r := httptest.NewRequest(req.method, req.path, body)
	if req.body != nil {
		r.Header.Set("Content-Type", constants.MimeTypeJSON)
	}
	if req.token != "" {
		r.Header.Set("Authorization", "Bearer "+req.token)
	}
	for k, v := range req.headers {
		r.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func readJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}
